package domain

import (
	"fmt"
	"strings"
)

// Difficulty of generated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType selects the answer format for a generated quiz.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeTrueFalse      QuestionType = "true-false"
	QuestionTypeMixed          QuestionType = "mixed"
)

// MCQOptionCount is fixed: every multiple-choice question carries exactly
// four options.
const MCQOptionCount = 4

// TrueFalseOptions is the only legal option set for true-false questions.
var TrueFalseOptions = []string{"True", "False"}

// Document is an uploaded PDF: opaque bytes plus client-declared metadata.
// It is read-only input to the pipeline and never mutated.
type Document struct {
	Name     string
	MIMEType string
	Size     int64
	Content  []byte
}

// QuizSettings are the immutable generation parameters chosen by the caller.
type QuizSettings struct {
	NumQuestions int          `json:"num_questions"`
	Difficulty   Difficulty   `json:"difficulty"`
	QuestionType QuestionType `json:"question_type"`
}

// Validate checks settings ranges and enums.
func (s QuizSettings) Validate() error {
	if s.NumQuestions <= 0 {
		return NewInvalidInputError("num_questions must be a positive integer")
	}
	switch s.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return NewInvalidInputError(fmt.Sprintf("unknown difficulty: %s", s.Difficulty))
	}
	switch s.QuestionType {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeMixed:
	default:
		return NewInvalidInputError(fmt.Sprintf("unknown question type: %s", s.QuestionType))
	}
	return nil
}

// Key returns a stable string form of the settings, used in cache keys.
func (s QuizSettings) Key() string {
	return fmt.Sprintf("%d_%s_%s", s.NumQuestions, s.Difficulty, s.QuestionType)
}

// Question is a single quiz item. Kind is one of QuestionTypeMultipleChoice
// or QuestionTypeTrueFalse; mixed quizzes hold questions of both kinds.
type Question struct {
	ID           string       `json:"id"`
	Kind         QuestionType `json:"kind"`
	Prompt       string       `json:"prompt"`
	Options      []string     `json:"options"`
	CorrectIndex int          `json:"correct_index"`
	Explanation  string       `json:"explanation"`
}

// Validate enforces the option-shape invariants: at least two options,
// exactly four for multiple-choice, exactly ["True","False"] for
// true-false, and a correct index inside the option list.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewValidationError("question prompt is empty")
	}
	if len(q.Options) < 2 {
		return NewValidationError("question must have at least two options")
	}
	switch q.Kind {
	case QuestionTypeMultipleChoice:
		if len(q.Options) != MCQOptionCount {
			return NewValidationError(fmt.Sprintf("multiple-choice question must have %d options, got %d", MCQOptionCount, len(q.Options)))
		}
	case QuestionTypeTrueFalse:
		if len(q.Options) != 2 || q.Options[0] != TrueFalseOptions[0] || q.Options[1] != TrueFalseOptions[1] {
			return NewValidationError("true-false question must have options [True, False]")
		}
	default:
		return NewValidationError(fmt.Sprintf("unknown question kind: %s", q.Kind))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return NewValidationError(fmt.Sprintf("correct index %d out of range for %d options", q.CorrectIndex, len(q.Options)))
	}
	return nil
}

// Quiz is the result of one generation call. It is created once and never
// mutated after being returned; callers derive answer state separately.
type Quiz struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
	Difficulty     Difficulty `json:"difficulty"`
}

// Validate checks the whole quiz against the question invariants.
func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return NewValidationError("quiz has no questions")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("question %d: %v", i+1, err))
		}
	}
	return nil
}

// AnswerReview is the per-question outcome of grading. The correct index
// and explanation are revealed here, not in the generated quiz response.
type AnswerReview struct {
	QuestionID   string `json:"question_id"`
	Selected     int    `json:"selected"`
	CorrectIndex int    `json:"correct_index"`
	IsCorrect    bool   `json:"is_correct"`
	Explanation  string `json:"explanation,omitempty"`
}

// GradeResult is the outcome of grading a set of user answers.
type GradeResult struct {
	Correct int
	Total   int
	Score   float64
	Reviews []AnswerReview
}

// Grade compares user-selected option indices against the correct ones.
// Missing answers count as wrong (Selected is -1); the score is a
// percentage of matches.
func (q *Quiz) Grade(answers []int) GradeResult {
	result := GradeResult{
		Total:   len(q.Questions),
		Reviews: make([]AnswerReview, len(q.Questions)),
	}
	for i, question := range q.Questions {
		selected := -1
		if i < len(answers) {
			selected = answers[i]
		}
		correct := selected == question.CorrectIndex
		if correct {
			result.Correct++
		}
		result.Reviews[i] = AnswerReview{
			QuestionID:   question.ID,
			Selected:     selected,
			CorrectIndex: question.CorrectIndex,
			IsCorrect:    correct,
			Explanation:  question.Explanation,
		}
	}
	if result.Total > 0 {
		result.Score = float64(result.Correct) / float64(result.Total) * 100
	}
	return result
}

// QuizStats summarizes the shape of a generated quiz.
type QuizStats struct {
	TotalQuestions        int            `json:"total_questions"`
	QuestionKinds         map[string]int `json:"question_kinds"`
	AvgOptionsPerQuestion float64        `json:"avg_options_per_question"`
	ExplanationCoverage   float64        `json:"explanation_coverage"`
}

// Stats computes per-kind counts, average option count and the share of
// questions that carry an explanation.
func (q *Quiz) Stats() QuizStats {
	stats := QuizStats{
		TotalQuestions: len(q.Questions),
		QuestionKinds:  make(map[string]int),
	}
	if len(q.Questions) == 0 {
		return stats
	}

	totalOptions := 0
	explained := 0
	for _, question := range q.Questions {
		totalOptions += len(question.Options)
		if strings.TrimSpace(question.Explanation) != "" {
			explained++
		}
		stats.QuestionKinds[string(question.Kind)]++
	}
	stats.AvgOptionsPerQuestion = float64(totalOptions) / float64(len(q.Questions))
	stats.ExplanationCoverage = float64(explained) / float64(len(q.Questions)) * 100
	return stats
}
