package dto

import "pdfquiz/internal/domain"

// GenerateQuizRequest carries the multipart form fields accompanying the
// PDF upload.
type GenerateQuizRequest struct {
	NumQuestions int    `form:"num_questions"`
	Difficulty   string `form:"difficulty"`
	QuestionType string `form:"question_type"`
}

// QuestionResponse is one question as returned to API clients. Correct
// indices and explanations are withheld; grading reveals them.
type QuestionResponse struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// QuizResponse is the full generated quiz.
type QuizResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
	Difficulty     string             `json:"difficulty"`
}

// SubmitAnswersRequest is the body for grading a quiz. Answers are option
// indices in question order.
type SubmitAnswersRequest struct {
	Answers []int `json:"answers"`
}

// GradeResponse reports the grading outcome with per-question review.
type GradeResponse struct {
	Correct int                   `json:"correct"`
	Total   int                   `json:"total"`
	Score   float64               `json:"score"`
	Reviews []domain.AnswerReview `json:"reviews"`
}

// StatsResponse summarizes a stored quiz.
type StatsResponse struct {
	TotalQuestions        int            `json:"total_questions"`
	QuestionKinds         map[string]int `json:"question_kinds"`
	AvgOptionsPerQuestion float64        `json:"avg_options_per_question"`
	ExplanationCoverage   float64        `json:"explanation_coverage"`
}

// ErrorResponse is the minimal error body used by handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewQuizResponse maps a domain quiz to its API shape.
func NewQuizResponse(quiz *domain.Quiz) QuizResponse {
	questions := make([]QuestionResponse, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = QuestionResponse{
			ID:      q.ID,
			Kind:    string(q.Kind),
			Prompt:  q.Prompt,
			Options: q.Options,
		}
	}
	return QuizResponse{
		ID:             quiz.ID,
		Title:          quiz.Title,
		Description:    quiz.Description,
		Questions:      questions,
		TotalQuestions: quiz.TotalQuestions,
		Difficulty:     string(quiz.Difficulty),
	}
}

// NewGradeResponse maps a grading result to its API shape.
func NewGradeResponse(result *domain.GradeResult) GradeResponse {
	return GradeResponse{
		Correct: result.Correct,
		Total:   result.Total,
		Score:   result.Score,
		Reviews: result.Reviews,
	}
}

// NewStatsResponse maps quiz statistics to their API shape.
func NewStatsResponse(stats *domain.QuizStats) StatsResponse {
	return StatsResponse{
		TotalQuestions:        stats.TotalQuestions,
		QuestionKinds:         stats.QuestionKinds,
		AvgOptionsPerQuestion: stats.AvgOptionsPerQuestion,
		ExplanationCoverage:   stats.ExplanationCoverage,
	}
}
