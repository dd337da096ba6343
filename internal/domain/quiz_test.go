package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMCQ() Question {
	return Question{
		ID:           "q1",
		Kind:         QuestionTypeMultipleChoice,
		Prompt:       "What color is the sky?",
		Options:      []string{"Blue", "Green", "Red", "Yellow"},
		CorrectIndex: 0,
		Explanation:  "The sky is blue.",
	}
}

func validTrueFalse() Question {
	return Question{
		ID:           "q2",
		Kind:         QuestionTypeTrueFalse,
		Prompt:       "True or False: Water is wet.",
		Options:      TrueFalseOptions,
		CorrectIndex: 0,
	}
}

func TestQuizSettingsValidate(t *testing.T) {
	valid := QuizSettings{NumQuestions: 5, Difficulty: DifficultyMedium, QuestionType: QuestionTypeMixed}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		settings QuizSettings
	}{
		{"zero questions", QuizSettings{NumQuestions: 0, Difficulty: DifficultyEasy, QuestionType: QuestionTypeMixed}},
		{"negative questions", QuizSettings{NumQuestions: -1, Difficulty: DifficultyEasy, QuestionType: QuestionTypeMixed}},
		{"unknown difficulty", QuizSettings{NumQuestions: 3, Difficulty: "extreme", QuestionType: QuestionTypeMixed}},
		{"unknown question type", QuizSettings{NumQuestions: 3, Difficulty: DifficultyEasy, QuestionType: "essay"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			require.Error(t, err)
			var domainErr *DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, CodeInvalidInput, domainErr.Code)
		})
	}
}

func TestQuizSettingsKey(t *testing.T) {
	settings := QuizSettings{NumQuestions: 3, Difficulty: DifficultyHard, QuestionType: QuestionTypeTrueFalse}
	assert.Equal(t, "3_hard_true-false", settings.Key())
}

func TestQuestionValidate(t *testing.T) {
	t.Run("valid questions", func(t *testing.T) {
		mcq := validMCQ()
		assert.NoError(t, mcq.Validate())
		tf := validTrueFalse()
		assert.NoError(t, tf.Validate())
	})

	t.Run("empty prompt", func(t *testing.T) {
		q := validMCQ()
		q.Prompt = "  "
		assert.Error(t, q.Validate())
	})

	t.Run("multiple choice needs exactly four options", func(t *testing.T) {
		q := validMCQ()
		q.Options = q.Options[:3]
		assert.Error(t, q.Validate())
	})

	t.Run("true false needs the fixed option pair", func(t *testing.T) {
		q := validTrueFalse()
		q.Options = []string{"Yes", "No"}
		assert.Error(t, q.Validate())
	})

	t.Run("correct index out of range", func(t *testing.T) {
		q := validMCQ()
		q.CorrectIndex = 4
		assert.Error(t, q.Validate())
		q.CorrectIndex = -1
		assert.Error(t, q.Validate())
	})

	t.Run("unknown kind", func(t *testing.T) {
		q := validMCQ()
		q.Kind = "essay"
		assert.Error(t, q.Validate())
	})
}

func TestQuizGrade(t *testing.T) {
	quiz := Quiz{Questions: []Question{validMCQ(), validTrueFalse(), validMCQ()}}
	quiz.Questions[2].CorrectIndex = 2

	t.Run("full answers", func(t *testing.T) {
		result := quiz.Grade([]int{0, 1, 2})
		assert.Equal(t, 2, result.Correct)
		assert.Equal(t, 3, result.Total)
		assert.InDelta(t, 66.66, result.Score, 0.1)
		require.Len(t, result.Reviews, 3)
		assert.True(t, result.Reviews[0].IsCorrect)
		assert.False(t, result.Reviews[1].IsCorrect)
		assert.True(t, result.Reviews[2].IsCorrect)
		assert.Equal(t, 0, result.Reviews[0].CorrectIndex)
		assert.Equal(t, 1, result.Reviews[1].Selected)
	})

	t.Run("missing answers count as wrong", func(t *testing.T) {
		result := quiz.Grade([]int{0})
		assert.Equal(t, 1, result.Correct)
		assert.False(t, result.Reviews[1].IsCorrect)
		assert.Equal(t, -1, result.Reviews[1].Selected)
		assert.Equal(t, -1, result.Reviews[2].Selected)
	})

	t.Run("all correct", func(t *testing.T) {
		result := quiz.Grade([]int{0, 0, 2})
		assert.Equal(t, 3, result.Correct)
		assert.Equal(t, 100.0, result.Score)
	})
}

func TestQuizStats(t *testing.T) {
	quiz := Quiz{Questions: []Question{validMCQ(), validMCQ(), validTrueFalse()}}
	stats := quiz.Stats()

	assert.Equal(t, 3, stats.TotalQuestions)
	assert.Equal(t, 2, stats.QuestionKinds[string(QuestionTypeMultipleChoice)])
	assert.Equal(t, 1, stats.QuestionKinds[string(QuestionTypeTrueFalse)])
	assert.InDelta(t, 3.33, stats.AvgOptionsPerQuestion, 0.01)
	assert.InDelta(t, 66.66, stats.ExplanationCoverage, 0.1)
}

func TestQuizValidate(t *testing.T) {
	quiz := Quiz{Questions: []Question{validMCQ(), validTrueFalse()}}
	assert.NoError(t, quiz.Validate())

	empty := Quiz{}
	assert.Error(t, empty.Validate())

	broken := Quiz{Questions: []Question{validMCQ()}}
	broken.Questions[0].CorrectIndex = 9
	assert.Error(t, broken.Validate())
}
