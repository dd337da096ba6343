package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"pdfquiz/internal/config"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "development", Level: "info"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, doc domain.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

type MockQuizSynthesizer struct {
	mock.Mock
}

func (m *MockQuizSynthesizer) Synthesize(ctx context.Context, text string, settings domain.QuizSettings) *domain.Quiz {
	args := m.Called(ctx, text, settings)
	return args.Get(0).(*domain.Quiz)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

const readableText = "The young child walked into the ancient forest with great courage. " +
	"The whispered dreams were calling from the glowing trees. " +
	"Every step was very good for the journey and they walked for many days."

var testSettings = domain.QuizSettings{
	NumQuestions: 3,
	Difficulty:   domain.DifficultyMedium,
	QuestionType: domain.QuestionTypeMultipleChoice,
}

func testDoc() domain.Document {
	return domain.Document{
		Name:     "sample.pdf",
		MIMEType: "application/pdf",
		Size:     4,
		Content:  []byte("%PDF"),
	}
}

func testQuiz() *domain.Quiz {
	questions := make([]domain.Question, 3)
	for i := range questions {
		questions[i] = domain.Question{
			ID:           "q" + string(rune('1'+i)),
			Kind:         domain.QuestionTypeMultipleChoice,
			Prompt:       "What happened in the story?",
			Options:      []string{"A journey", "A meeting", "A storm", "A race"},
			CorrectIndex: 0,
			Explanation:  "The story describes a journey.",
		}
	}
	return &domain.Quiz{
		ID:             "01HTESTQUIZID",
		Title:          "Content-Based Quiz from PDF",
		Questions:      questions,
		TotalQuestions: 3,
		Difficulty:     domain.DifficultyMedium,
	}
}

func TestGenerateFromPDF(t *testing.T) {
	t.Run("happy path generates and stores a quiz", func(t *testing.T) {
		extractor := new(MockTextExtractor)
		synthesizer := new(MockQuizSynthesizer)
		cacheStore := new(MockCache)

		extractor.On("Extract", mock.Anything, mock.Anything).Return(readableText, nil)
		synthesizer.On("Synthesize", mock.Anything, readableText, testSettings).Return(testQuiz())
		cacheStore.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
		cacheStore.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := NewQuizService(extractor, synthesizer, cacheStore, time.Hour, false)
		quiz, err := svc.GenerateFromPDF(context.Background(), testDoc(), testSettings)

		require.NoError(t, err)
		require.NotNil(t, quiz)
		assert.Len(t, quiz.Questions, 3)
		extractor.AssertExpectations(t)
		synthesizer.AssertExpectations(t)
		cacheStore.AssertNumberOfCalls(t, "Set", 2)
	})

	t.Run("invalid settings fail before extraction", func(t *testing.T) {
		extractor := new(MockTextExtractor)
		svc := NewQuizService(extractor, new(MockQuizSynthesizer), new(MockCache), time.Hour, false)

		_, err := svc.GenerateFromPDF(context.Background(), testDoc(), domain.QuizSettings{NumQuestions: 0})
		require.Error(t, err)
		extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	})

	t.Run("digest hit skips the pipeline", func(t *testing.T) {
		extractor := new(MockTextExtractor)
		cacheStore := new(MockCache)
		stored, err := json.Marshal(testQuiz())
		require.NoError(t, err)

		cacheStore.On("Get", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.Contains(key, "digest")
		})).Return("01HTESTQUIZID", nil)
		cacheStore.On("Get", mock.Anything, "pdfquiz:quiz:session:01HTESTQUIZID").Return(string(stored), nil)

		svc := NewQuizService(extractor, new(MockQuizSynthesizer), cacheStore, time.Hour, false)
		quiz, err := svc.GenerateFromPDF(context.Background(), testDoc(), testSettings)

		require.NoError(t, err)
		assert.Equal(t, "01HTESTQUIZID", quiz.ID)
		extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	})

	t.Run("extraction failure propagates without fallback", func(t *testing.T) {
		extractor := new(MockTextExtractor)
		cacheStore := new(MockCache)
		extractor.On("Extract", mock.Anything, mock.Anything).
			Return("", domain.NewExtractionError("no readable text found in PDF file: sample.pdf", nil))
		cacheStore.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)

		svc := NewQuizService(extractor, new(MockQuizSynthesizer), cacheStore, time.Hour, false)
		_, err := svc.GenerateFromPDF(context.Background(), testDoc(), testSettings)

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeExtractionFailed, domainErr.Code)
	})

	t.Run("extraction failure yields acknowledgment quiz with fallback", func(t *testing.T) {
		extractor := new(MockTextExtractor)
		cacheStore := new(MockCache)
		extractor.On("Extract", mock.Anything, mock.Anything).
			Return("", domain.NewExtractionError("no readable text", nil))
		cacheStore.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
		cacheStore.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := NewQuizService(extractor, new(MockQuizSynthesizer), cacheStore, time.Hour, true)
		quiz, err := svc.GenerateFromPDF(context.Background(), testDoc(), testSettings)

		require.NoError(t, err)
		assert.Equal(t, "Quiz from sample.pdf", quiz.Title)
		assert.Len(t, quiz.Questions, 3)
		assert.NoError(t, quiz.Validate())
	})

	t.Run("unreadable text fails with its validation reason", func(t *testing.T) {
		extractor := new(MockTextExtractor)
		cacheStore := new(MockCache)
		unreadable := strings.Repeat("zebra lion tiger elephant giraffe hippo rhino buffalo python falcon badger osprey ", 2)
		extractor.On("Extract", mock.Anything, mock.Anything).Return(unreadable, nil)
		cacheStore.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)

		svc := NewQuizService(extractor, new(MockQuizSynthesizer), cacheStore, time.Hour, false)
		_, err := svc.GenerateFromPDF(context.Background(), testDoc(), testSettings)

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnreadableText, domainErr.Code)
	})

	t.Run("recoverable failure retries with emergency extraction", func(t *testing.T) {
		extractor := new(MockTextExtractor)
		synthesizer := new(MockQuizSynthesizer)
		cacheStore := new(MockCache)

		// Enough junk tokens to fail the readability gate while the real
		// words survive emergency extraction.
		noisy := strings.Repeat("abc123 def456 ", 12) + readableText
		extractor.On("Extract", mock.Anything, mock.Anything).Return(noisy, nil)
		synthesizer.On("Synthesize", mock.Anything, mock.MatchedBy(func(text string) bool {
			return text != noisy && strings.Contains(text, "ancient forest") && !strings.Contains(text, "abc123")
		}), testSettings).Return(testQuiz())
		cacheStore.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
		cacheStore.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := NewQuizService(extractor, synthesizer, cacheStore, time.Hour, false)
		quiz, err := svc.GenerateFromPDF(context.Background(), testDoc(), testSettings)

		require.NoError(t, err)
		require.NotNil(t, quiz)
		synthesizer.AssertExpectations(t)
	})

	t.Run("cache write failures do not block the quiz", func(t *testing.T) {
		extractor := new(MockTextExtractor)
		synthesizer := new(MockQuizSynthesizer)
		cacheStore := new(MockCache)

		extractor.On("Extract", mock.Anything, mock.Anything).Return(readableText, nil)
		synthesizer.On("Synthesize", mock.Anything, readableText, testSettings).Return(testQuiz())
		cacheStore.On("Get", mock.Anything, mock.Anything).Return("", errors.New("redis down"))
		cacheStore.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		svc := NewQuizService(extractor, synthesizer, cacheStore, time.Hour, false)
		quiz, err := svc.GenerateFromPDF(context.Background(), testDoc(), testSettings)

		require.NoError(t, err)
		assert.NotNil(t, quiz)
	})
}

func TestGradeQuiz(t *testing.T) {
	storedQuiz := func(t *testing.T) (*MockCache, *domain.Quiz) {
		t.Helper()
		quiz := testQuiz()
		payload, err := json.Marshal(quiz)
		require.NoError(t, err)
		cacheStore := new(MockCache)
		cacheStore.On("Get", mock.Anything, "pdfquiz:quiz:session:"+quiz.ID).Return(string(payload), nil)
		return cacheStore, quiz
	}

	t.Run("grades stored quiz", func(t *testing.T) {
		cacheStore, quiz := storedQuiz(t)
		svc := NewQuizService(new(MockTextExtractor), new(MockQuizSynthesizer), cacheStore, time.Hour, false)

		result, err := svc.GradeQuiz(context.Background(), quiz.ID, []int{0, 1, 0})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Correct)
		assert.Equal(t, 3, result.Total)
		assert.InDelta(t, 66.66, result.Score, 0.1)
	})

	t.Run("unknown quiz id", func(t *testing.T) {
		cacheStore := new(MockCache)
		cacheStore.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
		svc := NewQuizService(new(MockTextExtractor), new(MockQuizSynthesizer), cacheStore, time.Hour, false)

		_, err := svc.GradeQuiz(context.Background(), "missing", []int{0})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeQuizNotFound, domainErr.Code)
	})

	t.Run("too many answers", func(t *testing.T) {
		cacheStore, quiz := storedQuiz(t)
		svc := NewQuizService(new(MockTextExtractor), new(MockQuizSynthesizer), cacheStore, time.Hour, false)

		_, err := svc.GradeQuiz(context.Background(), quiz.ID, []int{0, 1, 0, 2})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})
}

func TestExportQuiz(t *testing.T) {
	quiz := testQuiz()
	payload, err := json.Marshal(quiz)
	require.NoError(t, err)
	cacheStore := new(MockCache)
	cacheStore.On("Get", mock.Anything, mock.Anything).Return(string(payload), nil)
	svc := NewQuizService(new(MockTextExtractor), new(MockQuizSynthesizer), cacheStore, time.Hour, false)

	exported, err := svc.ExportQuiz(context.Background(), quiz.ID)
	require.NoError(t, err)
	assert.Contains(t, exported, quiz.Title)
	assert.Contains(t, exported, "1. What happened in the story?")
	assert.Contains(t, exported, "A) ✓ A journey")
	assert.Contains(t, exported, "B) A meeting")
	assert.Contains(t, exported, "Explanation: The story describes a journey.")
}

func TestGetQuizStats(t *testing.T) {
	quiz := testQuiz()
	payload, err := json.Marshal(quiz)
	require.NoError(t, err)
	cacheStore := new(MockCache)
	cacheStore.On("Get", mock.Anything, mock.Anything).Return(string(payload), nil)
	svc := NewQuizService(new(MockTextExtractor), new(MockQuizSynthesizer), cacheStore, time.Hour, false)

	stats, err := svc.GetQuizStats(context.Background(), quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalQuestions)
	assert.Equal(t, 3, stats.QuestionKinds[string(domain.QuestionTypeMultipleChoice)])
	assert.Equal(t, 4.0, stats.AvgOptionsPerQuestion)
	assert.Equal(t, 100.0, stats.ExplanationCoverage)
}
