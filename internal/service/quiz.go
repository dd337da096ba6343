package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pdfquiz/internal/cache"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/logger"
	"pdfquiz/internal/textquality"
	"pdfquiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService is the application service for the PDF-to-quiz pipeline.
type QuizService interface {
	// GenerateFromPDF runs the full pipeline: extraction, validation,
	// synthesis and session storage. Identical uploads with identical
	// settings return the already generated quiz.
	GenerateFromPDF(ctx context.Context, doc domain.Document, settings domain.QuizSettings) (*domain.Quiz, error)

	// GradeQuiz scores user answers against a stored quiz.
	GradeQuiz(ctx context.Context, quizID string, answers []int) (*domain.GradeResult, error)

	// ExportQuiz renders a stored quiz as printable plain text.
	ExportQuiz(ctx context.Context, quizID string) (string, error)

	// GetQuizStats summarizes the shape of a stored quiz.
	GetQuizStats(ctx context.Context, quizID string) (*domain.QuizStats, error)
}

type quizService struct {
	extractor   domain.TextExtractor
	synthesizer domain.QuizSynthesizer
	cacheStore  domain.Cache
	sessionTTL  time.Duration
	// fallbackOnFailure swaps extraction failures for a degraded
	// acknowledgment quiz instead of surfacing an error.
	fallbackOnFailure bool

	group singleflight.Group
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	extractor domain.TextExtractor,
	synthesizer domain.QuizSynthesizer,
	cacheStore domain.Cache,
	sessionTTL time.Duration,
	fallbackOnFailure bool,
) QuizService {
	return &quizService{
		extractor:         extractor,
		synthesizer:       synthesizer,
		cacheStore:        cacheStore,
		sessionTTL:        sessionTTL,
		fallbackOnFailure: fallbackOnFailure,
	}
}

func (s *quizService) GenerateFromPDF(ctx context.Context, doc domain.Document, settings domain.QuizSettings) (*domain.Quiz, error) {
	l := logger.Get()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	digest := sha256.Sum256(doc.Content)
	digestKey := cache.GenerateCacheKey("quiz", "digest", hex.EncodeToString(digest[:]), settings.Key())

	// Concurrent identical uploads share one generation run.
	result, err, _ := s.group.Do(digestKey, func() (interface{}, error) {
		if quiz, ok := s.lookupByDigest(ctx, digestKey); ok {
			l.Info("returning quiz for previously seen document",
				zap.String("quiz_id", quiz.ID),
				zap.String("file", doc.Name))
			return quiz, nil
		}

		quiz, err := s.generate(ctx, doc, settings)
		if err != nil {
			return nil, err
		}
		s.store(ctx, quiz, digestKey)
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Quiz), nil
}

// generate runs extraction, validation and synthesis for one document.
func (s *quizService) generate(ctx context.Context, doc domain.Document, settings domain.QuizSettings) (*domain.Quiz, error) {
	l := logger.Get()

	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		l.Warn("text extraction failed",
			zap.String("file", doc.Name),
			zap.Error(err))
		if s.fallbackOnFailure {
			return s.acknowledgmentQuiz(doc.Name, settings), nil
		}
		return nil, err
	}

	validation := textquality.Validate(text)
	if !validation.IsValid {
		l.Warn("extracted text failed validation",
			zap.String("file", doc.Name),
			zap.String("kind", string(validation.Kind)),
			zap.String("reason", validation.Reason))

		recovered := false
		if validation.RecoverableFailure() {
			if emergency, ok := textquality.EmergencyExtract(text); ok {
				if retry := textquality.Validate(emergency); retry.IsValid {
					l.Info("emergency extraction recovered readable text",
						zap.String("file", doc.Name),
						zap.Int("length", len(emergency)))
					text = emergency
					recovered = true
				}
			}
		}
		if !recovered {
			if s.fallbackOnFailure {
				return s.acknowledgmentQuiz(doc.Name, settings), nil
			}
			return nil, domain.NewUnreadableTextError(validation.Reason)
		}
	}

	quiz := s.synthesizer.Synthesize(ctx, text, settings)
	if err := quiz.Validate(); err != nil {
		return nil, domain.NewInternalError("synthesized quiz failed validation", err)
	}
	return quiz, nil
}

// lookupByDigest resolves digest -> quiz ID -> stored quiz. Any cache
// trouble is treated as a miss; generation always works without Redis.
func (s *quizService) lookupByDigest(ctx context.Context, digestKey string) (*domain.Quiz, bool) {
	quizID, err := s.cacheStore.Get(ctx, digestKey)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("cache lookup failed", zap.Error(err))
		}
		return nil, false
	}
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, false
	}
	return quiz, true
}

// store saves the quiz session and the digest pointer to it. Failures are
// logged and ignored; the caller still gets their quiz.
func (s *quizService) store(ctx context.Context, quiz *domain.Quiz, digestKey string) {
	l := logger.Get()
	payload, err := json.Marshal(quiz)
	if err != nil {
		l.Error("failed to marshal quiz for caching", zap.Error(err))
		return
	}
	if err := s.cacheStore.Set(ctx, quizKey(quiz.ID), string(payload), s.sessionTTL); err != nil {
		l.Warn("failed to store quiz session", zap.String("quiz_id", quiz.ID), zap.Error(err))
		return
	}
	if err := s.cacheStore.Set(ctx, digestKey, quiz.ID, s.sessionTTL); err != nil {
		l.Warn("failed to store quiz digest pointer", zap.String("quiz_id", quiz.ID), zap.Error(err))
	}
}

func (s *quizService) loadQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	payload, err := s.cacheStore.Get(ctx, quizKey(quizID))
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		return nil, domain.NewInternalError("failed to load quiz session", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		return nil, domain.NewInternalError("failed to decode stored quiz", err)
	}
	return &quiz, nil
}

func (s *quizService) GradeQuiz(ctx context.Context, quizID string, answers []int) (*domain.GradeResult, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(answers) > len(quiz.Questions) {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("got %d answers for %d questions", len(answers), len(quiz.Questions)))
	}
	result := quiz.Grade(answers)
	return &result, nil
}

func (s *quizService) ExportQuiz(ctx context.Context, quizID string) (string, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return "", err
	}
	return formatQuizForExport(quiz), nil
}

func (s *quizService) GetQuizStats(ctx context.Context, quizID string) (*domain.QuizStats, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	stats := quiz.Stats()
	return &stats, nil
}

// acknowledgmentQuiz is the degraded result for documents that yield no
// usable text, opted into by configuration.
func (s *quizService) acknowledgmentQuiz(fileName string, settings domain.QuizSettings) *domain.Quiz {
	questions := []domain.Question{
		{
			ID:     util.NewULID(),
			Kind:   domain.QuestionTypeMultipleChoice,
			Prompt: "What type of file was successfully uploaded for quiz generation?",
			Options: []string{
				"A PDF document",
				"A text file",
				"An image file",
				"A video file",
			},
			CorrectIndex: 0,
			Explanation:  "The system successfully detected and processed a PDF file for quiz generation.",
		},
		{
			ID:     util.NewULID(),
			Kind:   domain.QuestionTypeMultipleChoice,
			Prompt: "What is the primary purpose of this quiz generator?",
			Options: []string{
				"To create educational quizzes from PDF documents",
				"To convert PDFs to images",
				"To delete PDF content",
				"To encrypt PDF files",
			},
			CorrectIndex: 0,
			Explanation:  "This tool is designed to analyze PDF content and generate educational quiz questions.",
		},
		{
			ID:     util.NewULID(),
			Kind:   domain.QuestionTypeMultipleChoice,
			Prompt: "How does the quiz generation process work?",
			Options: []string{
				"By analyzing PDF content and creating relevant questions",
				"By randomly generating questions",
				"By copying questions from the internet",
				"By asking the user to type questions",
			},
			CorrectIndex: 0,
			Explanation:  "The system analyzes the uploaded PDF to create quiz questions.",
		},
	}
	if len(questions) > settings.NumQuestions {
		questions = questions[:settings.NumQuestions]
	}
	return &domain.Quiz{
		ID:             util.NewULID(),
		Title:          fmt.Sprintf("Quiz from %s", fileName),
		Description:    "The document did not contain readable text; this quiz acknowledges the upload.",
		Questions:      questions,
		TotalQuestions: len(questions),
		Difficulty:     settings.Difficulty,
	}
}

func quizKey(quizID string) string {
	return cache.GenerateCacheKey("quiz", "session", quizID)
}

// formatQuizForExport renders the quiz as plain text with lettered options,
// the correct answer marked and explanations included.
func formatQuizForExport(quiz *domain.Quiz) string {
	var sb strings.Builder
	sb.WriteString(quiz.Title)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("=", len(quiz.Title)))
	sb.WriteString("\n\n")

	for i, question := range quiz.Questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, question.Prompt)
		for j, option := range question.Options {
			letter := string(rune('A' + j))
			if j == question.CorrectIndex {
				fmt.Fprintf(&sb, "   %s) ✓ %s\n", letter, option)
			} else {
				fmt.Fprintf(&sb, "   %s) %s\n", letter, option)
			}
		}
		if question.Explanation != "" {
			fmt.Fprintf(&sb, "\n   Explanation: %s\n", question.Explanation)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
