// Package generator turns validated document text into quizzes. The primary
// path asks a hosted question-generation model for question stems and wraps
// them into multiple-choice items; when the model is unavailable or comes up
// short, deterministic content analysis fills the remainder. Synthesis never
// fails outright: given readable text it always produces a quiz.
package generator

import (
	"context"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"pdfquiz/internal/config"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/logger"
	"pdfquiz/internal/util"

	"go.uber.org/zap"
)

const (
	defaultChunkWords = 300
	// minChunkChars filters out trailing fragments not worth a model call.
	minChunkChars = 50
	// minStemChars rejects degenerate model outputs.
	minStemChars = 10

	notMentionedOption = "This information is not mentioned in the document"
)

var stemPrefix = regexp.MustCompile(`(?i)^(question:|q:)\s*`)

// Synthesizer implements domain.QuizSynthesizer.
type Synthesizer struct {
	model      domain.QuestionModel
	chunkWords int
	delay      time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Synthesizer)

// WithModel attaches the external question model. Without it the
// synthesizer runs on content analysis alone.
func WithModel(m domain.QuestionModel) Option {
	return func(s *Synthesizer) { s.model = m }
}

// WithRandSource replaces the shuffle source, letting tests pin option
// order.
func WithRandSource(src rand.Source) Option {
	return func(s *Synthesizer) { s.rng = rand.New(src) }
}

func NewSynthesizer(cfg config.GenerationConfig, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		chunkWords: cfg.ChunkWords,
		delay:      cfg.ModelCallDelay,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if s.chunkWords <= 0 {
		s.chunkWords = defaultChunkWords
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize implements domain.QuizSynthesizer. Model-generated questions
// come first; content-analysis questions top up to the requested count.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, settings domain.QuizSettings) *domain.Quiz {
	questions := make([]domain.Question, 0, settings.NumQuestions)

	if s.model != nil && settings.QuestionType != domain.QuestionTypeTrueFalse {
		questions = append(questions, s.modelQuestions(ctx, text, settings.NumQuestions)...)
	}

	if len(questions) < settings.NumQuestions {
		need := settings.NumQuestions - len(questions)
		questions = append(questions, s.contentQuestions(text, settings, need)...)
	}
	if len(questions) > settings.NumQuestions {
		questions = questions[:settings.NumQuestions]
	}

	return &domain.Quiz{
		ID:             util.NewULID(),
		Title:          "Content-Based Quiz from PDF",
		Description:    "Quiz generated from your uploaded PDF content",
		Questions:      questions,
		TotalQuestions: len(questions),
		Difficulty:     settings.Difficulty,
	}
}

// modelQuestions walks the text chunk by chunk, asking the model for a
// question stem per chunk. Chunk failures are skipped, and calls are spaced
// out to respect the hosted model's rate limits.
func (s *Synthesizer) modelQuestions(ctx context.Context, text string, want int) []domain.Question {
	log := logger.Get()
	chunks := splitIntoChunks(text, s.chunkWords)
	questions := make([]domain.Question, 0, want)

	for i, chunk := range chunks {
		if len(questions) >= want || ctx.Err() != nil {
			break
		}

		stem, err := s.model.Generate(ctx, chunk)
		if err != nil {
			log.Warn("question model call failed, skipping chunk",
				zap.Int("chunk", i+1),
				zap.Error(err))
		} else if len(stem) > minStemChars {
			if q := s.multipleChoiceFromStem(stem, chunk); q != nil {
				questions = append(questions, *q)
			}
		}

		if i < len(chunks)-1 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return questions
			case <-time.After(s.delay):
			}
		}
	}
	return questions
}

// multipleChoiceFromStem wraps a model-generated stem into a four-option
// question. Candidate answers are medium-length sentences from the source
// chunk, with the first one treated as correct.
func (s *Synthesizer) multipleChoiceFromStem(stem, chunk string) *domain.Question {
	prompt := stemPrefix.ReplaceAllString(strings.TrimSpace(stem), "")
	prompt = strings.TrimRight(prompt, "?") + "?"
	if len(prompt) < minStemChars {
		return nil
	}

	sentences := splitSentences(chunk, 10)
	if len(sentences) > 5 {
		sentences = sentences[:5]
	}

	var options []string
	correct := ""
	for _, sentence := range sentences {
		if len(sentence) > 20 && len(sentence) < 100 {
			if correct == "" {
				correct = sentence
			}
			options = append(options, sentence)
		}
	}
	for len(options) < domain.MCQOptionCount {
		options = append(options, notMentionedOption)
	}
	options = options[:domain.MCQOptionCount]
	if correct == "" {
		correct = options[0]
	}

	shuffled, correctIndex := s.shuffleOptions(options, correct)
	return &domain.Question{
		ID:           util.NewULID(),
		Kind:         domain.QuestionTypeMultipleChoice,
		Prompt:       prompt,
		Options:      shuffled,
		CorrectIndex: correctIndex,
		Explanation:  "This information is directly referenced in the provided document content.",
	}
}

// contentQuestions produces deterministic questions from text analysis,
// honoring the requested answer format.
func (s *Synthesizer) contentQuestions(text string, settings domain.QuizSettings, need int) []domain.Question {
	switch settings.QuestionType {
	case domain.QuestionTypeTrueFalse:
		return s.trueFalseQuestions(text, need)
	case domain.QuestionTypeMixed:
		mcq := s.multipleChoiceQuestions(text, settings.Difficulty, (need+1)/2)
		tf := s.trueFalseQuestions(text, need/2)
		return interleave(mcq, tf, need)
	default:
		return s.multipleChoiceQuestions(text, settings.Difficulty, need)
	}
}

// shuffleOptions returns the options in random order along with the index
// the correct answer landed on.
func (s *Synthesizer) shuffleOptions(options []string, correct string) ([]string, int) {
	shuffled := make([]string, len(options))
	copy(shuffled, options)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	for i, opt := range shuffled {
		if opt == correct {
			return shuffled, i
		}
	}
	return shuffled, 0
}

func (s *Synthesizer) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *Synthesizer) chance(p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() > p
}

// splitIntoChunks slices text into word-bounded chunks for model calls.
func splitIntoChunks(text string, maxWords int) []string {
	words := strings.Fields(text)
	var chunks []string
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")
		if len(strings.TrimSpace(chunk)) > minChunkChars {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// splitSentences breaks text on sentence punctuation, keeping trimmed
// sentences longer than minLen.
func splitSentences(text string, minLen int) []string {
	parts := sentenceBoundary.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > minLen {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// interleave alternates the two question lists, starting with the first,
// and returns at most limit questions.
func interleave(a, b []domain.Question, limit int) []domain.Question {
	out := make([]domain.Question, 0, limit)
	for i := 0; len(out) < limit && (i < len(a) || i < len(b)); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if len(out) < limit && i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}
