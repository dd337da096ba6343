package domain

import "context"

// TextExtractor pulls cleaned, readable text out of an uploaded PDF.
// Implementations try multiple strategies internally; the returned text has
// already been through artifact cleaning. A document from which no strategy
// recovers readable text yields an EXTRACTION_FAILED error.
type TextExtractor interface {
	Extract(ctx context.Context, doc Document) (string, error)
}

// QuizSynthesizer turns validated text into a quiz. It never fails: when
// the external question model is unavailable or insufficient it degrades to
// deterministic content-analysis templates.
type QuizSynthesizer interface {
	Synthesize(ctx context.Context, text string, settings QuizSettings) *Quiz
}

// QuestionModel is the port for the external question-generation model.
// Generate returns a question stem for one chunk of source text.
type QuestionModel interface {
	Generate(ctx context.Context, chunk string) (string, error)
}
