package validation

import (
	"strings"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/dto"
)

const (
	// PDFMimeType is the only accepted upload content type.
	PDFMimeType = "application/pdf"

	// MaxQuestions bounds a single generation request.
	MaxQuestions = 20

	defaultNumQuestions = 3
)

// ValidateUpload checks the uploaded file's declared type and size.
func ValidateUpload(fileName, mimeType string, size, maxSize int64) error {
	var errs domain.ValidationErrors

	if strings.TrimSpace(fileName) == "" {
		errs = append(errs, domain.NewMissingFieldError("file"))
	}
	if mimeType != PDFMimeType && !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		errs = append(errs, domain.NewInvalidFormatError("file", mimeType))
	}
	if size <= 0 {
		errs = append(errs, domain.ValidationError{Field: "file", Message: "is empty"})
	} else if size > maxSize {
		errs = append(errs, domain.ValidationError{Field: "file", Message: "exceeds the maximum upload size"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseSettings applies defaults and validates the generation parameters.
func ParseSettings(req dto.GenerateQuizRequest) (domain.QuizSettings, error) {
	settings := domain.QuizSettings{
		NumQuestions: req.NumQuestions,
		Difficulty:   domain.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty))),
		QuestionType: domain.QuestionType(strings.ToLower(strings.TrimSpace(req.QuestionType))),
	}
	if settings.NumQuestions == 0 {
		settings.NumQuestions = defaultNumQuestions
	}
	if settings.Difficulty == "" {
		settings.Difficulty = domain.DifficultyMedium
	}
	if settings.QuestionType == "" {
		settings.QuestionType = domain.QuestionTypeMultipleChoice
	}

	var errs domain.ValidationErrors
	if settings.NumQuestions < 1 || settings.NumQuestions > MaxQuestions {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", settings.NumQuestions, 1, MaxQuestions))
	}
	switch settings.Difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		errs = append(errs, domain.NewInvalidFormatError("difficulty", string(settings.Difficulty)))
	}
	switch settings.QuestionType {
	case domain.QuestionTypeMultipleChoice, domain.QuestionTypeTrueFalse, domain.QuestionTypeMixed:
	default:
		errs = append(errs, domain.NewInvalidFormatError("question_type", string(settings.QuestionType)))
	}

	if len(errs) > 0 {
		return domain.QuizSettings{}, errs
	}
	return settings, nil
}
