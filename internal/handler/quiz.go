package handler

import (
	"io"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/dto"
	"pdfquiz/internal/logger"
	"pdfquiz/internal/service"
	"pdfquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service     service.QuizService
	maxFileSize int64
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, maxFileSize int64) *QuizHandler {
	return &QuizHandler{
		service:     service,
		maxFileSize: maxFileSize,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a PDF
// @Description Extracts text from the uploaded PDF and generates quiz questions
// @Tags quizzes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Param num_questions formData int false "Number of questions (default 3)"
// @Param difficulty formData string false "easy, medium or hard"
// @Param question_type formData string false "multiple-choice, true-false or mixed"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateUpload(fileHeader.Filename, mimeType, fileHeader.Size, h.maxFileSize); err != nil {
		return err
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("failed to parse form fields")
	}
	settings, err := validation.ParseSettings(req)
	if err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	doc := domain.Document{
		Name:     fileHeader.Filename,
		MIMEType: mimeType,
		Size:     fileHeader.Size,
		Content:  content,
	}

	quiz, err := h.service.GenerateFromPDF(c.UserContext(), doc, settings)
	if err != nil {
		logger.Get().Error("Quiz generation failed",
			zap.String("file", doc.Name),
			zap.Error(err),
		)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizResponse(quiz))
}

// SubmitAnswers godoc
// @Summary Grade answers for a quiz
// @Description Scores the submitted option indices against the stored quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param answers body dto.SubmitAnswersRequest true "Selected option indices"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/answers [post]
func (h *QuizHandler) SubmitAnswers(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if quizID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}

	var req dto.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("failed to parse answers body")
	}

	result, err := h.service.GradeQuiz(c.UserContext(), quizID, req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGradeResponse(result))
}

// ExportQuiz godoc
// @Summary Export a quiz as plain text
// @Description Returns the quiz in a printable text format
// @Tags quizzes
// @Produce plain
// @Param id path string true "Quiz ID"
// @Success 200 {string} string "Formatted quiz"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/export [get]
func (h *QuizHandler) ExportQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if quizID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}

	formatted, err := h.service.ExportQuiz(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(formatted)
}

// GetQuizStats godoc
// @Summary Get quiz statistics
// @Description Returns question counts, kinds and explanation coverage
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.StatsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/stats [get]
func (h *QuizHandler) GetQuizStats(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if quizID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}

	stats, err := h.service.GetQuizStats(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStatsResponse(stats))
}
