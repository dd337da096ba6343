package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pdfquiz/internal/config"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/huggingface"
	"go.uber.org/zap"
)

// questionPrefix is the task prefix the T5 question-generation models are
// trained on.
const questionPrefix = "generate question: "

const modelCallTimeout = 20 * time.Second

// huggingFaceModel implements domain.QuestionModel against the Hugging Face
// inference API.
type huggingFaceModel struct {
	llmClient *huggingface.LLM
}

// NewHuggingFaceModel creates the hosted question model adapter. It returns
// an error when no API token is configured; callers treat that as "run
// without a model".
func NewHuggingFaceModel(cfg config.ModelConfig) (domain.QuestionModel, error) {
	if cfg.Token == "" {
		return nil, errors.New("hugging face api token is not configured")
	}

	opts := []huggingface.Option{
		huggingface.WithToken(cfg.Token),
		huggingface.WithModel(cfg.Model),
	}
	if cfg.URL != "" {
		opts = append(opts, huggingface.WithURL(cfg.URL))
	}
	llmClient, err := huggingface.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create hugging face client: %w", err)
	}
	return &huggingFaceModel{llmClient: llmClient}, nil
}

// Generate implements domain.QuestionModel.
func (m *huggingFaceModel) Generate(ctx context.Context, chunk string) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	response, err := m.llmClient.Call(ctx, questionPrefix+chunk,
		llms.WithTemperature(0.7),
		llms.WithTopP(0.9),
		llms.WithMaxTokens(100),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("question model request timed out", zap.Error(err))
		} else {
			l.Error("failed to get response from question model", zap.Error(err))
		}
		return "", domain.NewModelServiceError(err)
	}
	return strings.TrimSpace(response), nil
}
