package pdftext

import (
	"context"
	"errors"
	"os"
	"testing"

	"pdfquiz/internal/config"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "development", Level: "info"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestExtract(t *testing.T) {
	extractor := NewExtractor()

	t.Run("empty content is invalid input", func(t *testing.T) {
		_, err := extractor.Extract(context.Background(), domain.Document{Name: "empty.pdf"})
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})

	t.Run("unparseable content fails extraction", func(t *testing.T) {
		doc := domain.Document{
			Name:    "broken.pdf",
			Content: []byte("this is not a pdf at all"),
		}
		_, err := extractor.Extract(context.Background(), doc)
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.CodeExtractionFailed, domainErr.Code)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		doc := domain.Document{Name: "doc.pdf", Content: []byte("%PDF-1.4")}
		_, err := extractor.Extract(ctx, doc)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("broken structure falls through to raw salvage", func(t *testing.T) {
		doc := domain.Document{
			Name: "mangled.pdf",
			Content: []byte("%PDF-1.4 corrupted xref " +
				"(The young child walked into the ancient forest and found a very good place to rest) " +
				"no trailer"),
		}
		text, err := extractor.Extract(context.Background(), doc)
		require.NoError(t, err)
		assert.Contains(t, text, "ancient forest")
	})
}
