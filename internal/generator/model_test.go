package generator

import (
	"testing"

	"pdfquiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHuggingFaceModel(t *testing.T) {
	t.Run("missing token disables the model", func(t *testing.T) {
		_, err := NewHuggingFaceModel(config.ModelConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token is not configured")
	})

	t.Run("configured token builds a client", func(t *testing.T) {
		model, err := NewHuggingFaceModel(config.ModelConfig{
			Token: "hf_test_token",
			Model: "potsawee/t5-large-generation-squad-QuestionAnswer",
		})
		require.NoError(t, err)
		assert.NotNil(t, model)
	})
}
