package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	t.Run("without params", func(t *testing.T) {
		key := GenerateCacheKey("quiz", "session", "01HABCDEF")
		assert.Equal(t, "pdfquiz:quiz:session:01HABCDEF", key)
	})

	t.Run("with params", func(t *testing.T) {
		key := GenerateCacheKey("quiz", "digest", "deadbeef", "3", "medium")
		assert.Equal(t, "pdfquiz:quiz:digest:deadbeef:3_medium", key)
	})
}
