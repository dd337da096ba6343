package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderingStrategies(t *testing.T) {
	spans := []span{
		{text: "jumps over the lazy dog", font: "Helvetica", fontSize: 12, x: 10, y: 40},
		{text: "The quick brown fox", font: "Helvetica", fontSize: 12, x: 10, y: 80},
		{text: "tiny footnote text here", font: "Helvetica", fontSize: 6, x: 10, y: 5},
	}

	t.Run("reading order preserves emission order", func(t *testing.T) {
		got := readingOrder(spans)
		assert.Equal(t, "jumps over the lazy dog The quick brown fox tiny footnote text here", got)
	})

	t.Run("y sorted restores top to bottom order", func(t *testing.T) {
		got := ySorted(spans)
		assert.Equal(t, "The quick brown fox jumps over the lazy dog tiny footnote text here", got)
	})

	t.Run("font filtered drops small fonts", func(t *testing.T) {
		got := fontFiltered(spans)
		assert.Equal(t, "jumps over the lazy dog The quick brown fox", got)
	})
}

func TestIsReadableSpan(t *testing.T) {
	t.Run("accepts prose", func(t *testing.T) {
		assert.True(t, isReadableSpan("the quick brown fox"))
		assert.True(t, isReadableSpan("a story about the forest and the trees"))
	})

	t.Run("rejects numbers and syntax", func(t *testing.T) {
		assert.False(t, isReadableSpan("123 456"))
		assert.False(t, isReadableSpan("/Font Helvetica"))
		assert.False(t, isReadableSpan("<< /Type /Page >>"))
	})

	t.Run("rejects encoded runs", func(t *testing.T) {
		assert.False(t, isReadableSpan("QWJjZGVmZ2g="))
		assert.False(t, isReadableSpan("x9K2 qq"))
		assert.False(t, isReadableSpan("aXbYcZ"))
	})

	t.Run("rejects short fragments", func(t *testing.T) {
		assert.False(t, isReadableSpan("ab"))
		assert.False(t, isReadableSpan("   "))
	})

	t.Run("long spans need common words", func(t *testing.T) {
		assert.False(t, isReadableSpan("zebra lion tiger elephant giraffe"))
	})
}
