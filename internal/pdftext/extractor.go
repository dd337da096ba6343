package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/logger"
	"pdfquiz/internal/textquality"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const (
	// maxPages bounds extraction work on large documents.
	maxPages = 10
	// targetChars is the point at which accumulated page text is enough
	// for question generation and further pages are skipped.
	targetChars = 3000
	// minFinalChars is the minimum cleaned length considered a successful
	// extraction.
	minFinalChars = 50
)

// Extractor pulls readable text out of PDF bytes. It runs several
// strategies in order of fidelity: positioned text runs with three
// orderings, font-group analysis, content-stream parsing, and finally a
// raw byte scan.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements domain.TextExtractor.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (string, error) {
	log := logger.Get()
	if len(doc.Content) == 0 {
		return "", domain.NewInvalidInputError("empty PDF content")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := e.extractPositioned(doc.Content)
	if err != nil {
		log.Warn("positioned text extraction failed",
			zap.String("file", doc.Name),
			zap.Error(err))
	} else if len(text) >= minFinalChars {
		return text, nil
	}

	if alt, ok := e.extractByFontGroups(doc.Content); ok {
		log.Info("font group extraction recovered text",
			zap.String("file", doc.Name),
			zap.Int("length", len(alt)))
		return alt, nil
	}

	if salvaged, ok := salvage(doc.Content); ok {
		log.Info("salvage extraction recovered text",
			zap.String("file", doc.Name),
			zap.Int("length", len(salvaged)))
		return salvaged, nil
	}

	return "", domain.NewExtractionError(
		fmt.Sprintf("no readable text found in PDF file: %s", doc.Name), err)
}

// extractPositioned walks the first pages, runs each ordering strategy on
// the page's text runs, keeps the best-scoring candidate per page and
// accumulates the cleaned results.
func (e *Extractor) extractPositioned(content []byte) (string, error) {
	pages, err := readSpans(content, maxPages)
	if err != nil {
		return "", err
	}

	var full strings.Builder
	for _, spans := range pages {
		candidates := []string{
			readingOrder(spans),
			ySorted(spans),
			fontFiltered(spans),
		}

		best := ""
		bestScore := 0.0
		for _, candidate := range candidates {
			if score := textquality.Score(candidate); score > bestScore {
				bestScore = score
				best = candidate
			}
		}

		cleaned := textquality.Clean(best)
		if strings.TrimSpace(cleaned) != "" {
			full.WriteString(cleaned)
			full.WriteString("\n\n")
		}
		if full.Len() > targetChars {
			break
		}
	}

	final := textquality.Clean(full.String())
	if len(final) < minFinalChars {
		return "", fmt.Errorf("insufficient meaningful text extracted: %d chars", len(final))
	}
	return final, nil
}

// readSpans parses up to limit pages into text runs. The parser panics on
// some malformed files, so the whole read is wrapped in a recover.
func readSpans(content []byte, limit int) (pages [][]span, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	if numPages > limit {
		numPages = limit
	}

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		spans := make([]span, 0, len(texts))
		for _, t := range texts {
			if t.S == "" {
				continue
			}
			spans = append(spans, span{
				text:     t.S,
				font:     t.Font,
				fontSize: t.FontSize,
				x:        t.X,
				y:        t.Y,
			})
		}
		pages = append(pages, spans)
	}
	return pages, nil
}
