package pdftext

import (
	"regexp"
	"sort"
	"strings"
)

// span is one positioned text run from a PDF page, the unit all extraction
// strategies operate on.
type span struct {
	text     string
	font     string
	fontSize float64
	x        float64
	y        float64
}

// minBodyFontSize excludes very small text, which is usually page furniture
// or embedded metadata rather than body content.
const minBodyFontSize = 8

// readingOrder joins readable spans in the order the PDF emits them.
func readingOrder(spans []span) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if isReadableSpan(s.text) {
			parts = append(parts, s.text)
		}
	}
	return strings.Join(parts, " ")
}

// ySorted joins readable spans top-to-bottom. PDF producers sometimes emit
// runs out of visual order; sorting by descending Y restores it.
func ySorted(spans []span) string {
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].y != sorted[j].y {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})
	parts := make([]string, 0, len(sorted))
	for _, s := range sorted {
		if isReadableSpan(s.text) {
			parts = append(parts, s.text)
		}
	}
	return strings.Join(parts, " ")
}

// fontFiltered keeps only spans whose font size suggests body text.
func fontFiltered(spans []span) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.fontSize > minBodyFontSize && isReadableSpan(s.text) {
			parts = append(parts, s.text)
		}
	}
	return strings.Join(parts, " ")
}

var (
	numericRun     = regexp.MustCompile(`^\d+[\d\s.,]*$`)
	pdfSyntaxSpan  = regexp.MustCompile(`^/[A-Z]|^<<|^>>|^\(.*\)$|^\[.*\]$`)
	base64LikeSpan = regexp.MustCompile(`^[A-Za-z0-9+/=]{6,}$`)
	mixedCaseSpan  = regexp.MustCompile(`[A-Z][a-z][A-Z]|[a-z][A-Z][a-z]|\d[A-Z][a-z]|[A-Z]\d[A-Z]`)
	nonAlphaSpace  = regexp.MustCompile(`[^a-zA-Z\s]`)
	commonWordSpan = regexp.MustCompile(`(?i)\b(the|and|was|his|her|that|with|for|are|this|have|from|they|know|want|been|good|much|some|time|very|when|come|here|how|just|like|long|make|many|over|such|take|than|them|well|were)\b`)

	artifactSpanPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)reportlab`),
		regexp.MustCompile(`(?i)pdf`),
		regexp.MustCompile(`(?i)library`),
		regexp.MustCompile(`(?i)endstream`),
		regexp.MustCompile(`(?i)stream`),
		regexp.MustCompile(`(?i)xref`),
		regexp.MustCompile(`(?i)trailer`),
		regexp.MustCompile(`(?i)startxref`),
		regexp.MustCompile(`(?i)obj`),
		regexp.MustCompile(`(?i)unspecified`),
		regexp.MustCompile(`(?i)anonymous`),
		regexp.MustCompile(`^[a-zA-Z]\d[a-zA-Z]`),
		regexp.MustCompile(`\d[A-Z][a-z]`),
		regexp.MustCompile(`[A-Z]\d[A-Z]`),
		regexp.MustCompile(`[a-z][A-Z]\d`),
		regexp.MustCompile(`^[A-Za-z0-9]{1,2}$`),
		regexp.MustCompile(`^\W+$`),
	}
)

// isReadableSpan reports whether a text run looks like prose rather than
// encoded data or document plumbing. It is deliberately strict: a rejected
// good span costs little, an accepted garbage span poisons the page text.
func isReadableSpan(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 4 {
		return false
	}
	if numericRun.MatchString(trimmed) {
		return false
	}
	if pdfSyntaxSpan.MatchString(trimmed) {
		return false
	}
	if base64LikeSpan.MatchString(trimmed) {
		return false
	}
	if len(trimmed) < 20 && mixedCaseSpan.MatchString(trimmed) {
		return false
	}

	special := len(nonAlphaSpace.FindAllString(trimmed, -1))
	if float64(special)/float64(len(trimmed)) > 0.3 {
		return false
	}

	upper, lower, alpha := 0, 0, 0
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
			alpha++
		case r >= 'a' && r <= 'z':
			lower++
			alpha++
		}
	}
	if upper > lower && len(trimmed) < 30 {
		return false
	}
	if float64(alpha)/float64(len(trimmed)) < 0.6 {
		return false
	}

	for _, p := range artifactSpanPatterns {
		if p.MatchString(trimmed) {
			return false
		}
	}

	if len(trimmed) > 20 && !commonWordSpan.MatchString(trimmed) {
		return false
	}
	if !strings.ContainsAny(trimmed, " \t\n") && len(trimmed) > 6 {
		return false
	}
	return true
}
