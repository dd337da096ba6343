// Package textquality implements the heuristics that decide whether
// extracted PDF text is usable natural language: a 0-100 quality score,
// an artifact cleaner and a ratio-based validator. All three share the
// word lists and patterns in the lexicon package.
package textquality

import (
	"regexp"
	"strings"

	"pdfquiz/internal/lexicon"
)

var (
	bracketChars = regexp.MustCompile(`[()\[\]<>{}]`)
	base64Run    = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)
	letterChar   = regexp.MustCompile(`[a-zA-Z]`)
)

// Score rates text readability on a 0-100 scale. It rewards length
// (sub-linearly), word and sentence counts, the letter-to-character ratio
// and common English word occurrences; it penalizes bracket characters and
// unbroken base64-like runs. Used to pick the best of several extraction
// candidates for a page.
func Score(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 10 {
		return 0
	}

	var score float64

	// Length bonus, capped so one long page cannot dominate.
	score += minFloat(float64(len(trimmed))/10, 20)

	words := 0
	for _, w := range strings.Fields(trimmed) {
		if len(w) > 2 {
			words++
		}
	}
	score += minFloat(float64(words), 25)

	score += float64(SentenceCount(trimmed, 5)) * 5

	letters := len(letterChar.FindAllString(trimmed, -1))
	score += float64(letters) / float64(len(trimmed)) * 30

	lower := strings.ToLower(trimmed)
	for _, w := range lexicon.ScoringWords {
		score += float64(strings.Count(lower, w)) * 2
	}

	if bracketChars.MatchString(trimmed) {
		score -= 10
	}
	if !strings.ContainsAny(trimmed, " \t\n") && base64Run.MatchString(trimmed) {
		score -= 20
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// SentenceCount returns the number of sentence-like fragments: spans between
// terminal punctuation whose trimmed length exceeds minLen.
func SentenceCount(text string, minLen int) int {
	n := 0
	for _, frag := range sentenceSplit.Split(text, -1) {
		if len(strings.TrimSpace(frag)) > minLen {
			n++
		}
	}
	return n
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
