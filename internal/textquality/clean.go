package textquality

import (
	"regexp"
	"strings"

	"pdfquiz/internal/lexicon"
)

// artifactPatterns are applied in order to strip PDF object syntax,
// encoded runs, timestamps and producer boilerplate from raw extracted
// text. Order matters: block constructs (streams, xref tables) go before
// token-shape patterns so their contents are not partially preserved.
var artifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)obj\s*<<.*?>>`),                     // object dictionaries
	regexp.MustCompile(`(?s)stream\s+.*?\s+endstream`),          // content streams
	regexp.MustCompile(`(?s)xref\s+.*?\s+trailer`),              // xref tables
	regexp.MustCompile(`/[A-Z][A-Za-z0-9]+Decode`),              // filter names
	regexp.MustCompile(`/[A-Z][A-Za-z0-9]*\s`),                  // name objects: /PDF /Text
	regexp.MustCompile(`\d+\s+\d+\s+R\b`),                       // indirect references: 3 0 R
	regexp.MustCompile(`\$[a-zA-Z0-9+/=]+`),                     // base64-like runs
	regexp.MustCompile(`[<>]+`),                                 // angle brackets
	regexp.MustCompile(`(?i)ReportLab\s+PDF\s+Library`),         // producer boilerplate
	regexp.MustCompile(`D:\d{14}`),                              // PDF date stamps
	regexp.MustCompile(`\b[0-9]{14}\b`),                         // bare timestamps
	regexp.MustCompile(`\+00'00'`),                              // timezone suffixes
	regexp.MustCompile(`q\d+l[a-zA-Z0-9+/=]*\$`),                // encoded content
	regexp.MustCompile(`(?i)\b[a-f0-9]{32,}\b`),                 // long hex strings
	regexp.MustCompile(`\\\w+`),                                 // escape sequences
	regexp.MustCompile(`(?m)^\s*\d+\s*$`),                       // number-only lines
	regexp.MustCompile(`(?i)\bunspecified\b`),                   // metadata placeholder
	regexp.MustCompile(`(?i)\banonymous\b`),                     // metadata placeholder
	regexp.MustCompile(`\b[A-Z][a-z][A-Z][a-z0-9]+\b`),          // mixed-case runs: gSGjL1
	regexp.MustCompile(`'[A-Za-z0-9]{5,}\b`),                    // quoted random tokens
	regexp.MustCompile(`\b[A-Za-z0-9]{1,3}[A-Z][a-z0-9]{1,3}\b`), // short random combos
	regexp.MustCompile(`\([^)]{1,20}\)`),                        // short parentheticals
	regexp.MustCompile(`\b[A-Z]{1,2}\d[A-Z]{1,2}\b`),            // shapes like M1J
	regexp.MustCompile(`\b\w*[;:]\w*\b`),                        // tokens glued by ; or :
}

// caseSwitchRun matches a lowercase/digit run immediately followed by a
// capital, the tail of an undecoded glyph sequence. The capital is kept.
var caseSwitchRun = regexp.MustCompile(`\b[a-z0-9][A-Za-z0-9]{1,9}([A-Z])`)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	oddChars      = regexp.MustCompile(`[^\w\s.,!?;:'"()-]`)
	tokenEncoding = regexp.MustCompile(`[A-Z][a-z][A-Z]|[a-z][A-Z][a-z]|\d[A-Z]|[A-Z]\d`)
	nonWordToken  = regexp.MustCompile(`^[\d\W]+$`)
	plainShape    = regexp.MustCompile(`^[a-z]+$|^[A-Z][a-z]+$`)
	caseSwitch    = regexp.MustCompile(`[a-z][A-Z]`)
)

// Clean strips encoding and metadata artifacts from raw extracted text.
// It is total (never fails, may return "") and idempotent: once a pass has
// run, every surviving token is of a shape no pattern matches.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := raw
	for _, p := range artifactPatterns {
		cleaned = p.ReplaceAllString(cleaned, " ")
	}
	cleaned = caseSwitchRun.ReplaceAllString(cleaned, " $1")

	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	cleaned = oddChars.ReplaceAllString(cleaned, " ")

	kept := make([]string, 0, 64)
	for _, word := range strings.Fields(cleaned) {
		if keepToken(word) {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// keepToken decides whether a token is plausible English rather than a
// leftover encoding fragment.
func keepToken(word string) bool {
	if len(word) < 3 {
		// A handful of real short English words survive the length filter.
		_, ok := lexicon.ShortWordAllowList[strings.ToLower(word)]
		return ok
	}
	if tokenEncoding.MatchString(word) {
		return false
	}
	if nonWordToken.MatchString(word) {
		return false
	}
	letters := 0
	for _, r := range word {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	if float64(letters)/float64(len(word)) < 0.7 {
		return false
	}
	if !plainShape.MatchString(word) {
		if len(word) < 10 {
			return false
		}
		// Long tokens pass only without case switches or quotes, so a
		// second pass has nothing left to remove.
		if caseSwitch.MatchString(word) || strings.ContainsAny(word, `'"`) {
			return false
		}
	}
	return true
}
