package textquality

import (
	"fmt"
	"regexp"
	"strings"

	"pdfquiz/internal/lexicon"
)

// FailureKind identifies which gate rejected the text. The caller uses it
// to decide whether emergency extraction is worth attempting.
type FailureKind string

const (
	FailureNone        FailureKind = ""
	FailureTooShort    FailureKind = "too_short"
	FailureMetadata    FailureKind = "metadata"
	FailureEncoding    FailureKind = "encoding"
	FailureReadability FailureKind = "readability"
	FailureCommonWords FailureKind = "common_words"
	FailureSentences   FailureKind = "sentences"
)

// Summary reports the measured ratios for accepted text.
type Summary struct {
	WordCount        int     `json:"word_count"`
	SentenceCount    int     `json:"sentence_count"`
	ReadabilityRatio float64 `json:"readability_ratio"`
	CommonWordRatio  float64 `json:"common_word_ratio"`
	Preview          string  `json:"preview"`
}

// Result is the outcome of validating extracted text.
type Result struct {
	IsValid bool
	Kind    FailureKind
	Reason  string
	Summary *Summary
}

// Acceptance thresholds. The sentence-count gate is advisory: cleaning
// strips most terminal punctuation, so texts with plenty of words are
// accepted on word count alone (see the override below).
const (
	maxMetadataRatio    = 0.05
	maxEncodingRatio    = 0.10
	minReadabilityRatio = 0.70
	minCommonWordRatio  = 0.05
	minSentences        = 2
	overrideWordCount   = 50
)

var (
	readableWord  = regexp.MustCompile(`^[a-zA-Z]+$`)
	innerCaseFlip = regexp.MustCompile(`[A-Z][a-z][A-Z]`)
	anyDigit      = regexp.MustCompile(`\d`)
)

// Validate scores text against the ratio gates that separate natural
// language from residual PDF noise. All gates must pass for the text to be
// usable for question generation.
func Validate(text string) Result {
	if len(strings.TrimSpace(text)) < 50 {
		return reject(FailureTooShort, "text is too short or empty")
	}

	words := make([]string, 0, 128)
	for _, w := range strings.Fields(text) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return reject(FailureTooShort, "text contains no words")
	}
	sentences := SentenceCount(text, 10)
	lower := strings.ToLower(text)

	metadataCount := 0
	for _, marker := range lexicon.MetadataMarkers {
		metadataCount += strings.Count(lower, marker)
	}
	metadataRatio := float64(metadataCount) / float64(len(words))
	if metadataRatio > maxMetadataRatio {
		return reject(FailureMetadata,
			fmt.Sprintf("text contains too much PDF metadata (%.1f%%)", metadataRatio*100))
	}

	encodingCount := 0
	for _, p := range lexicon.EncodingArtifactPatterns {
		encodingCount += len(p.FindAllString(text, -1))
	}
	encodingRatio := float64(encodingCount) / float64(len(words))
	if encodingRatio > maxEncodingRatio {
		return reject(FailureEncoding,
			fmt.Sprintf("text contains too many encoding artifacts (%.1f%%)", encodingRatio*100))
	}

	readable := 0
	for _, w := range words {
		if readableWord.MatchString(w) && !innerCaseFlip.MatchString(w) && !anyDigit.MatchString(w) {
			readable++
		}
	}
	readabilityRatio := float64(readable) / float64(len(words))
	if readabilityRatio < minReadabilityRatio {
		return reject(FailureReadability,
			fmt.Sprintf("text has low readability ratio (%.1f%%), likely encoded content", readabilityRatio*100))
	}

	commonCount := 0
	for _, w := range lexicon.CommonWords {
		commonCount += strings.Count(lower, w)
	}
	commonRatio := float64(commonCount) / float64(len(words))
	if commonRatio < minCommonWordRatio {
		return reject(FailureCommonWords,
			fmt.Sprintf("text lacks common English words (%.1f%%), likely not natural language", commonRatio*100))
	}

	summary := &Summary{
		WordCount:        len(words),
		SentenceCount:    sentences,
		ReadabilityRatio: readabilityRatio,
		CommonWordRatio:  commonRatio,
		Preview:          preview(text, 150),
	}

	if sentences < minSentences {
		// Override: cleaned text loses most sentence punctuation, so a
		// healthy word count with at least one fragment is good enough.
		if len(words) > overrideWordCount && sentences >= 1 {
			return Result{IsValid: true, Reason: "validation passed (sufficient word content)", Summary: summary}
		}
		return reject(FailureSentences, "text does not contain enough complete sentences")
	}

	return Result{IsValid: true, Reason: "validation passed", Summary: summary}
}

// RecoverableFailure reports whether a rejection is one that emergency
// extraction can plausibly fix: noise mixed into otherwise real words.
func (r Result) RecoverableFailure() bool {
	return r.Kind == FailureEncoding || r.Kind == FailureReadability
}

var nonWordChars = regexp.MustCompile(`[^\w]`)

var (
	lowercaseWord  = regexp.MustCompile(`^[a-z]+$`)
	properNoun     = regexp.MustCompile(`^[A-Z][a-z]+$`)
	hasVowel       = regexp.MustCompile(`[aeiou]`)
	rareConsonants = regexp.MustCompile(`[qxz]{2}`)
)

// Emergency extraction floors: recovered text below either bound is not
// worth generating questions from.
const (
	emergencyMinChars = 100
	emergencyMinWords = 20
)

// EmergencyExtract re-tokenizes text that failed validation and keeps only
// tokens that are clearly English: curated common words, simple lowercase
// words with vowels, and capitalized proper nouns. Returns false when the
// recovered text is below the minimum floors.
func EmergencyExtract(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	kept := make([]string, 0, 64)
	for _, word := range strings.Fields(text) {
		cleaned := strings.ToLower(nonWordChars.ReplaceAllString(word, ""))
		if len(cleaned) < 2 {
			continue
		}
		if _, ok := lexicon.EmergencyWords[cleaned]; ok {
			kept = append(kept, word)
			continue
		}
		if lowercaseWord.MatchString(cleaned) && len(cleaned) >= 3 &&
			hasVowel.MatchString(cleaned) && !rareConsonants.MatchString(cleaned) {
			kept = append(kept, word)
			continue
		}
		if properNoun.MatchString(word) && len(word) >= 3 && hasVowel.MatchString(strings.ToLower(word)) {
			kept = append(kept, word)
		}
	}

	recovered := strings.TrimSpace(strings.Join(kept, " "))
	if len(recovered) < emergencyMinChars || len(kept) < emergencyMinWords {
		return "", false
	}
	return recovered, true
}

func reject(kind FailureKind, reason string) Result {
	return Result{IsValid: false, Kind: kind, Reason: reason}
}

func preview(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n] + "..."
}
