// Package lexicon is the single source of truth for the word lists and
// artifact patterns shared by text scoring, cleaning and validation.
// Keeping them in one place prevents the three stages from drifting apart.
package lexicon

import "regexp"

// CommonWords are frequent English words used as a natural-language signal.
// Occurrence counting is substring-based, matching how the ratios are defined.
var CommonWords = []string{
	"the", "and", "was", "his", "her", "that", "with", "for", "are", "this",
	"have", "from", "they", "know", "want", "been", "good", "much", "some",
	"time", "very", "when", "come", "here", "how", "just", "like", "long",
	"make", "many", "over", "such", "take", "than", "them", "well", "were",
}

// ScoringWords is the shorter list the quality scorer rewards.
var ScoringWords = CommonWords[:10]

// ShortWordAllowList holds common English words shorter than the minimum
// token length that the cleaner would otherwise discard.
var ShortWordAllowList = map[string]struct{}{
	"a": {}, "i": {}, "is": {}, "in": {}, "on": {}, "to": {}, "of": {},
	"at": {}, "it": {}, "be": {}, "he": {}, "we": {}, "or": {}, "my": {},
	"no": {}, "so": {}, "up": {}, "if": {}, "do": {}, "me": {}, "an": {},
}

// EmergencyWords is the curated set used by emergency extraction to decide
// whether a token is clearly real English content.
var EmergencyWords = buildSet(
	"the", "and", "was", "his", "her", "that", "with", "for", "are", "this", "have", "from",
	"they", "know", "want", "been", "good", "much", "some", "time", "very", "when", "come",
	"here", "how", "just", "like", "long", "make", "many", "over", "such", "take", "than",
	"them", "well", "were", "will", "your", "what", "said", "each", "which", "their", "would",
	"there", "could", "other", "after", "first", "never", "these", "think", "where", "being",
	"every", "great", "might", "shall", "still", "those", "while", "again", "place", "right",
	"went", "old", "way", "too", "any", "may", "say", "she", "use", "now", "find",
	"him", "should", "made", "get", "work", "life", "only", "house", "see", "back", "call",
	"came", "day", "man", "new", "look", "last", "hand", "part", "child", "eye", "woman",
	"once", "little", "story", "young", "heard", "began", "walked", "stopped", "turned",
)

// MetadataMarkers are substrings that indicate PDF or producer-library
// boilerplate rather than document content.
var MetadataMarkers = []string{
	"reportlab", "pdf", "/pdf", "/type", "/font", "/stream",
	"endstream", "xref", "trailer", "startxref", "/decode",
	"unspecified", "anonymous",
}

// EncodingArtifactPatterns match token shapes typical of undecoded PDF
// content: mixed-case runs with digits, quoted random tokens, short
// parenthetical spans and letters interleaved with digits.
var EncodingArtifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][a-z][A-Z][a-z0-9]+\b`),
	regexp.MustCompile(`'[A-Za-z0-9]{4,}\b`),
	regexp.MustCompile(`\b[A-Za-z0-9]{2,4}[A-Z][a-z0-9]{1,4}\b`),
	regexp.MustCompile(`\([^)]{1,20}\)`),
	regexp.MustCompile(`\b[A-Za-z]+[0-9][A-Za-z]+\b`),
}

// Fallback content-analysis vocabularies. These are fixed template lists
// tuned for narrative sample documents, not a general entity extractor.
var (
	StorySettingWords = []string{"forest", "woods", "tree", "oak", "path", "clearing", "journey"}
	StoryMagicalWords = []string{"dreams", "magic", "ancient", "glowing", "vision", "whispered", "mystical"}
	StoryActionWords  = []string{"walked", "stumbled", "touched", "discovered", "returned", "journey", "adventure"}
	StoryThemeWords   = []string{"courage", "fear", "challenges", "heart", "lighter"}
	StoryObjectWords  = []string{"oak", "tree", "path", "clearing"}
)

func buildSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
