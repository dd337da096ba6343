package generator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/util"
)

const maxKeyTerms = 20

// stopWords are excluded from key-term extraction and key-word selection.
var stopWords = buildWordSet(
	"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
	"her", "was", "one", "our", "out", "day", "get", "has", "him", "his",
	"how", "its", "may", "new", "now", "old", "see", "two", "who", "boy",
	"did", "man", "run", "too", "any", "ask", "big", "end", "far", "let",
	"own", "say", "she", "try", "way", "why", "with", "would", "this",
	"that", "they", "them", "then", "than", "will", "were", "been", "have",
	"from", "what", "when", "where", "which", "about", "said", "each",
	"make", "most", "over", "such", "very", "well", "back", "call", "came",
	"come", "could", "first", "look", "made", "many", "other", "part",
	"some", "time", "want", "went", "work", "years",
)

var (
	structuralLine = regexp.MustCompile(`(?i)^(page|chapter|figure|table|\d+)$`)
	nonWordChar    = regexp.MustCompile(`[^\w\s]`)
)

// meaningfulSentences returns sentences plausible as question sources:
// mid-length, several words and not structural labels.
func meaningfulSentences(text string) []string {
	collapsed := strings.Join(strings.Fields(text), " ")
	var out []string
	for _, sentence := range splitSentences(collapsed, 0) {
		if len(sentence) <= 30 || len(sentence) >= 300 {
			continue
		}
		if structuralLine.MatchString(sentence) {
			continue
		}
		if len(strings.Fields(sentence)) <= 5 {
			continue
		}
		out = append(out, sentence)
	}
	return out
}

// keyTerms ranks the non-stopword vocabulary of the text by frequency.
func keyTerms(text string) []string {
	words := strings.Fields(nonWordChar.ReplaceAllString(strings.ToLower(text), " "))
	frequency := make(map[string]int)
	for _, w := range words {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		frequency[w]++
	}

	terms := make([]string, 0, len(frequency))
	for term := range frequency {
		terms = append(terms, term)
	}
	sort.SliceStable(terms, func(i, j int) bool {
		if frequency[terms[i]] != frequency[terms[j]] {
			return frequency[terms[i]] > frequency[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxKeyTerms {
		terms = terms[:maxKeyTerms]
	}
	return terms
}

// sentenceQuestions derives multiple-choice questions directly from the
// text's sentences, anchored on frequent terms where possible.
func (s *Synthesizer) sentenceQuestions(text string, difficulty domain.Difficulty, need int) []domain.Question {
	sentences := meaningfulSentences(text)
	terms := keyTerms(text)

	questions := make([]domain.Question, 0, need)
	for _, sentence := range sentences {
		if len(questions) >= need {
			break
		}
		var q *domain.Question
		if len(terms) > 0 && s.chance(0.5) {
			q = s.termQuestion(sentence, terms)
		} else {
			q = s.keywordQuestion(sentence, difficulty)
		}
		if q != nil {
			questions = append(questions, *q)
		}
	}
	return questions
}

// keywordQuestion asks about a word picked from the sentence, phrased
// according to difficulty.
func (s *Synthesizer) keywordQuestion(sentence string, difficulty domain.Difficulty) *domain.Question {
	var candidates []string
	for _, w := range strings.Fields(sentence) {
		if len(w) > 3 {
			if _, stop := stopWords[strings.ToLower(w)]; !stop {
				candidates = append(candidates, w)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	limit := len(candidates)
	if limit > 3 {
		limit = 3
	}
	keyWord := candidates[s.intn(limit)]

	var prompt string
	switch difficulty {
	case domain.DifficultyEasy:
		prompt = fmt.Sprintf("According to the text, what is mentioned about %s?", keyWord)
	case domain.DifficultyHard:
		prompt = fmt.Sprintf("Based on the context provided, how does the text characterize %s?", keyWord)
	default:
		prompt = fmt.Sprintf("What does the document state regarding %s?", keyWord)
	}

	correct := fmt.Sprintf("As described in the source material regarding %s", keyWord)
	options := []string{
		correct,
		fmt.Sprintf("Something not mentioned in the text about %s", keyWord),
		fmt.Sprintf("An incorrect interpretation of %s", keyWord),
		fmt.Sprintf("Information contradicting the text about %s", keyWord),
	}
	shuffled, correctIndex := s.shuffleOptions(options, correct)

	return &domain.Question{
		ID:           util.NewULID(),
		Kind:         domain.QuestionTypeMultipleChoice,
		Prompt:       prompt,
		Options:      shuffled,
		CorrectIndex: correctIndex,
		Explanation:  "This answer is based on the information provided in the uploaded document.",
	}
}

// termQuestion anchors a question on the first key term appearing in the
// sentence; the correct answer is the surrounding context.
func (s *Synthesizer) termQuestion(sentence string, terms []string) *domain.Question {
	lower := strings.ToLower(sentence)
	focus := ""
	for _, term := range terms {
		if strings.Contains(lower, term) {
			focus = term
			break
		}
	}
	if focus == "" {
		return s.keywordQuestion(sentence, domain.DifficultyMedium)
	}

	idx := strings.Index(lower, focus)
	start := idx - 30
	if start < 0 {
		start = 0
	}
	end := idx + len(focus) + 50
	if end > len(sentence) {
		end = len(sentence)
	}
	correct := strings.TrimSpace(sentence[start:end]) + "..."

	options := []string{correct}
	for _, other := range terms {
		if len(options) >= domain.MCQOptionCount {
			break
		}
		if other != focus {
			options = append(options, fmt.Sprintf("It relates to %s instead", other))
		}
	}
	for len(options) < domain.MCQOptionCount {
		options = append(options, "It is not discussed in the document")
	}
	shuffled, correctIndex := s.shuffleOptions(options, correct)

	return &domain.Question{
		ID:           util.NewULID(),
		Kind:         domain.QuestionTypeMultipleChoice,
		Prompt:       fmt.Sprintf("Based on the document, what does the text indicate about %q?", focus),
		Options:      shuffled,
		CorrectIndex: correctIndex,
		Explanation:  fmt.Sprintf("This information about %q is directly mentioned in the document content.", focus),
	}
}

func buildWordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
