package generator

import (
	"fmt"
	"regexp"
	"strings"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/util"
)

var auxiliaryVerb = regexp.MustCompile(`(?i)^(is|are|was|were|has|have|will|would|should|could|can|may|might)$`)

// trueFalseQuestions builds need true-false questions from the text's
// sentences. Statements are biased toward true; false ones are made by
// negating the source sentence.
func (s *Synthesizer) trueFalseQuestions(text string, need int) []domain.Question {
	sentences := meaningfulSentences(text)
	questions := make([]domain.Question, 0, need)

	for _, sentence := range sentences {
		if len(questions) >= need {
			break
		}
		questions = append(questions, s.trueFalseFromSentence(sentence))
	}
	for len(questions) < need {
		questions = append(questions, genericTrueFalse())
	}
	return questions
}

func (s *Synthesizer) trueFalseFromSentence(sentence string) domain.Question {
	isTrue := s.chance(0.3)

	statement := sentence
	if !isTrue {
		statement = negate(sentence)
	}

	correctIndex := 1
	truth := "false"
	if isTrue {
		correctIndex = 0
		truth = "true"
	}
	return domain.Question{
		ID:           util.NewULID(),
		Kind:         domain.QuestionTypeTrueFalse,
		Prompt:       fmt.Sprintf("True or False: %s", statement),
		Options:      domain.TrueFalseOptions,
		CorrectIndex: correctIndex,
		Explanation:  fmt.Sprintf("This statement is %s based on the information provided in the document.", truth),
	}
}

// negate flips a sentence's meaning with simple verb rewrites. Crude, but
// the output only needs to contradict the source sentence.
func negate(sentence string) string {
	switch {
	case strings.Contains(sentence, " is "):
		return strings.Replace(sentence, " is ", " is not ", 1)
	case strings.Contains(sentence, " are "):
		return strings.Replace(sentence, " are ", " are not ", 1)
	case strings.Contains(sentence, " can "):
		return strings.Replace(sentence, " can ", " cannot ", 1)
	}

	words := strings.Split(sentence, " ")
	for i := 1; i < len(words); i++ {
		if auxiliaryVerb.MatchString(words[i]) {
			negated := make([]string, 0, len(words)+1)
			negated = append(negated, words[:i+1]...)
			negated = append(negated, "not")
			negated = append(negated, words[i+1:]...)
			return strings.Join(negated, " ")
		}
	}
	return sentence + " never happened"
}

func genericTrueFalse() domain.Question {
	return domain.Question{
		ID:           util.NewULID(),
		Kind:         domain.QuestionTypeTrueFalse,
		Prompt:       "True or False: This quiz was generated from the content of your uploaded document.",
		Options:      domain.TrueFalseOptions,
		CorrectIndex: 0,
		Explanation:  "The quiz generation process analyzed your document content to create relevant questions.",
	}
}
