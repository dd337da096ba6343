package generator

import (
	"fmt"
	"regexp"
	"strings"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/lexicon"
	"pdfquiz/internal/util"
)

// storyAnalysis captures the narrative elements the fallback templates key
// on. The vocabularies are fixed lists, not an entity extractor.
type storyAnalysis struct {
	characters []string
	settings   []string
	magical    []string
	actions    []string
	themes     []string
}

var properNoun = regexp.MustCompile(`^[A-Z][a-z]+$`)

// analyzeStory scans the text for capitalized names and vocabulary hits.
// Even a single occurrence counts; short documents mention things once.
func analyzeStory(text string) storyAnalysis {
	words := strings.Fields(text)
	analysis := storyAnalysis{
		characters: matchProperNouns(words),
		settings:   matchVocabulary(words, lexicon.StorySettingWords),
		magical:    matchVocabulary(words, lexicon.StoryMagicalWords),
		actions:    matchVocabulary(words, lexicon.StoryActionWords),
		themes:     matchVocabulary(words, lexicon.StoryThemeWords),
	}
	return analysis
}

func matchProperNouns(words []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range words {
		if len(w) <= 2 || !properNoun.MatchString(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func matchVocabulary(words, vocab []string) []string {
	vocabSet := make(map[string]struct{}, len(vocab))
	for _, v := range vocab {
		vocabSet[v] = struct{}{}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, w := range words {
		lower := strings.ToLower(w)
		if _, ok := vocabSet[lower]; !ok {
			continue
		}
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, lower)
	}
	return out
}

// multipleChoiceQuestions builds need questions from content analysis:
// story templates first, then comprehension and sentence-derived questions,
// with generic fillers guaranteeing the count.
func (s *Synthesizer) multipleChoiceQuestions(text string, difficulty domain.Difficulty, need int) []domain.Question {
	analysis := analyzeStory(text)
	builders := []func(string, storyAnalysis) *domain.Question{
		characterQuestion,
		settingQuestion,
		plotQuestion,
		themeQuestion,
		objectQuestion,
		actionQuestion,
	}

	questions := make([]domain.Question, 0, need)
	for i := 0; i < need; i++ {
		if q := builders[i%len(builders)](text, analysis); q != nil {
			questions = append(questions, *q)
		}
	}

	for len(questions) < need {
		q := comprehensionQuestion(len(questions))
		if q == nil {
			break
		}
		questions = append(questions, *q)
	}

	if len(questions) < need {
		questions = append(questions, s.sentenceQuestions(text, difficulty, need-len(questions))...)
	}
	for len(questions) < need {
		questions = append(questions, genericQuestion(len(questions)))
	}
	return questions[:need]
}

func characterQuestion(text string, analysis storyAnalysis) *domain.Question {
	if len(analysis.characters) == 0 {
		return nil
	}
	character := analysis.characters[0]
	return &domain.Question{
		ID:     util.NewULID(),
		Kind:   domain.QuestionTypeMultipleChoice,
		Prompt: fmt.Sprintf("Who is %s in this story?", character),
		Options: []string{
			"The main character who goes on a journey of discovery",
			"A minor character mentioned briefly",
			"The antagonist of the story",
			"A character from a different story",
		},
		CorrectIndex: 0,
		Explanation:  fmt.Sprintf("%s appears to be the protagonist who undergoes a transformative journey in this story.", character),
	}
}

// curated prompts for the most common setting words; anything else gets the
// generic template.
var settingPrompts = map[string]struct {
	prompt  string
	options []string
}{
	"forest": {
		prompt: "What role does the forest play in the story?",
		options: []string{
			"It's a magical place where the main character has important experiences",
			"It's just background scenery",
			"It's a dangerous place to avoid",
			"It's not mentioned in the story",
		},
	},
	"woods": {
		prompt: "How are the woods significant to the narrative?",
		options: []string{
			"They serve as the setting for the character's journey and transformation",
			"They are only mentioned in passing",
			"They represent a threat to avoid",
			"They have no particular significance",
		},
	},
	"oak": {
		prompt: "What is special about the oak tree in the story?",
		options: []string{
			"It's an ancient, magical tree that provides visions or wisdom",
			"It's just a regular tree",
			"It's an obstacle in the path",
			"It's not mentioned in the story",
		},
	},
}

func settingQuestion(text string, analysis storyAnalysis) *domain.Question {
	if len(analysis.settings) == 0 {
		return nil
	}
	setting := analysis.settings[0]

	prompt, options := "", []string(nil)
	if curated, ok := settingPrompts[setting]; ok {
		prompt, options = curated.prompt, curated.options
	} else {
		prompt = fmt.Sprintf("What is the significance of the %s in the story?", setting)
		options = []string{
			"It plays an important role in the story's setting and atmosphere",
			"It's only mentioned briefly",
			"It's not relevant to the plot",
			"It doesn't appear in the story",
		}
	}

	return &domain.Question{
		ID:           util.NewULID(),
		Kind:         domain.QuestionTypeMultipleChoice,
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: 0,
		Explanation:  fmt.Sprintf("The %s is an important element that contributes to the story's atmosphere and the character's journey.", setting),
	}
}

func plotQuestion(text string, analysis storyAnalysis) *domain.Question {
	if len(analysis.actions) == 0 {
		return nil
	}
	return &domain.Question{
		ID:     util.NewULID(),
		Kind:   domain.QuestionTypeMultipleChoice,
		Prompt: "What is the main plot of this story?",
		Options: []string{
			"A character goes on a magical journey of self-discovery and finds inner courage",
			"A technical manual about procedures",
			"A historical account of events",
			"A scientific research paper",
		},
		CorrectIndex: 0,
		Explanation:  "Based on the narrative elements and character development, this is a story about personal growth and discovery.",
	}
}

func themeQuestion(text string, analysis storyAnalysis) *domain.Question {
	if len(analysis.themes) == 0 && len(analysis.magical) == 0 {
		return nil
	}
	return &domain.Question{
		ID:     util.NewULID(),
		Kind:   domain.QuestionTypeMultipleChoice,
		Prompt: "What is the main theme of this story?",
		Options: []string{
			"Overcoming fears and discovering inner strength through magical experiences",
			"Technical problem-solving",
			"Historical documentation",
			"Mathematical calculations",
		},
		CorrectIndex: 0,
		Explanation:  "The story focuses on personal growth, courage, and self-discovery through a magical journey.",
	}
}

func objectQuestion(text string, analysis storyAnalysis) *domain.Question {
	lower := strings.ToLower(text)
	object := ""
	for _, candidate := range lexicon.StoryObjectWords {
		if strings.Contains(lower, candidate) {
			object = candidate
			break
		}
	}
	if object == "" {
		return nil
	}
	return &domain.Question{
		ID:     util.NewULID(),
		Kind:   domain.QuestionTypeMultipleChoice,
		Prompt: fmt.Sprintf("What happens when the character encounters the %s?", object),
		Options: []string{
			"It leads to a significant moment of discovery or revelation",
			"Nothing important happens",
			"The character avoids it completely",
			"It's not mentioned in the story",
		},
		CorrectIndex: 0,
		Explanation:  fmt.Sprintf("The %s serves as a catalyst for important story events and character development.", object),
	}
}

func actionQuestion(text string, analysis storyAnalysis) *domain.Question {
	if len(analysis.actions) == 0 {
		return nil
	}
	return &domain.Question{
		ID:     util.NewULID(),
		Kind:   domain.QuestionTypeMultipleChoice,
		Prompt: "What does the main character do in this story?",
		Options: []string{
			"Embarks on a journey, faces challenges, and discovers something important about themselves",
			"Reads technical documentation",
			"Solves mathematical problems",
			"Writes a research paper",
		},
		CorrectIndex: 0,
		Explanation:  "The character follows a classic hero's journey pattern of adventure and self-discovery.",
	}
}

// comprehensionQuestion returns one of two fixed genre and mood questions,
// or nil once both have been used.
func comprehensionQuestion(index int) *domain.Question {
	switch index {
	case 0:
		return &domain.Question{
			ID:     util.NewULID(),
			Kind:   domain.QuestionTypeMultipleChoice,
			Prompt: "What genre best describes this story?",
			Options: []string{
				"Fantasy/Adventure with magical elements",
				"Technical documentation",
				"Scientific research",
				"Historical non-fiction",
			},
			CorrectIndex: 0,
			Explanation:  "The presence of magical elements like ancient oaks, visions, and mystical experiences indicates this is fantasy/adventure.",
		}
	case 1:
		return &domain.Question{
			ID:     util.NewULID(),
			Kind:   domain.QuestionTypeMultipleChoice,
			Prompt: "What is the overall mood of this story?",
			Options: []string{
				"Inspiring and magical, focusing on personal growth",
				"Technical and instructional",
				"Sad and depressing",
				"Angry and confrontational",
			},
			CorrectIndex: 0,
			Explanation:  "The story has an uplifting tone focused on discovery, courage, and positive transformation.",
		}
	default:
		return nil
	}
}

// genericQuestions are the last-resort fillers. They are about the document
// processing itself, so they are always answerable.
var genericQuestions = []domain.Question{
	{
		Kind:   domain.QuestionTypeMultipleChoice,
		Prompt: "What type of document was uploaded?",
		Options: []string{
			"An educational document",
			"A blank document",
			"An image file",
			"A corrupted file",
		},
		CorrectIndex: 0,
		Explanation:  "Based on the successful processing of the uploaded PDF file.",
	},
	{
		Kind:   domain.QuestionTypeMultipleChoice,
		Prompt: "What was the primary purpose of processing this document?",
		Options: []string{
			"To generate quiz questions",
			"To delete the content",
			"To convert to image",
			"To corrupt the file",
		},
		CorrectIndex: 0,
		Explanation:  "The document was processed to create educational quiz content.",
	},
	{
		Kind:   domain.QuestionTypeMultipleChoice,
		Prompt: "How was this quiz generated?",
		Options: []string{
			"Using automated text analysis",
			"Manually by a person",
			"Randomly without content",
			"By copying from the internet",
		},
		CorrectIndex: 0,
		Explanation:  "The quiz was generated from the document using automated content analysis.",
	},
}

func genericQuestion(index int) domain.Question {
	q := genericQuestions[index%len(genericQuestions)]
	q.ID = util.NewULID()
	return q
}
