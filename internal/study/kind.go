package study

import (
	"github.com/emandor/studybuddy_service/internal/providers"
)

// Kind tags which of the four generation flavors a request or result is.
type Kind string

const (
	KindExplain    Kind = "explain"
	KindSummarize  Kind = "summarize"
	KindQuiz       Kind = "quiz"
	KindFlashcards Kind = "flashcards"
)

// DefaultItemCount applies when a quiz/flashcard request omits the count.
const DefaultItemCount = 5

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Result is a tagged union over the three output shapes. Exactly one of
// Text, Questions or Cards is meaningful, picked by Kind.
type Result struct {
	Kind      Kind
	Text      string
	Questions []QuizQuestion
	Cards     []Flashcard
}

// Payload is the part of the result that goes on the wire and into history.
func (r Result) Payload() any {
	switch r.Kind {
	case KindQuiz:
		return r.Questions
	case KindFlashcards:
		return r.Cards
	default:
		return r.Text
	}
}

// Descriptor holds everything that differs between the four kinds, so one
// handler and one generate path can serve all of them.
type Descriptor struct {
	Kind           Kind
	InputField     string // required request field
	CountField     string // optional item-count field, "" for text kinds
	ResponseKey    string // key wrapping the success payload
	MissingMessage string // 400 body when InputField is absent
	FailureMessage string // 500 fallback when the provider error has no message
	Temperature    float64
	MaxTokens      int
	Prompt         func(subject string, count int) string
}

var descriptors = map[Kind]Descriptor{
	KindExplain: {
		Kind:           KindExplain,
		InputField:     "concept",
		ResponseKey:    "explanation",
		MissingMessage: "Concept is required",
		FailureMessage: "Failed to explain concept",
		Temperature:    0.7,
		MaxTokens:      500,
		Prompt: func(subject string, _ int) string {
			return providers.ExplainPrompt(subject)
		},
	},
	KindSummarize: {
		Kind:           KindSummarize,
		InputField:     "notes",
		ResponseKey:    "summary",
		MissingMessage: "Notes required",
		FailureMessage: "Failed to summarize notes",
		Temperature:    0.5,
		MaxTokens:      400,
		Prompt: func(subject string, _ int) string {
			return providers.SummarizePrompt(subject)
		},
	},
	KindQuiz: {
		Kind:           KindQuiz,
		InputField:     "topic",
		CountField:     "numQuestions",
		ResponseKey:    "questions",
		MissingMessage: "Topic is required",
		FailureMessage: "Failed to generate quiz",
		Temperature:    0.8,
		MaxTokens:      800,
		Prompt:         providers.QuizPrompt,
	},
	KindFlashcards: {
		Kind:           KindFlashcards,
		InputField:     "topic",
		CountField:     "numCards",
		ResponseKey:    "cards",
		MissingMessage: "Topic is required",
		FailureMessage: "Failed to generate flashcards",
		Temperature:    0.7,
		MaxTokens:      600,
		Prompt:         providers.FlashcardPrompt,
	},
}

func DescriptorFor(k Kind) (Descriptor, bool) {
	d, ok := descriptors[k]
	return d, ok
}
