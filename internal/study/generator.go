package study

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/emandor/studybuddy_service/internal/providers"
	"github.com/emandor/studybuddy_service/internal/telemetry"
)

// Fallback text when the provider completes but hands back nothing usable.
const unableText = "Unable to generate response"

var ErrUnknownKind = errors.New("unknown generation kind")

// Service turns (kind, subject, count) into a typed Result via one provider
// round trip. Malformed quiz/flashcard JSON degrades to a placeholder item
// instead of failing the call.
type Service struct {
	client providers.Client
	sf     singleflight.Group
}

func NewService(client providers.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Generate(ctx context.Context, kind Kind, subject string, count int) (Result, error) {
	d, ok := DescriptorFor(kind)
	if !ok {
		return Result{}, ErrUnknownKind
	}
	if count <= 0 {
		count = DefaultItemCount
	}

	// identical in-flight requests (same owner hammering submit from two
	// devices) share a single provider round trip
	key := fmt.Sprintf("%s|%d|%s", kind, count, subject)
	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.generate(ctx, d, subject, count)
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (s *Service) generate(ctx context.Context, d Descriptor, subject string, count int) (Result, error) {
	log := telemetry.L().With().Str("kind", string(d.Kind)).Logger()

	text, err := s.client.Complete(ctx, providers.CompletionRequest{
		Prompt:      d.Prompt(subject, count),
		Temperature: d.Temperature,
		MaxTokens:   d.MaxTokens,
	})
	if err != nil {
		log.Error().Err(err).Str("provider", string(s.client.Name())).Msg("provider_complete_failed")
		return Result{}, err
	}

	switch d.Kind {
	case KindQuiz:
		qs, ok := parseQuestions(text)
		if !ok {
			log.Warn().Int("len", len(text)).Msg("quiz_parse_fallback")
			qs = fallbackQuestions()
		}
		return Result{Kind: d.Kind, Questions: qs}, nil
	case KindFlashcards:
		cards, ok := parseCards(text)
		if !ok {
			log.Warn().Int("len", len(text)).Msg("flashcards_parse_fallback")
			cards = fallbackCards()
		}
		return Result{Kind: d.Kind, Cards: cards}, nil
	default:
		if strings.TrimSpace(text) == "" {
			text = unableText
		}
		return Result{Kind: d.Kind, Text: text}, nil
	}
}

func parseQuestions(content string) ([]QuizQuestion, bool) {
	raw := providers.ExtractJSONArray(content)
	if raw == "" {
		// no content at all means an empty result, not a parse failure
		if strings.TrimSpace(content) == "" {
			return []QuizQuestion{}, true
		}
		return nil, false
	}
	var qs []QuizQuestion
	if err := json.Unmarshal([]byte(raw), &qs); err != nil {
		return nil, false
	}
	if qs == nil {
		qs = []QuizQuestion{}
	}
	return qs, true
}

func parseCards(content string) ([]Flashcard, bool) {
	raw := providers.ExtractJSONArray(content)
	if raw == "" {
		if strings.TrimSpace(content) == "" {
			return []Flashcard{}, true
		}
		return nil, false
	}
	var cards []Flashcard
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return nil, false
	}
	if cards == nil {
		cards = []Flashcard{}
	}
	return cards, true
}

func fallbackQuestions() []QuizQuestion {
	return []QuizQuestion{{
		Question: "Unable to generate quiz questions",
		Options:  []string{"Please try again", "Check your topic", "Ensure good connection", "Contact support"},
		Correct:  0,
	}}
}

func fallbackCards() []Flashcard {
	return []Flashcard{{
		Front: "Unable to generate flashcards",
		Back:  "Please try again with a different topic",
	}}
}
