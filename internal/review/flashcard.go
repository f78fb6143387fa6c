package review

import (
	"errors"

	"github.com/emandor/studybuddy_service/internal/study"
)

var ErrNoCards = errors.New("flashcard session needs at least one card")

// FlashcardSession pages through a fixed card list with flip/next/previous.
// Reaching the last card only surfaces the restart affordance; nothing forces
// a transition out.
type FlashcardSession struct {
	cards   []study.Flashcard
	current int
	flipped bool
}

func NewFlashcardSession(cards []study.Flashcard) (*FlashcardSession, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	cs := make([]study.Flashcard, len(cards))
	copy(cs, cards)
	return &FlashcardSession{cards: cs}, nil
}

func (s *FlashcardSession) Len() int          { return len(s.cards) }
func (s *FlashcardSession) CurrentIndex() int { return s.current }
func (s *FlashcardSession) Flipped() bool     { return s.flipped }
func (s *FlashcardSession) AtLast() bool      { return s.current == len(s.cards)-1 }

func (s *FlashcardSession) Current() study.Flashcard {
	return s.cards[s.current]
}

// Face is the side currently showing.
func (s *FlashcardSession) Face() string {
	if s.flipped {
		return s.cards[s.current].Back
	}
	return s.cards[s.current].Front
}

func (s *FlashcardSession) Flip() {
	s.flipped = !s.flipped
}

// Next advances one card, front side up. No-op on the last card.
func (s *FlashcardSession) Next() bool {
	if s.current >= len(s.cards)-1 {
		return false
	}
	s.current++
	s.flipped = false
	return true
}

// Previous retreats one card, front side up. No-op on the first card.
func (s *FlashcardSession) Previous() bool {
	if s.current <= 0 {
		return false
	}
	s.current--
	s.flipped = false
	return true
}

// Progress reports (currentIndex+1, total) for the indicator.
func (s *FlashcardSession) Progress() (int, int) {
	return s.current + 1, len(s.cards)
}
