package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/emandor/studybuddy_service/internal/auth"
	"github.com/emandor/studybuddy_service/internal/model"
	"github.com/emandor/studybuddy_service/internal/review"
	"github.com/emandor/studybuddy_service/internal/study"
	"github.com/emandor/studybuddy_service/internal/telemetry"
)

// Mode is the active tab of a study session.
type Mode string

const (
	ModeExplain    Mode = "explain"
	ModeSummarize  Mode = "summarize"
	ModeQuiz       Mode = "quiz"
	ModeFlashcards Mode = "flashcards"
	ModeHistory    Mode = "history"
)

var (
	ErrBusy        = errors.New("a generation is already in progress")
	ErrEmptyInput  = errors.New("input is required")
	ErrEmptyResult = errors.New("nothing was generated, try a different topic")
	ErrWrongMode   = errors.New("mode does not accept submissions")
)

// Generator is the slice of the study service the controller needs.
type Generator interface {
	Generate(ctx context.Context, kind study.Kind, subject string, count int) (study.Result, error)
}

// HistoryReader feeds the history view.
type HistoryReader interface {
	List(ctx context.Context, ownerID int64, limit int) ([]model.HistoryRecord, error)
}

// Controller owns one user session's view state: the active mode, the text
// panel, and whichever review session is live. One submission at a time; the
// submit affordance stays disabled while a request is in flight.
type Controller struct {
	gen      Generator
	history  HistoryReader
	identity *auth.Identity
	limit    int

	mu      sync.Mutex
	mode    Mode
	busy    bool
	text    string
	quiz    *review.QuizSession
	cards   *review.FlashcardSession
	records []model.HistoryRecord
}

func New(gen Generator, hist HistoryReader, identity *auth.Identity, historyLimit int) *Controller {
	return &Controller{
		gen:      gen,
		history:  hist,
		identity: identity,
		limit:    historyLimit,
		mode:     ModeExplain,
	}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches tabs and clears whatever the previous tab showed.
func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	c.text = ""
	c.quiz = nil
	c.cards = nil
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Submit runs one generation for the active mode and routes the result into
// the matching panel. A second submit while one is outstanding returns
// ErrBusy without touching the in-flight request.
func (c *Controller) Submit(ctx context.Context, input string, count int) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return ErrEmptyInput
	}

	c.mu.Lock()
	mode := c.mode
	kind, ok := kindFor(mode)
	if !ok {
		c.mu.Unlock()
		return ErrWrongMode
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.text = ""
	c.quiz = nil
	c.cards = nil
	c.mu.Unlock()

	res, err := c.gen.Generate(ctx, kind, input, count)

	c.mu.Lock()
	defer func() {
		c.busy = false
		c.mu.Unlock()
	}()

	if err != nil {
		c.text = "Error: " + err.Error()
		return err
	}

	switch kind {
	case study.KindQuiz:
		sess, err := review.NewQuizSession(res.Questions)
		if err != nil {
			// an empty quiz is a generation failure, not a session
			c.text = "Error: " + ErrEmptyResult.Error()
			return ErrEmptyResult
		}
		c.quiz = sess
	case study.KindFlashcards:
		sess, err := review.NewFlashcardSession(res.Cards)
		if err != nil {
			c.text = "Error: " + ErrEmptyResult.Error()
			return ErrEmptyResult
		}
		c.cards = sess
	default:
		c.text = res.Text
	}
	return nil
}

// Quiz returns the live quiz session, nil when none.
func (c *Controller) Quiz() *review.QuizSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quiz
}

// Flashcards returns the live flashcard session, nil when none.
func (c *Controller) Flashcards() *review.FlashcardSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cards
}

// Text returns the plain display panel (explanations, summaries, errors).
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Restart discards the live review session. A fresh generation starts the
// next one; sessions never replay.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quiz = nil
	c.cards = nil
}

// RefreshHistory reloads the signed-in user's records. Signed out or failed
// fetches both read as no history.
func (c *Controller) RefreshHistory(ctx context.Context) []model.HistoryRecord {
	uid, ok := c.identity.Current()
	if !ok {
		c.mu.Lock()
		c.records = nil
		c.mu.Unlock()
		return nil
	}

	recs, err := c.history.List(ctx, uid, c.limit)
	if err != nil {
		log := telemetry.L()
		log.Warn().Err(err).Int64("user_id", uid).Msg("history_refresh_failed")
		recs = nil
	}

	c.mu.Lock()
	c.records = recs
	c.mu.Unlock()
	return recs
}

// History returns the last refreshed records.
func (c *Controller) History() []model.HistoryRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records
}

func kindFor(m Mode) (study.Kind, bool) {
	switch m {
	case ModeExplain:
		return study.KindExplain, true
	case ModeSummarize:
		return study.KindSummarize, true
	case ModeQuiz:
		return study.KindQuiz, true
	case ModeFlashcards:
		return study.KindFlashcards, true
	default:
		return "", false
	}
}
