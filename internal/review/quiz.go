package review

import (
	"errors"
	"math"

	"github.com/emandor/studybuddy_service/internal/study"
)

var ErrNoQuestions = errors.New("quiz session needs at least one question")

// QuizSession walks a user through a fixed question list, collecting one
// answer per question. It is in progress until Advance is called past the
// last question, then finished for good. Restarting means throwing the
// session away and generating a new quiz.
type QuizSession struct {
	questions []study.QuizQuestion
	current   int
	answers   map[int]int
	finished  bool
}

func NewQuizSession(questions []study.QuizQuestion) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]study.QuizQuestion, len(questions))
	copy(qs, questions)
	return &QuizSession{
		questions: qs,
		answers:   make(map[int]int),
	}, nil
}

func (s *QuizSession) Len() int          { return len(s.questions) }
func (s *QuizSession) CurrentIndex() int { return s.current }
func (s *QuizSession) Finished() bool    { return s.finished }

func (s *QuizSession) Current() study.QuizQuestion {
	return s.questions[s.current]
}

// Answer reports the recorded choice for question i, if any.
func (s *QuizSession) Answer(i int) (int, bool) {
	a, ok := s.answers[i]
	return a, ok
}

// SelectAnswer records option as the answer for the current question,
// overwriting any earlier choice. It never advances.
func (s *QuizSession) SelectAnswer(option int) bool {
	if s.finished {
		return false
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return false
	}
	s.answers[s.current] = option
	return true
}

// Advance moves to the next question, or finishes the session on the last
// one. It refuses to move while the current question is unanswered.
func (s *QuizSession) Advance() bool {
	if s.finished {
		return false
	}
	if _, ok := s.answers[s.current]; !ok {
		return false
	}
	if s.current < len(s.questions)-1 {
		s.current++
	} else {
		s.finished = true
	}
	return true
}

// Score counts questions whose recorded answer matches the correct index.
// Unanswered questions never count.
func (s *QuizSession) Score() int {
	n := 0
	for i, q := range s.questions {
		if a, ok := s.answers[i]; ok && a == q.Correct {
			n++
		}
	}
	return n
}

func (s *QuizSession) Percentage() int {
	return int(math.Round(float64(s.Score()) * 100 / float64(len(s.questions))))
}

// Progress reports (currentIndex+1, total) for the indicator.
func (s *QuizSession) Progress() (int, int) {
	return s.current + 1, len(s.questions)
}

// QuestionResult is one row of the scored review.
type QuestionResult struct {
	Question study.QuizQuestion
	Selected int
	Answered bool
	Correct  bool
}

// Results renders the scored review, one entry per question in order.
func (s *QuizSession) Results() []QuestionResult {
	out := make([]QuestionResult, len(s.questions))
	for i, q := range s.questions {
		a, ok := s.answers[i]
		out[i] = QuestionResult{
			Question: q,
			Selected: a,
			Answered: ok,
			Correct:  ok && a == q.Correct,
		}
	}
	return out
}
