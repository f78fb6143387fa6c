package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emandor/studybuddy_service/internal/study"
)

func threeQuestions() []study.QuizQuestion {
	return []study.QuizQuestion{
		{Question: "Q1", Options: []string{"A", "B", "C", "D"}, Correct: 2},
		{Question: "Q2", Options: []string{"A", "B", "C", "D"}, Correct: 0},
		{Question: "Q3", Options: []string{"A", "B", "C", "D"}, Correct: 3},
	}
}

func TestNewQuizSession_Empty(t *testing.T) {
	sess, err := NewQuizSession(nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
	assert.Nil(t, sess)
}

func TestNewQuizSession_InitialState(t *testing.T) {
	sess, err := NewQuizSession(threeQuestions())
	require.NoError(t, err)

	assert.Equal(t, 0, sess.CurrentIndex())
	assert.False(t, sess.Finished())
	assert.Equal(t, "Q1", sess.Current().Question)
	_, answered := sess.Answer(0)
	assert.False(t, answered)
}

func TestQuizSession_AdvanceRequiresAnswer(t *testing.T) {
	sess, _ := NewQuizSession(threeQuestions())

	// Next stays disabled until the current question has an answer
	assert.False(t, sess.Advance())
	assert.Equal(t, 0, sess.CurrentIndex())
	assert.False(t, sess.Finished())

	require.True(t, sess.SelectAnswer(1))
	assert.True(t, sess.Advance())
	assert.Equal(t, 1, sess.CurrentIndex())
}

func TestQuizSession_SelectAnswerOverwrites(t *testing.T) {
	sess, _ := NewQuizSession(threeQuestions())

	require.True(t, sess.SelectAnswer(0))
	require.True(t, sess.SelectAnswer(2))

	a, ok := sess.Answer(0)
	require.True(t, ok)
	assert.Equal(t, 2, a)
	// selecting never advances
	assert.Equal(t, 0, sess.CurrentIndex())
}

func TestQuizSession_SelectAnswerBounds(t *testing.T) {
	sess, _ := NewQuizSession(threeQuestions())

	assert.False(t, sess.SelectAnswer(-1))
	assert.False(t, sess.SelectAnswer(4))
	_, ok := sess.Answer(0)
	assert.False(t, ok)
}

func TestQuizSession_FinishOnLastAdvance(t *testing.T) {
	sess, _ := NewQuizSession(threeQuestions())

	for i := 0; i < 3; i++ {
		require.True(t, sess.SelectAnswer(0))
		require.True(t, sess.Advance())
	}
	assert.True(t, sess.Finished())

	// finished is terminal
	assert.False(t, sess.Advance())
	assert.False(t, sess.SelectAnswer(1))
}

func TestQuizSession_Score(t *testing.T) {
	tests := []struct {
		name     string
		answers  []int // -1 means skip answering; session can't advance then
		want     int
		wantPct  int
		finished bool
	}{
		{name: "all correct", answers: []int{2, 0, 3}, want: 3, wantPct: 100, finished: true},
		{name: "all wrong", answers: []int{0, 1, 1}, want: 0, wantPct: 0, finished: true},
		{name: "mixed", answers: []int{2, 1, 3}, want: 2, wantPct: 67, finished: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _ := NewQuizSession(threeQuestions())
			for _, a := range tt.answers {
				require.True(t, sess.SelectAnswer(a))
				require.True(t, sess.Advance())
			}
			assert.Equal(t, tt.finished, sess.Finished())
			assert.Equal(t, tt.want, sess.Score())
			assert.Equal(t, tt.wantPct, sess.Percentage())
		})
	}
}

func TestQuizSession_UnansweredNeverCounts(t *testing.T) {
	// answer only the first question correctly, leave the rest untouched
	sess, _ := NewQuizSession(threeQuestions())
	require.True(t, sess.SelectAnswer(2))
	assert.Equal(t, 1, sess.Score())
}

func TestQuizSession_OutOfRangeCorrectIndexNeverMatches(t *testing.T) {
	// a provider-supplied correct index past the options is passed through;
	// it simply can never be selected, so it never scores
	sess, err := NewQuizSession([]study.QuizQuestion{
		{Question: "Q", Options: []string{"A", "B", "C", "D"}, Correct: 7},
	})
	require.NoError(t, err)

	require.True(t, sess.SelectAnswer(3))
	require.True(t, sess.Advance())
	assert.True(t, sess.Finished())
	assert.Equal(t, 0, sess.Score())
}

func TestQuizSession_Progress(t *testing.T) {
	sess, _ := NewQuizSession(threeQuestions())
	cur, total := sess.Progress()
	assert.Equal(t, 1, cur)
	assert.Equal(t, 3, total)
}

func TestQuizSession_Results(t *testing.T) {
	sess, _ := NewQuizSession(threeQuestions())
	require.True(t, sess.SelectAnswer(2)) // correct
	require.True(t, sess.Advance())
	require.True(t, sess.SelectAnswer(1)) // wrong
	require.True(t, sess.Advance())
	// third left unanswered

	results := sess.Results()
	require.Len(t, results, 3)

	assert.True(t, results[0].Answered)
	assert.True(t, results[0].Correct)
	assert.True(t, results[1].Answered)
	assert.False(t, results[1].Correct)
	assert.False(t, results[2].Answered)
	assert.False(t, results[2].Correct)
}

func TestQuizSession_CopiesInput(t *testing.T) {
	qs := threeQuestions()
	sess, _ := NewQuizSession(qs)
	qs[0].Correct = 0

	assert.Equal(t, 2, sess.Current().Correct)
}
