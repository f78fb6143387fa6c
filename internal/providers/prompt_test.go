package providers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplainPrompt(t *testing.T) {
	p := ExplainPrompt("Photosynthesis")
	assert.Equal(t, "Explain this concept in simple terms for a student: Photosynthesis", p)
}

func TestSummarizePrompt(t *testing.T) {
	p := SummarizePrompt("the mitochondria is the powerhouse of the cell")
	assert.True(t, strings.HasPrefix(p, "Summarize these study notes into key points: "))
	assert.Contains(t, p, "mitochondria")
}

func TestQuizPrompt(t *testing.T) {
	p := QuizPrompt("World War II", 3)
	assert.Contains(t, p, "Generate 3 multiple-choice quiz questions about World War II.")
	assert.Contains(t, p, `[{"question": "question text", "options": ["option1", "option2", "option3", "option4"], "correct": 0}]`)
	assert.Contains(t, p, "Do not include any other text.")
}

func TestFlashcardPrompt(t *testing.T) {
	p := FlashcardPrompt("Biology", 7)
	assert.Contains(t, p, "Create 7 flashcards about Biology.")
	assert.Contains(t, p, `[{"front": "question or term", "back": "answer or definition"}]`)
}
