package providers

import (
	"fmt"
)

// The four prompt templates. The quiz and flashcard ones instruct the model
// to reply with a bare JSON array in an exact shape, no surrounding prose.

func ExplainPrompt(concept string) string {
	return fmt.Sprintf("Explain this concept in simple terms for a student: %s", concept)
}

func SummarizePrompt(notes string) string {
	return fmt.Sprintf("Summarize these study notes into key points: %s", notes)
}

func QuizPrompt(topic string, numQuestions int) string {
	return fmt.Sprintf(`Generate %d multiple-choice quiz questions about %s. Return ONLY a JSON array with this exact format:
[{"question": "question text", "options": ["option1", "option2", "option3", "option4"], "correct": 0}]
The "correct" field should be the index (0-3) of the correct answer. Do not include any other text.`, numQuestions, topic)
}

func FlashcardPrompt(topic string, numCards int) string {
	return fmt.Sprintf(`Create %d flashcards about %s. Return ONLY a JSON array with this exact format:
[{"front": "question or term", "back": "answer or definition"}]
Do not include any other text.`, numCards, topic)
}
