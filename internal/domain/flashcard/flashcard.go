// Package flashcard contains the AI-generated flashcard type, the prompt
// that pins the model to a parseable output contract, and the parser for
// that contract. The only thing the rest of the system relies on from the
// generative-AI collaborator is the documented line format
// "N. Q: <question> A: <answer>"; anything the parser cannot match is
// dropped, and zero matches is a user-visible try-again condition rather
// than a crash.
package flashcard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/campusconnect/campus-api/internal/domain"
)

// Card is a single question/answer pair.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DefaultCount is the number of cards requested when the caller does not say.
const DefaultCount = 5

// ErrNoCards signals that the model output contained no parseable cards.
// It unwraps to domain.ErrUnavailable so callers surface it as a transient,
// retryable condition.
var ErrNoCards = fmt.Errorf("no flashcards could be parsed from the model output: %w", domain.ErrUnavailable)

// cardPattern matches one "N. Q: ... A: ..." line of model output.
var cardPattern = regexp.MustCompile(`\d+\.\s*Q:\s*(.*?)\s*A:\s*(.*)`)

// Parse extracts cards from free-form model output. Lines that do not match
// the contract are skipped; matches with an empty question or answer are
// dropped. Returns ErrNoCards when nothing usable was found.
func Parse(text string) ([]Card, error) {
	var cards []Card
	for _, match := range cardPattern.FindAllStringSubmatch(text, -1) {
		question := strings.TrimSpace(match[1])
		answer := strings.TrimSpace(match[2])
		if question == "" || answer == "" {
			continue
		}
		cards = append(cards, Card{Question: question, Answer: answer})
	}
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	return cards, nil
}

// TopicPrompt builds the generation prompt for a free-text topic. The format
// instruction is the contract Parse depends on.
func TopicPrompt(topic string, count int) string {
	if count < 1 {
		count = DefaultCount
	}
	return fmt.Sprintf(`Generate %d flashcards about the following topic: %q.
For each flashcard, provide a question and a concise answer.
Use the following format exactly for each card, with no extra text before or after:
1. Q: [Your Question] A: [Your Answer]
2. Q: [Your Question] A: [Your Answer]
...`, count, topic)
}

// DocumentPrompt builds the generation prompt for an attached document
// (the from-file flow): same output contract, sourced from the document
// instead of a topic string.
func DocumentPrompt(count int) string {
	if count < 1 {
		count = DefaultCount
	}
	return fmt.Sprintf(`Read the attached document and generate %d flashcards covering its key points.
For each flashcard, provide a question and a concise answer.
Use the following format exactly for each card, with no extra text before or after:
1. Q: [Your Question] A: [Your Answer]
2. Q: [Your Question] A: [Your Answer]
...`, count)
}
