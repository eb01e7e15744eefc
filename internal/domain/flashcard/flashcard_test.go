package flashcard

import (
	"errors"
	"strings"
	"testing"

	"github.com/campusconnect/campus-api/internal/domain"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []Card
		wantErr error
	}{
		{
			name: "well formed output",
			input: `1. Q: What is a goroutine? A: A lightweight thread managed by the Go runtime.
2. Q: What does defer do? A: Schedules a call to run when the function returns.`,
			want: []Card{
				{Question: "What is a goroutine?", Answer: "A lightweight thread managed by the Go runtime."},
				{Question: "What does defer do?", Answer: "Schedules a call to run when the function returns."},
			},
		},
		{
			name: "chatter around the cards is ignored",
			input: `Sure! Here are your flashcards:

1. Q: What is RAM? A: Volatile working memory.

Hope that helps!`,
			want: []Card{
				{Question: "What is RAM?", Answer: "Volatile working memory."},
			},
		},
		{
			name:  "extra whitespace is trimmed",
			input: "1.   Q:    Spaced question?    A:    Spaced answer.   ",
			want: []Card{
				{Question: "Spaced question?", Answer: "Spaced answer."},
			},
		},
		{
			name:    "empty output",
			input:   "",
			wantErr: ErrNoCards,
		},
		{
			name:    "malformed output yields zero cards not a crash",
			input:   "The topic is too vague, please be more specific.",
			wantErr: ErrNoCards,
		},
		{
			name:    "matched line with empty answer is dropped",
			input:   "1. Q: Question only A:",
			wantErr: ErrNoCards,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, domain.ErrUnavailable) {
					t.Errorf("ErrNoCards should unwrap to domain.ErrUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v, want nil", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() returned %d cards, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("card %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTopicPrompt_CarriesContract(t *testing.T) {
	t.Parallel()

	prompt := TopicPrompt("operating systems", 5)
	if !strings.Contains(prompt, "Q: [Your Question] A: [Your Answer]") {
		t.Errorf("TopicPrompt() missing the output contract, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"operating systems"`) {
		t.Errorf("TopicPrompt() missing the topic, got:\n%s", prompt)
	}

	// Non-positive counts fall back to the default rather than asking the
	// model for zero cards.
	prompt = TopicPrompt("anything", 0)
	if !strings.Contains(prompt, "Generate 5 flashcards") {
		t.Errorf("TopicPrompt(0) should fall back to %d cards, got:\n%s", DefaultCount, prompt)
	}
}
