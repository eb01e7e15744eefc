package ports

import "context"

// CompletionClient defines the client port for the external generative-AI
// collaborator. Implemented by the genai adapter; called by the flashcard
// service. The only contract the rest of the system relies on is the
// documented flashcard output format; the raw completion text is returned
// as-is for the domain parser to deal with.
type CompletionClient interface {
	// Complete sends a text prompt and returns the model's free-text reply.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithDocument sends a prompt together with an inline document
	// (vision/file completion) and returns the model's free-text reply.
	CompleteWithDocument(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}
