package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/flashcard"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that FlashcardService implements ports.FlashcardService.
var _ ports.FlashcardService = (*FlashcardService)(nil)

// maxFlashcards caps a single generation request.
const maxFlashcards = 20

// FlashcardService generates study flashcards through the generative-AI
// completion client. The model is pinned to a parseable line contract; output
// that yields no cards surfaces as a retryable error, never a crash.
type FlashcardService struct {
	client ports.CompletionClient
	logger *slog.Logger
}

// NewFlashcardService creates a FlashcardService.
func NewFlashcardService(client ports.CompletionClient, logger *slog.Logger) *FlashcardService {
	return &FlashcardService{
		client: client,
		logger: logger,
	}
}

// FromTopic generates count flashcards about a free-text topic.
func (s *FlashcardService) FromTopic(ctx context.Context, topic string, count int) ([]flashcard.Card, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"topic": domain.MsgRequired}}
	}
	count = clampCount(count)

	s.logger.InfoContext(ctx, "generating flashcards from topic",
		slog.String("topic", topic),
		slog.Int("count", count),
	)

	text, err := s.client.Complete(ctx, flashcard.TopicPrompt(topic, count))
	if err != nil {
		s.logger.ErrorContext(ctx, "flashcard generation failed",
			slog.String("operation", "FromTopic"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.parse(ctx, "FromTopic", text)
}

// FromDocument generates count flashcards from an uploaded document (an
// image or a PDF of study material).
func (s *FlashcardService) FromDocument(ctx context.Context, mimeType string, data []byte, count int) ([]flashcard.Card, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(mimeType) == "" {
		fields["mime_type"] = domain.MsgRequired
	}
	if len(data) == 0 {
		fields["document"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	count = clampCount(count)

	s.logger.InfoContext(ctx, "generating flashcards from document",
		slog.String("mime_type", mimeType),
		slog.Int("size_bytes", len(data)),
		slog.Int("count", count),
	)

	text, err := s.client.CompleteWithDocument(ctx, flashcard.DocumentPrompt(count), mimeType, data)
	if err != nil {
		s.logger.ErrorContext(ctx, "flashcard generation failed",
			slog.String("operation", "FromDocument"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.parse(ctx, "FromDocument", text)
}

func (s *FlashcardService) parse(ctx context.Context, op, text string) ([]flashcard.Card, error) {
	cards, err := flashcard.Parse(text)
	if err != nil {
		s.logger.WarnContext(ctx, "model output contained no parseable flashcards",
			slog.String("operation", op),
			slog.Int("output_length", len(text)),
		)
		return nil, err
	}
	return cards, nil
}

func clampCount(count int) int {
	if count < 1 {
		return flashcard.DefaultCount
	}
	if count > maxFlashcards {
		return maxFlashcards
	}
	return count
}
