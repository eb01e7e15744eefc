package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/notes"
	"github.com/campusconnect/campus-api/internal/ports"
)

// SubjectCleanupHook removes a subject document once the last note under it
// is deleted. The notes service dispatches a deleted event for every note it
// removes; this hook, registered on the coordinator's bus at startup,
// re-lists the subject and drops its entry when nothing references it
// anymore. It is idempotent: running it for a subject that is already gone,
// or that gained new notes in the meantime, is a no-op.
type SubjectCleanupHook struct {
	store  ports.DocumentStore
	logger *slog.Logger
}

// NewSubjectCleanupHook creates the hook on the given document store.
func NewSubjectCleanupHook(store ports.DocumentStore, logger *slog.Logger) *SubjectCleanupHook {
	return &SubjectCleanupHook{store: store, logger: logger}
}

// Name identifies the hook in dispatch logs.
func (h *SubjectCleanupHook) Name() string { return "subject-cleanup" }

// AfterCommit reacts to note deletions and ignores every other event.
func (h *SubjectCleanupHook) AfterCommit(ctx context.Context, event ports.Event) error {
	if event.Type != ports.EventDeleted || event.Kind != notes.KindNote {
		return nil
	}
	subject, _ := event.Fields["subject"].(string)
	if subject == "" {
		return nil
	}

	remaining, err := h.store.List(ctx, notes.KindNote, ports.Filter{
		Equals: map[string]any{"subject": subject},
	})
	if err != nil {
		return fmt.Errorf("listing notes under subject %s: %w", subject, err)
	}
	if len(remaining) > 0 {
		return nil
	}

	switch err := h.store.Delete(ctx, notes.KindSubject, subject); {
	case err == nil:
		h.logger.InfoContext(ctx, "empty subject removed", slog.String("subject", subject))
	case errors.Is(err, domain.ErrNotFound):
		// A concurrent delete already took it.
	default:
		return fmt.Errorf("removing empty subject %s: %w", subject, err)
	}
	return nil
}
