package ports

import (
	"context"

	"github.com/campusconnect/campus-api/internal/domain"
)

// EventType classifies a committed store mutation for hook dispatch.
type EventType string

const (
	EventCreated    EventType = "created"
	EventTransition EventType = "transition"
	EventDeleted    EventType = "deleted"
)

// Event describes one committed mutation. For deletions, Fields carries the
// document's last known field map so hooks can clean up derived documents
// the deleted one referenced.
type Event struct {
	Type       EventType
	Kind       string
	ID         string
	Transition string
	Fields     map[string]any
	Actor      domain.Actor
}

// Hook is a post-commit side effect (a projection, a cleanup, a
// notification). Hooks run at most once per committed mutation,
// fire-and-forget: a hook failure is logged, never retried, and never rolls
// back the mutation it followed. Because a duplicate event can re-trigger
// them, implementations must be idempotent.
type Hook interface {
	// Name identifies the hook in logs.
	Name() string

	// AfterCommit runs the side effect. The context is detached from the
	// request that caused the mutation.
	AfterCommit(ctx context.Context, event Event) error
}

// HookBus registers hooks and fans committed events out to them. The
// coordinator implements it for workflow mutations; services that write
// documents outside the workflow lifecycle publish their own events through
// Dispatch so the same hooks observe every mutation.
type HookBus interface {
	// RegisterHook attaches a post-commit hook. Registration happens during
	// startup wiring, before any events are dispatched.
	RegisterHook(hook Hook)

	// Dispatch delivers a committed event to every registered hook.
	// It returns without waiting for the hooks to finish.
	Dispatch(event Event)
}
