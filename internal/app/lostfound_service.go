package app

import (
	"context"
	"log/slog"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/lostfound"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that LostFoundService implements ports.LostFoundService.
var _ ports.LostFoundService = (*LostFoundService)(nil)

// LostFoundService manages lost-and-found reports through the workflow
// coordinator. Reports awaiting moderation (open) and rejected reports are
// visible only to their owner and to privileged actors; everything else is
// campus-public.
type LostFoundService struct {
	coord  ports.Coordinator
	logger *slog.Logger
}

// NewLostFoundService creates a LostFoundService.
func NewLostFoundService(coord ports.Coordinator, logger *slog.Logger) *LostFoundService {
	return &LostFoundService{
		coord:  coord,
		logger: logger,
	}
}

// Report files a new lost-and-found report in the open (unmoderated) state.
func (s *LostFoundService) Report(ctx context.Context, actor domain.Actor, report lostfound.Report) (*workflow.Item, error) {
	if err := report.Validate(); err != nil {
		return nil, err
	}

	item, err := s.coord.Create(ctx, workflow.KindLostFound, actor, report.Payload())
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lost-and-found report filed",
		slog.String("report_id", item.ID),
		slog.String("owner_id", actor.ID),
	)
	return item, nil
}

// Get returns a single report.
func (s *LostFoundService) Get(ctx context.Context, id string) (*workflow.Item, error) {
	return s.coord.Get(ctx, workflow.KindLostFound, id)
}

// List returns reports visible to the actor, narrowed to one status when
// status is non-empty.
func (s *LostFoundService) List(ctx context.Context, actor domain.Actor, status workflow.State) ([]workflow.Item, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	items, err := s.coord.List(ctx, workflow.KindLostFound, ports.ItemFilter{Status: status})
	if err != nil {
		return nil, err
	}
	if isPrivileged(actor) {
		return items, nil
	}
	return filterItems(items, func(it workflow.Item) bool { return reportVisible(actor, it) }), nil
}

// Watch subscribes to the same view List returns.
func (s *LostFoundService) Watch(ctx context.Context, actor domain.Actor, status workflow.State) (<-chan ports.ItemSnapshot, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	snaps, err := s.coord.Watch(ctx, workflow.KindLostFound, ports.ItemFilter{Status: status})
	if err != nil {
		return nil, err
	}
	if isPrivileged(actor) {
		return snaps, nil
	}
	return filterSnapshots(ctx, snaps, func(it workflow.Item) bool { return reportVisible(actor, it) }), nil
}

// Transition requests a lifecycle step (approve, reject, claim, confirm,
// deny). The transition table enforces who may do what from which state.
func (s *LostFoundService) Transition(ctx context.Context, actor domain.Actor, id, transition string) (*workflow.Item, error) {
	return s.coord.RequestTransition(ctx, workflow.KindLostFound, id, transition, actor, nil)
}

// Delete removes a report. Owner, staff, or moderator.
func (s *LostFoundService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.coord.Delete(ctx, workflow.KindLostFound, id, actor)
}

// reportVisible reports whether an unprivileged actor may see the item.
// Open and rejected reports are owner-only; the moderated states are public.
func reportVisible(actor domain.Actor, it workflow.Item) bool {
	switch it.Status {
	case workflow.StateOpen, workflow.StateRejected:
		return it.OwnerID == actor.ID
	default:
		return true
	}
}
