package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/campus"
	"github.com/campusconnect/campus-api/internal/domain/skills"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that SkillsService implements ports.SkillsService.
var _ ports.SkillsService = (*SkillsService)(nil)

// SkillsService manages peer skill-exchange requests through the workflow
// coordinator. Requests and their offers are campus-public.
type SkillsService struct {
	coord  ports.Coordinator
	store  ports.DocumentStore
	logger *slog.Logger
}

// NewSkillsService creates a SkillsService. The store is read for the
// poster's profile when a request is created.
func NewSkillsService(coord ports.Coordinator, store ports.DocumentStore, logger *slog.Logger) *SkillsService {
	return &SkillsService{
		coord:  coord,
		store:  store,
		logger: logger,
	}
}

// Post publishes a new skill request in the open state. The poster's display
// fields are denormalized from their profile so the board renders a name even
// when the body omits one; a missing profile falls back to the body values.
func (s *SkillsService) Post(ctx context.Context, actor domain.Actor, request skills.Request) (*workflow.Item, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	s.enrichPoster(ctx, actor, &request)

	item, err := s.coord.Create(ctx, workflow.KindSkillRequest, actor, request.Payload())
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "skill request posted",
		slog.String("request_id", item.ID),
		slog.String("owner_id", actor.ID),
		slog.String("skill", request.SkillName),
	)
	return item, nil
}

// enrichPoster copies display fields off the actor's profile onto the
// request. Best effort: an absent profile or store error leaves the body
// values in place.
func (s *SkillsService) enrichPoster(ctx context.Context, actor domain.Actor, request *skills.Request) {
	doc, err := s.store.Get(ctx, campus.KindUser, actor.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "poster profile lookup failed",
				slog.String("operation", "Post"),
				slog.String("actor_id", actor.ID),
				slog.Any("error", err),
			)
		}
		return
	}

	profile := campus.UserFromFields(doc.ID, doc.CreatedAt, doc.Fields)
	if profile.FullName != "" {
		request.PostedByName = profile.FullName
	}
	if profile.SpecializedID != "" {
		request.PostedBySapID = profile.SpecializedID
	}
}

// Get returns a single request.
func (s *SkillsService) Get(ctx context.Context, id string) (*workflow.Item, error) {
	return s.coord.Get(ctx, workflow.KindSkillRequest, id)
}

// List returns requests, narrowed to one status when status is non-empty.
func (s *SkillsService) List(ctx context.Context, status workflow.State) ([]workflow.Item, error) {
	return s.coord.List(ctx, workflow.KindSkillRequest, ports.ItemFilter{Status: status})
}

// Watch subscribes to the same view List returns.
func (s *SkillsService) Watch(ctx context.Context, status workflow.State) (<-chan ports.ItemSnapshot, error) {
	return s.coord.Watch(ctx, workflow.KindSkillRequest, ports.ItemFilter{Status: status})
}

// Offer records the actor's offer to help on an open request. The helper id
// is pinned to the acting user; a second offer from the same helper is a
// conflict.
func (s *SkillsService) Offer(ctx context.Context, actor domain.Actor, id string, offer workflow.Offer) (*workflow.Item, error) {
	offer.HelperID = actor.ID
	if strings.TrimSpace(offer.HelperName) == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"helper_name": domain.MsgRequired}}
	}
	return s.coord.RequestTransition(ctx, workflow.KindSkillRequest, id, "offer", actor, &offer)
}

// Resolve closes the request. Owner only, enforced by the transition table.
func (s *SkillsService) Resolve(ctx context.Context, actor domain.Actor, id string) (*workflow.Item, error) {
	return s.coord.RequestTransition(ctx, workflow.KindSkillRequest, id, "resolve", actor, nil)
}

// Delete removes a request. Owner, staff, or moderator.
func (s *SkillsService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.coord.Delete(ctx, workflow.KindSkillRequest, id, actor)
}
