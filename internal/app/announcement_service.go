package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/campus"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that AnnouncementService implements ports.AnnouncementService.
var _ ports.AnnouncementService = (*AnnouncementService)(nil)

// AnnouncementService manages campus-wide announcements directly against the
// document store. Reads are campus-public; writes are moderator only.
type AnnouncementService struct {
	store  ports.DocumentStore
	logger *slog.Logger
}

// NewAnnouncementService creates an AnnouncementService.
func NewAnnouncementService(store ports.DocumentStore, logger *slog.Logger) *AnnouncementService {
	return &AnnouncementService{
		store:  store,
		logger: logger,
	}
}

// List returns every announcement, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]campus.Announcement, error) {
	docs, err := s.store.List(ctx, campus.KindAnnouncement, ports.Filter{})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list announcements",
			slog.String("operation", "List"),
			slog.Any("error", err),
		)
		return nil, err
	}
	return announcementsFromDocs(docs), nil
}

// Watch subscribes to the announcement feed. Each delivery is the full list,
// newest first.
func (s *AnnouncementService) Watch(ctx context.Context) (<-chan ports.AnnouncementSnapshot, error) {
	snaps, err := s.store.Watch(ctx, campus.KindAnnouncement, ports.Filter{})
	if err != nil {
		return nil, err
	}

	out := make(chan ports.AnnouncementSnapshot, cap(snaps))
	go func() {
		defer close(out)
		for snap := range snaps {
			mapped := ports.AnnouncementSnapshot{Err: snap.Err}
			if snap.Err == nil {
				mapped.Announcements = announcementsFromDocs(snap.Docs)
			}
			select {
			case out <- mapped:
			case <-ctx.Done():
				return
			}
			if mapped.Err != nil {
				return
			}
		}
	}()
	return out, nil
}

// Publish creates an announcement. Moderator only.
func (s *AnnouncementService) Publish(ctx context.Context, actor domain.Actor, ann campus.Announcement) (*campus.Announcement, error) {
	if err := requireRole(actor, domain.RoleModerator); err != nil {
		return nil, err
	}
	if err := ann.Validate(); err != nil {
		return nil, err
	}

	ann.ID = uuid.NewString()
	ann.CreatedAt = time.Now().UTC()

	doc := &ports.Document{
		ID:        ann.ID,
		Kind:      campus.KindAnnouncement,
		Fields:    ann.Fields(),
		CreatedAt: ann.CreatedAt,
	}
	if err := s.store.Create(ctx, doc); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish announcement",
			slog.String("operation", "Publish"),
			slog.String("announcement_id", ann.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "announcement published",
		slog.String("announcement_id", ann.ID),
		slog.Bool("urgent", ann.Urgent),
	)
	return &ann, nil
}

// Remove deletes an announcement. Moderator only.
func (s *AnnouncementService) Remove(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireRole(actor, domain.RoleModerator); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, campus.KindAnnouncement, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove announcement",
			slog.String("operation", "Remove"),
			slog.String("announcement_id", id),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func announcementsFromDocs(docs []ports.Document) []campus.Announcement {
	anns := make([]campus.Announcement, 0, len(docs))
	for _, doc := range docs {
		anns = append(anns, *campus.AnnouncementFromFields(doc.ID, doc.CreatedAt, doc.Fields))
	}
	return anns
}
