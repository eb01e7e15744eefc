package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/directory"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that DirectoryService implements ports.DirectoryService.
var _ ports.DirectoryService = (*DirectoryService)(nil)

// DirectoryService manages the faculty directory directly against the
// document store. Reads are campus-public; writes are moderator only.
type DirectoryService struct {
	store  ports.DocumentStore
	logger *slog.Logger
}

// NewDirectoryService creates a DirectoryService.
func NewDirectoryService(store ports.DocumentStore, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		store:  store,
		logger: logger,
	}
}

// List returns directory entries, narrowed to one department when non-empty.
// Entries come back oldest-first, the order the directory renders.
func (s *DirectoryService) List(ctx context.Context, department string) ([]directory.FacultyMember, error) {
	filter := ports.Filter{Ascending: true}
	if department != "" {
		filter.Equals = map[string]any{"department": department}
	}

	docs, err := s.store.List(ctx, directory.KindFaculty, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list faculty",
			slog.String("operation", "List"),
			slog.Any("error", err),
		)
		return nil, err
	}

	members := make([]directory.FacultyMember, 0, len(docs))
	for _, doc := range docs {
		members = append(members, *directory.FromFields(doc.ID, doc.CreatedAt, doc.Fields))
	}
	return members, nil
}

// Get returns a single directory entry.
func (s *DirectoryService) Get(ctx context.Context, id string) (*directory.FacultyMember, error) {
	doc, err := s.store.Get(ctx, directory.KindFaculty, id)
	if err != nil {
		return nil, err
	}
	return directory.FromFields(doc.ID, doc.CreatedAt, doc.Fields), nil
}

// Add creates a directory entry. Moderator only.
func (s *DirectoryService) Add(ctx context.Context, actor domain.Actor, member directory.FacultyMember) (*directory.FacultyMember, error) {
	if err := requireRole(actor, domain.RoleModerator); err != nil {
		return nil, err
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}

	member.ID = uuid.NewString()
	member.CreatedAt = time.Now().UTC()

	doc := &ports.Document{
		ID:        member.ID,
		Kind:      directory.KindFaculty,
		Fields:    member.Fields(),
		CreatedAt: member.CreatedAt,
	}
	if err := s.store.Create(ctx, doc); err != nil {
		s.logger.ErrorContext(ctx, "failed to add faculty member",
			slog.String("operation", "Add"),
			slog.String("member_id", member.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "faculty member added",
		slog.String("member_id", member.ID),
		slog.String("department", member.Department),
	)
	return &member, nil
}

// Update overwrites an existing entry's fields. Moderator only.
func (s *DirectoryService) Update(ctx context.Context, actor domain.Actor, member directory.FacultyMember) error {
	if err := requireRole(actor, domain.RoleModerator); err != nil {
		return err
	}
	if err := member.Validate(); err != nil {
		return err
	}

	delta := workflow.Delta{}
	for field, value := range member.Fields() {
		delta = delta.Set(field, value)
	}
	if err := s.store.UpdateFields(ctx, directory.KindFaculty, member.ID, delta); err != nil {
		s.logger.ErrorContext(ctx, "failed to update faculty member",
			slog.String("operation", "Update"),
			slog.String("member_id", member.ID),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// Remove deletes a directory entry. Moderator only.
func (s *DirectoryService) Remove(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireRole(actor, domain.RoleModerator); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, directory.KindFaculty, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove faculty member",
			slog.String("operation", "Remove"),
			slog.String("member_id", id),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
