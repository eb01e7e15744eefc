package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/campus"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that UserService implements ports.UserService.
var _ ports.UserService = (*UserService)(nil)

// UserService manages user profile documents. Authentication is external;
// the profile only carries display fields and the role the admin screens
// assign. Role changes never ride a profile update, they go through SetRole.
type UserService struct {
	store  ports.DocumentStore
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(store ports.DocumentStore, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// Get returns a single profile.
func (s *UserService) Get(ctx context.Context, id string) (*campus.User, error) {
	doc, err := s.store.Get(ctx, campus.KindUser, id)
	if err != nil {
		return nil, err
	}
	return campus.UserFromFields(doc.ID, doc.CreatedAt, doc.Fields), nil
}

// Register creates a profile. The ID normally comes from the external
// identity provider; a missing ID gets a generated one. New profiles start
// as students regardless of what the caller sends.
func (s *UserService) Register(ctx context.Context, user campus.User) (*campus.User, error) {
	user.Role = domain.RoleStudent
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.CreatedAt = time.Now().UTC()

	doc := &ports.Document{
		ID:        user.ID,
		Kind:      campus.KindUser,
		Fields:    user.Fields(),
		CreatedAt: user.CreatedAt,
	}
	if err := s.store.Create(ctx, doc); err != nil {
		s.logger.ErrorContext(ctx, "failed to register user",
			slog.String("operation", "Register"),
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	return &user, nil
}

// Update overwrites a profile's display fields. The user themselves or a
// moderator; the stored role is left untouched.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, user campus.User) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.ID != user.ID && actor.Role != domain.RoleModerator {
		return fmt.Errorf("actor %s may not update profile %s: %w", actor.ID, user.ID, domain.ErrForbidden)
	}
	// Role is validated and persisted by SetRole only; make Validate pass
	// without trusting the caller's role field.
	user.Role = domain.RoleStudent
	if err := user.Validate(); err != nil {
		return err
	}

	delta := workflow.Delta{}
	for field, value := range user.Fields() {
		if field == "role" {
			continue
		}
		delta = delta.Set(field, value)
	}
	if err := s.store.UpdateFields(ctx, campus.KindUser, user.ID, delta); err != nil {
		s.logger.ErrorContext(ctx, "failed to update user",
			slog.String("operation", "Update"),
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// List returns every profile. Moderator only.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]campus.User, error) {
	if err := requireRole(actor, domain.RoleModerator); err != nil {
		return nil, err
	}

	docs, err := s.store.List(ctx, campus.KindUser, ports.Filter{Ascending: true})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list users",
			slog.String("operation", "List"),
			slog.Any("error", err),
		)
		return nil, err
	}

	users := make([]campus.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, *campus.UserFromFields(doc.ID, doc.CreatedAt, doc.Fields))
	}
	return users, nil
}

// SetRole changes a user's role. Moderator only.
func (s *UserService) SetRole(ctx context.Context, actor domain.Actor, id string, role domain.Role) error {
	if err := requireRole(actor, domain.RoleModerator); err != nil {
		return err
	}
	if !role.IsValid() {
		return &domain.ValidationError{Fields: map[string]string{"role": "invalid: " + string(role)}}
	}

	delta := workflow.Delta{}.Set("role", string(role))
	if err := s.store.UpdateFields(ctx, campus.KindUser, id, delta); err != nil {
		s.logger.ErrorContext(ctx, "failed to set user role",
			slog.String("operation", "SetRole"),
			slog.String("user_id", id),
			slog.Any("error", err),
		)
		return err
	}

	s.logger.InfoContext(ctx, "user role changed",
		slog.String("user_id", id),
		slog.String("role", string(role)),
		slog.String("actor_id", actor.ID),
	)
	return nil
}

// Delete removes a profile. The user themselves or a moderator.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.ID != id && actor.Role != domain.RoleModerator {
		return fmt.Errorf("actor %s may not delete profile %s: %w", actor.ID, id, domain.ErrForbidden)
	}

	if err := s.store.Delete(ctx, campus.KindUser, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete user",
			slog.String("operation", "Delete"),
			slog.String("user_id", id),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
