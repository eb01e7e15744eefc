package app_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/campusconnect/campus-api/internal/adapters/store/memstore"
	"github.com/campusconnect/campus-api/internal/app"
	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/campus"
	"github.com/campusconnect/campus-api/internal/domain/directory"
)

func TestPublishAnnouncement_ModeratorOnly(t *testing.T) {
	t.Parallel()

	s := app.NewAnnouncementService(memstore.New(4), slog.New(slog.DiscardHandler))
	ctx := context.Background()
	ann := campus.Announcement{Title: "Exam schedule", Message: "Posted on the portal", Urgent: true}

	if _, err := s.Publish(ctx, student, ann); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Publish(student) error = %v, want domain.ErrForbidden", err)
	}
	if _, err := s.Publish(ctx, staff, ann); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Publish(staff) error = %v, want domain.ErrForbidden", err)
	}

	published, err := s.Publish(ctx, moderator, ann)
	if err != nil {
		t.Fatalf("Publish(moderator) error = %v", err)
	}
	if published.ID == "" || !published.Urgent {
		t.Errorf("published = %+v, want generated ID and urgent flag kept", published)
	}

	listed, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Exam schedule" {
		t.Errorf("listed = %+v, want the published announcement", listed)
	}

	if err := s.Remove(ctx, moderator, published.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if listed, _ := s.List(ctx); len(listed) != 0 {
		t.Errorf("listed = %+v, want empty after removal", listed)
	}
}

func TestDirectory_CRUD(t *testing.T) {
	t.Parallel()

	s := app.NewDirectoryService(memstore.New(4), slog.New(slog.DiscardHandler))
	ctx := context.Background()
	member := directory.FacultyMember{
		Name:       "Dr. Rao",
		Department: "Physics",
		Timetable:  map[string]string{"Monday": "10:00-12:00"},
	}

	if _, err := s.Add(ctx, staff, member); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Add(staff) error = %v, want domain.ErrForbidden", err)
	}

	added, err := s.Add(ctx, moderator, member)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := s.Get(ctx, added.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Timetable["Monday"] != "10:00-12:00" {
		t.Errorf("timetable = %v, want Monday slot preserved", got.Timetable)
	}

	got.OfficeLocation = "Block C, Room 12"
	if err := s.Update(ctx, moderator, *got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	updated, _ := s.Get(ctx, added.ID)
	if updated.OfficeLocation != "Block C, Room 12" {
		t.Errorf("office = %q, want updated value", updated.OfficeLocation)
	}

	physics, err := s.List(ctx, "Physics")
	if err != nil {
		t.Fatalf("List(Physics) error = %v", err)
	}
	if len(physics) != 1 {
		t.Errorf("len(physics) = %d, want 1", len(physics))
	}
	if none, _ := s.List(ctx, "History"); len(none) != 0 {
		t.Errorf("len(history) = %d, want 0", len(none))
	}

	if err := s.Remove(ctx, moderator, added.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := s.Get(ctx, added.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(removed) error = %v, want domain.ErrNotFound", err)
	}
}

func TestUserService_Lifecycle(t *testing.T) {
	t.Parallel()

	s := app.NewUserService(memstore.New(4), slog.New(slog.DiscardHandler))
	ctx := context.Background()

	registered, err := s.Register(ctx, campus.User{
		ID:            "u-100",
		FullName:      "Priya Sharma",
		SpecializedID: "5001",
		Role:          domain.RoleModerator, // ignored; everyone starts as a student
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if registered.Role != domain.RoleStudent {
		t.Errorf("role = %q, want new accounts forced to student", registered.Role)
	}

	// Duplicate registration conflicts.
	if _, err := s.Register(ctx, campus.User{ID: "u-100", FullName: "Priya Sharma"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Register(duplicate) error = %v, want domain.ErrConflict", err)
	}

	// Role changes are moderator only and survive profile updates.
	if err := s.SetRole(ctx, domain.Actor{ID: "u-100", Role: domain.RoleStudent}, "u-100", domain.RoleStaff); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("SetRole(student) error = %v, want domain.ErrForbidden", err)
	}
	if err := s.SetRole(ctx, moderator, "u-100", domain.RoleStaff); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}

	self := domain.Actor{ID: "u-100", Role: domain.RoleStaff}
	if err := s.Update(ctx, self, campus.User{ID: "u-100", FullName: "Priya S.", ContactEmail: "priya@campus.example"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.Get(ctx, "u-100")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.FullName != "Priya S." {
		t.Errorf("full name = %q, want updated value", got.FullName)
	}
	if got.Role != domain.RoleStaff {
		t.Errorf("role = %q, want staff to survive the profile update", got.Role)
	}

	// Strangers may not update or delete someone else's profile.
	if err := s.Update(ctx, helper, campus.User{ID: "u-100", FullName: "X"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Update(stranger) error = %v, want domain.ErrForbidden", err)
	}
	if err := s.Delete(ctx, helper, "u-100"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Delete(stranger) error = %v, want domain.ErrForbidden", err)
	}

	if users, err := s.List(ctx, moderator); err != nil || len(users) != 1 {
		t.Errorf("List() = %d users, err %v, want 1 user", len(users), err)
	}
	if _, err := s.List(ctx, staff); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("List(staff) error = %v, want domain.ErrForbidden", err)
	}

	if err := s.Delete(ctx, self, "u-100"); err != nil {
		t.Fatalf("Delete(self) error = %v", err)
	}
	if _, err := s.Get(ctx, "u-100"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want domain.ErrNotFound", err)
	}
}
