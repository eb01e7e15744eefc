package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/notes"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that NotesService implements ports.NotesService.
var _ ports.NotesService = (*NotesService)(nil)

// NotesService manages shared study notes and their subject index directly
// against the document store. Subjects follow the tag lifecycle: created
// lazily when the first note references them, removed when the last note
// goes. Removal rides the hook bus: Delete publishes a deleted event and the
// subject cleanup hook drops the empty subject entry asynchronously. The
// cleanup is never transactional; a crash between note delete and subject
// delete leaves an empty subject behind, repaired the next time a delete
// under that subject is dispatched.
type NotesService struct {
	store  ports.DocumentStore
	bus    ports.HookBus
	logger *slog.Logger
}

// NewNotesService creates a NotesService publishing deletions on the bus.
func NewNotesService(store ports.DocumentStore, bus ports.HookBus, logger *slog.Logger) *NotesService {
	return &NotesService{
		store:  store,
		bus:    bus,
		logger: logger,
	}
}

// Upload stores a note, creating its subject entry if this is the first note
// filed under it. The author is pinned to the acting user.
func (s *NotesService) Upload(ctx context.Context, actor domain.Actor, post notes.Post) (*notes.Post, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	post.Subject = notes.NormalizeSubject(post.Subject)
	if err := post.Validate(); err != nil {
		return nil, err
	}

	post.ID = uuid.NewString()
	post.AuthorID = actor.ID
	post.UpvoteCount = 0
	post.UpvotedBy = nil
	post.CreatedAt = time.Now().UTC()

	doc := &ports.Document{
		ID:        post.ID,
		Kind:      notes.KindNote,
		Fields:    post.Fields(),
		CreatedAt: post.CreatedAt,
	}
	if err := s.store.Create(ctx, doc); err != nil {
		s.logger.ErrorContext(ctx, "failed to upload note",
			slog.String("operation", "Upload"),
			slog.String("note_id", post.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := s.ensureSubject(ctx, post.Subject); err != nil {
		// The note is in; a missing subject entry only hides it from the
		// subject index until the next upload under the same subject.
		s.logger.WarnContext(ctx, "failed to create subject entry",
			slog.String("operation", "Upload"),
			slog.String("subject", post.Subject),
			slog.Any("error", err),
		)
	}

	s.logger.InfoContext(ctx, "note uploaded",
		slog.String("note_id", post.ID),
		slog.String("subject", post.Subject),
		slog.String("author_id", actor.ID),
	)
	return &post, nil
}

// List returns notes, restricted to one subject when subject is non-empty.
func (s *NotesService) List(ctx context.Context, subject string) ([]notes.Post, error) {
	filter := ports.Filter{}
	if subject != "" {
		filter.Equals = map[string]any{"subject": notes.NormalizeSubject(subject)}
	}

	docs, err := s.store.List(ctx, notes.KindNote, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list notes",
			slog.String("operation", "List"),
			slog.Any("error", err),
		)
		return nil, err
	}

	posts := make([]notes.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, *notes.PostFromFields(doc.ID, doc.CreatedAt, doc.Fields))
	}
	return posts, nil
}

// ListSubjects returns every subject that currently has at least one note,
// in alphabetical order.
func (s *NotesService) ListSubjects(ctx context.Context) ([]string, error) {
	docs, err := s.store.List(ctx, notes.KindSubject, ports.Filter{})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list subjects",
			slog.String("operation", "ListSubjects"),
			slog.Any("error", err),
		)
		return nil, err
	}

	subjects := make([]string, 0, len(docs))
	for _, doc := range docs {
		subjects = append(subjects, doc.ID)
	}
	sort.Strings(subjects)
	return subjects, nil
}

// ToggleUpvote adds the actor's upvote if absent, removes it if present, and
// returns the note as committed.
func (s *NotesService) ToggleUpvote(ctx context.Context, actor domain.Actor, id string) (*notes.Post, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.store.Get(ctx, notes.KindNote, id)
	if err != nil {
		return nil, err
	}
	post := notes.PostFromFields(doc.ID, doc.CreatedAt, doc.Fields)

	var delta workflow.Delta
	if post.UpvotedByUser(actor.ID) {
		delta = workflow.Delta{}.
			Remove("upvoted_by", actor.ID).
			Increment("upvote_count", -1)
	} else {
		delta = workflow.Delta{}.
			AppendUnique("upvoted_by", "", actor.ID).
			Increment("upvote_count", 1)
	}

	if err := s.store.UpdateFields(ctx, notes.KindNote, id, delta); err != nil {
		s.logger.ErrorContext(ctx, "failed to toggle upvote",
			slog.String("operation", "ToggleUpvote"),
			slog.String("note_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	committed := workflow.ApplyDelta(doc.Fields, delta)
	return notes.PostFromFields(doc.ID, doc.CreatedAt, committed), nil
}

// Delete removes a note. Uploader or staff only. The deletion is published
// on the hook bus; the subject cleanup hook removes the subject entry when
// no note references it anymore.
func (s *NotesService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	doc, err := s.store.Get(ctx, notes.KindNote, id)
	if err != nil {
		return err
	}
	post := notes.PostFromFields(doc.ID, doc.CreatedAt, doc.Fields)

	if post.AuthorID != actor.ID && !isPrivileged(actor) {
		return fmt.Errorf("actor %s may not delete note %s: %w", actor.ID, id, domain.ErrForbidden)
	}

	if err := s.store.Delete(ctx, notes.KindNote, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete note",
			slog.String("operation", "Delete"),
			slog.String("note_id", id),
			slog.Any("error", err),
		)
		return err
	}

	s.bus.Dispatch(ports.Event{
		Type:   ports.EventDeleted,
		Kind:   notes.KindNote,
		ID:     id,
		Fields: doc.Fields,
		Actor:  actor,
	})
	return nil
}

// ensureSubject creates the subject entry if it does not exist yet. Subject
// documents are keyed by the normalized name, so a concurrent create is the
// expected benign race.
func (s *NotesService) ensureSubject(ctx context.Context, subject string) error {
	doc := &ports.Document{
		ID:        subject,
		Kind:      notes.KindSubject,
		Fields:    map[string]any{"name": subject},
		CreatedAt: time.Now().UTC(),
	}
	err := s.store.Create(ctx, doc)
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	return err
}
