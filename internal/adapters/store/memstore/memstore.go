// Package memstore provides an in-process implementation of the document
// store port. It backs the "memory" store backend used in local development
// and exercises the same watch contract as the Redis adapter, so services
// behave identically against either.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.DocumentStore = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store keeps documents in memory, organized by kind. All methods are safe
// for concurrent use.
type Store struct {
	mu          sync.RWMutex
	docs        map[string]map[string]ports.Document
	subscribers map[string][]*subscriber
	watchBuffer int
	nextSubID   int
}

type subscriber struct {
	id     int
	filter ports.Filter
	// notify coalesces change signals; the watch goroutine re-lists on each.
	notify chan struct{}
}

// New creates an empty in-memory store. watchBuffer sets the per-subscriber
// snapshot channel capacity.
func New(watchBuffer int) *Store {
	if watchBuffer < 1 {
		watchBuffer = 1
	}
	return &Store{
		docs:        make(map[string]map[string]ports.Document),
		subscribers: make(map[string][]*subscriber),
		watchBuffer: watchBuffer,
	}
}

// Name identifies the store in health reports.
func (s *Store) Name() string {
	return "memstore"
}

// HealthCheck always reports healthy; there is no remote connection.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Create persists a new document. Returns domain.ErrConflict if a document
// with the same kind and ID already exists.
func (s *Store) Create(ctx context.Context, doc *ports.Document) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	kindDocs, ok := s.docs[doc.Kind]
	if !ok {
		kindDocs = make(map[string]ports.Document)
		s.docs[doc.Kind] = kindDocs
	}
	if _, exists := kindDocs[doc.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("document %s/%s already exists: %w", doc.Kind, doc.ID, domain.ErrConflict)
	}
	kindDocs[doc.ID] = copyDocument(*doc)
	s.mu.Unlock()

	s.notifyKind(doc.Kind)
	return nil
}

// Get returns a single document or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, kind, id string) (*ports.Document, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[kind][id]
	if !ok {
		return nil, fmt.Errorf("document %s/%s: %w", kind, id, domain.ErrNotFound)
	}
	out := copyDocument(doc)
	return &out, nil
}

// List returns documents of the kind matching the filter, ordered by creation
// time (newest first unless filter.Ascending).
func (s *Store) List(ctx context.Context, kind string, filter ports.Filter) ([]ports.Document, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(kind, filter), nil
}

func (s *Store) listLocked(kind string, filter ports.Filter) []ports.Document {
	docs := make([]ports.Document, 0, len(s.docs[kind]))
	for _, doc := range s.docs[kind] {
		if matches(doc, filter) {
			docs = append(docs, copyDocument(doc))
		}
	}
	sortByCreation(docs, filter.Ascending)
	return docs
}

// Watch subscribes to documents of the kind. Every mutation of the kind
// triggers a re-delivery of the full matching list. The subscription ends
// when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, kind string, filter ports.Filter) (<-chan ports.Snapshot, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	sub := &subscriber{
		filter: filter,
		notify: make(chan struct{}, 1),
	}

	s.mu.Lock()
	s.nextSubID++
	sub.id = s.nextSubID
	s.subscribers[kind] = append(s.subscribers[kind], sub)
	s.mu.Unlock()

	out := make(chan ports.Snapshot, s.watchBuffer)

	go func() {
		defer close(out)
		defer s.unsubscribe(kind, sub)

		// Initial delivery reflects the current state.
		deliver := func() bool {
			s.mu.RLock()
			docs := s.listLocked(kind, filter)
			s.mu.RUnlock()
			select {
			case out <- ports.Snapshot{Docs: docs}:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !deliver() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.notify:
				if !deliver() {
					return
				}
			}
		}
	}()

	return out, nil
}

// UpdateFields applies the delta to one document's fields.
func (s *Store) UpdateFields(ctx context.Context, kind, id string, delta workflow.Delta) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	doc, ok := s.docs[kind][id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("document %s/%s: %w", kind, id, domain.ErrNotFound)
	}
	doc.Fields = workflow.ApplyDelta(doc.Fields, delta)
	s.docs[kind][id] = doc
	s.mu.Unlock()

	s.notifyKind(kind)
	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, kind, id string) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.docs[kind][id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("document %s/%s: %w", kind, id, domain.ErrNotFound)
	}
	delete(s.docs[kind], id)
	s.mu.Unlock()

	s.notifyKind(kind)
	return nil
}

// notifyKind wakes every watcher of the kind. The notify channel has
// capacity one so bursts of mutations coalesce into a single re-delivery.
func (s *Store) notifyKind(kind string) {
	s.mu.RLock()
	subs := s.subscribers[kind]
	s.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.notify <- struct{}{}:
		default:
		}
	}
}

func (s *Store) unsubscribe(kind string, target *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscribers[kind]
	for i, sub := range subs {
		if sub.id == target.id {
			s.subscribers[kind] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// ctxErr classifies a dead request context as a transient store fault, the
// same sentinel the Redis adapter returns for its timeouts.
func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memstore: %v: %w", err, domain.ErrUnavailable)
	}
	return nil
}

// matches reports whether the document satisfies every equality constraint.
func matches(doc ports.Document, filter ports.Filter) bool {
	for field, want := range filter.Equals {
		if !reflect.DeepEqual(doc.Fields[field], want) {
			return false
		}
	}
	return true
}

func sortByCreation(docs []ports.Document, ascending bool) {
	sort.SliceStable(docs, func(i, j int) bool {
		if ascending {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}

// copyDocument deep-copies the field map so callers never alias stored state.
func copyDocument(doc ports.Document) ports.Document {
	if doc.Fields == nil {
		doc.Fields = map[string]any{}
		return doc
	}
	doc.Fields = copyValue(doc.Fields).(map[string]any)
	return doc
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = copyValue(e)
		}
		return m
	case []any:
		list := make([]any, len(val))
		for i, e := range val {
			list[i] = copyValue(e)
		}
		return list
	default:
		return val
	}
}
