package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campusconnect/campus-api/internal/adapters/store/memstore"
	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

func doc(kind, id, status string, createdAt time.Time) *ports.Document {
	return &ports.Document{
		ID:        id,
		Kind:      kind,
		CreatedAt: createdAt,
		Fields: map[string]any{
			"status":   status,
			"owner_id": "u-1",
		},
	}
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)
	ctx := context.Background()

	in := doc("lost_found", "a", "open", time.Now())
	if err := s.Create(ctx, in); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Get(ctx, "lost_found", "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Fields["status"] != "open" {
		t.Errorf("status = %v, want open", got.Fields["status"])
	}

	// The returned document must not alias stored state.
	got.Fields["status"] = "mutated"
	again, err := s.Get(ctx, "lost_found", "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if again.Fields["status"] != "open" {
		t.Error("mutating a returned document changed stored state")
	}
}

func TestCancelledContextIsUnavailable(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)
	if err := s.Create(context.Background(), doc("order", "a", "placed", time.Now())); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A dead context classifies like any other transient store fault.
	if _, err := s.Get(ctx, "order", "a"); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("Get(cancelled) error = %v, want domain.ErrUnavailable", err)
	}
	if err := s.Delete(ctx, "order", "a"); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("Delete(cancelled) error = %v, want domain.ErrUnavailable", err)
	}
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)
	ctx := context.Background()

	if err := s.Create(ctx, doc("order", "a", "placed", time.Now())); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := s.Create(ctx, doc("order", "a", "placed", time.Now()))
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create(duplicate) error = %v, want domain.ErrConflict", err)
	}
}

func TestGet_Missing(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)

	_, err := s.Get(context.Background(), "order", "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want domain.ErrNotFound", err)
	}
}

func TestList_FilterAndOrder(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)
	ctx := context.Background()
	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	if err := s.Create(ctx, doc("lost_found", "a", "open", base)); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(ctx, doc("lost_found", "b", "verified", base.Add(time.Minute))); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(ctx, doc("lost_found", "c", "open", base.Add(2*time.Minute))); err != nil {
		t.Fatal(err)
	}

	// Default order is newest first.
	all, err := s.List(ctx, "lost_found", ports.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	if all[0].ID != "c" || all[2].ID != "a" {
		t.Errorf("order = [%s %s %s], want [c b a]", all[0].ID, all[1].ID, all[2].ID)
	}

	// Equality filter narrows to matching documents.
	open, err := s.List(ctx, "lost_found", ports.Filter{Equals: map[string]any{"status": "open"}})
	if err != nil {
		t.Fatalf("List(filtered) error = %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("len(open) = %d, want 2", len(open))
	}

	// Ascending flips the order.
	asc, err := s.List(ctx, "lost_found", ports.Filter{Ascending: true})
	if err != nil {
		t.Fatalf("List(asc) error = %v", err)
	}
	if asc[0].ID != "a" {
		t.Errorf("first ascending = %s, want a", asc[0].ID)
	}
}

func TestList_KindsAreIsolated(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)
	ctx := context.Background()

	if err := s.Create(ctx, doc("order", "a", "placed", time.Now())); err != nil {
		t.Fatal(err)
	}

	docs, err := s.List(ctx, "lost_found", ports.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("len(docs) = %d, want 0 for other kind", len(docs))
	}
}

func TestUpdateFields_AppliesDelta(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)
	ctx := context.Background()

	if err := s.Create(ctx, doc("lost_found", "a", "open", time.Now())); err != nil {
		t.Fatal(err)
	}

	delta := workflow.Delta{}.
		Set("status", "verified").
		AppendUnique("offers", workflow.OfferKey, workflow.Offer{HelperID: "h-1"})
	if err := s.UpdateFields(ctx, "lost_found", "a", delta); err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	got, err := s.Get(ctx, "lost_found", "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Fields["status"] != "verified" {
		t.Errorf("status = %v, want verified", got.Fields["status"])
	}
	if offers, ok := got.Fields["offers"].([]any); !ok || len(offers) != 1 {
		t.Errorf("offers = %v, want one element", got.Fields["offers"])
	}
}

func TestUpdateFields_Missing(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)

	err := s.UpdateFields(context.Background(), "lost_found", "nope", workflow.Delta{}.Set("status", "x"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateFields(missing) error = %v, want domain.ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)
	ctx := context.Background()

	if err := s.Create(ctx, doc("note", "a", "", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "note", "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "note", "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete(again) error = %v, want domain.ErrNotFound", err)
	}
}

func TestWatch_DeliversInitialAndUpdates(t *testing.T) {
	t.Parallel()

	s := memstore.New(4)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Create(ctx, doc("order", "a", "placed", time.Now())); err != nil {
		t.Fatal(err)
	}

	ch, err := s.Watch(ctx, "order", ports.Filter{})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Initial snapshot reflects current state.
	snap := mustReceive(t, ch)
	if len(snap.Docs) != 1 {
		t.Fatalf("initial snapshot has %d docs, want 1", len(snap.Docs))
	}

	// A mutation triggers a full re-delivery.
	if err := s.UpdateFields(ctx, "order", "a", workflow.Delta{}.Set("status", "preparing")); err != nil {
		t.Fatal(err)
	}

	snap = mustReceive(t, ch)
	if len(snap.Docs) != 1 || snap.Docs[0].Fields["status"] != "preparing" {
		t.Errorf("snapshot after update = %+v, want status preparing", snap.Docs)
	}
}

func TestWatch_FilterApplies(t *testing.T) {
	t.Parallel()

	s := memstore.New(4)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := s.Watch(ctx, "order", ports.Filter{Equals: map[string]any{"status": "ready"}})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if snap := mustReceive(t, ch); len(snap.Docs) != 0 {
		t.Fatalf("initial snapshot has %d docs, want 0", len(snap.Docs))
	}

	if err := s.Create(ctx, doc("order", "a", "placed", time.Now())); err != nil {
		t.Fatal(err)
	}
	if snap := mustReceive(t, ch); len(snap.Docs) != 0 {
		t.Errorf("placed order leaked into ready-only watch: %+v", snap.Docs)
	}

	if err := s.UpdateFields(ctx, "order", "a", workflow.Delta{}.Set("status", "ready")); err != nil {
		t.Fatal(err)
	}
	if snap := mustReceive(t, ch); len(snap.Docs) != 1 {
		t.Errorf("snapshot has %d docs after matching update, want 1", len(snap.Docs))
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	t.Parallel()

	s := memstore.New(1)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := s.Watch(ctx, "order", ports.Filter{})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	mustReceive(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// A snapshot may have been in flight; the next read must close.
			if _, ok := <-ch; ok {
				t.Error("channel still open after context cancellation")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after context cancellation")
	}
}

func mustReceive(t *testing.T, ch <-chan ports.Snapshot) ports.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("snapshot channel closed unexpectedly")
		}
		if snap.Err != nil {
			t.Fatalf("snapshot error = %v", snap.Err)
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return ports.Snapshot{}
	}
}
