package ports

import (
	"context"
	"time"

	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

// Document is one record in the shared document store: an id, a kind (the
// collection it lives in), a flat field map, and a creation timestamp. All
// campus entities — workflow items, notes, menu items, faculty entries,
// announcements, user profiles — persist as documents.
type Document struct {
	ID        string
	Kind      string
	Fields    map[string]any
	CreatedAt time.Time
}

// Filter narrows List and Watch results. Equals matches documents whose
// field values equal every entry; a nil map matches everything. Results are
// ordered by creation time, newest first unless Ascending is set.
type Filter struct {
	Equals    map[string]any
	Ascending bool
}

// Snapshot is one delivery on a Watch subscription: the full matching
// document list as of some store state. A Snapshot with Err set is terminal;
// the channel closes after it and the caller must resubscribe.
type Snapshot struct {
	Docs []Document
	Err  error
}

// DocumentStore abstracts the remote document database. Implementations
// classify every failure before it crosses this boundary: absent documents
// become domain.ErrNotFound, transient faults (including timeouts) become
// domain.ErrUnavailable, and authorization failures become
// domain.ErrForbidden. Raw driver errors never escape.
//
// There are no cross-document transactions. Every multi-document effect is
// a separate, best-effort follow-up call; concurrent writers are resolved
// by last-write-wins at the field level and keyed-append idempotence on
// list fields.
type DocumentStore interface {
	// DocumentStore implementations report their own health; the registry
	// polls them on each readiness probe.
	HealthChecker

	// Create persists a new document. The caller assigns the ID.
	Create(ctx context.Context, doc *Document) error

	// Get returns a single document.
	// Returns domain.ErrNotFound if the document does not exist.
	Get(ctx context.Context, kind, id string) (*Document, error)

	// List returns documents of the kind matching the filter.
	List(ctx context.Context, kind string, filter Filter) ([]Document, error)

	// Watch returns a lazy, infinite subscription that re-delivers the full
	// matching list on every underlying change (no incremental diffs). The
	// first delivery reflects the current state. The subscription ends when
	// ctx is cancelled or after a terminal error Snapshot; it is restartable
	// by calling Watch again.
	Watch(ctx context.Context, kind string, filter Filter) (<-chan Snapshot, error)

	// UpdateFields applies the per-field delta to one document. Scalar sets
	// are last-write-wins; keyed appends are idempotent.
	// Returns domain.ErrNotFound if the document does not exist.
	UpdateFields(ctx context.Context, kind, id string, delta workflow.Delta) error

	// Delete removes a document.
	// Returns domain.ErrNotFound if the document does not exist.
	Delete(ctx context.Context, kind, id string) error
}
