package ports

import (
	"context"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/cafeteria"
	"github.com/campusconnect/campus-api/internal/domain/campus"
	"github.com/campusconnect/campus-api/internal/domain/directory"
	"github.com/campusconnect/campus-api/internal/domain/flashcard"
	"github.com/campusconnect/campus-api/internal/domain/lostfound"
	"github.com/campusconnect/campus-api/internal/domain/notes"
	"github.com/campusconnect/campus-api/internal/domain/skills"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

// ItemFilter narrows workflow item listings and watches.
type ItemFilter struct {
	// Status, when non-empty, restricts results to items in that state.
	Status workflow.State

	// Ascending orders by creation time oldest-first. Default is newest-first.
	Ascending bool
}

// ItemSnapshot is one delivery on a workflow watch: the full matching item
// list. A snapshot with Err set is terminal and the channel closes after it.
type ItemSnapshot struct {
	Items []workflow.Item
	Err   error
}

// Coordinator is the single write path for workflow items. All status
// mutations go through RequestTransition so that the state machine
// definitions are enforced in exactly one place.
type Coordinator interface {
	// Create persists a new item of the kind in its definition's initial
	// state. The item's ID is assigned by the coordinator.
	Create(ctx context.Context, kind workflow.Kind, owner domain.Actor, payload map[string]any) (*workflow.Item, error)

	// Get returns a single item.
	Get(ctx context.Context, kind workflow.Kind, id string) (*workflow.Item, error)

	// List returns items of the kind matching the filter.
	List(ctx context.Context, kind workflow.Kind, filter ItemFilter) ([]workflow.Item, error)

	// Watch subscribes to items of the kind. Each delivery is the full
	// matching list; the subscription is restartable after a terminal error.
	Watch(ctx context.Context, kind workflow.Kind, filter ItemFilter) (<-chan ItemSnapshot, error)

	// RequestTransition validates the named transition for the actor against
	// the item's current state and, if legal, commits it. The offer argument
	// is consulted only by offer-appending transitions and may be nil
	// otherwise. Returns the item as committed.
	RequestTransition(ctx context.Context, kind workflow.Kind, id, transition string, actor domain.Actor, offer *workflow.Offer) (*workflow.Item, error)

	// Delete removes an item. Only the owner or a staff actor may delete.
	Delete(ctx context.Context, kind workflow.Kind, id string, actor domain.Actor) error

	// The coordinator doubles as the hook bus: its own commits are
	// dispatched automatically, and other services publish through Dispatch.
	HookBus
}

// CafeteriaService manages the menu catalogue and food orders.
type CafeteriaService interface {
	// ListMenu returns the current menu, optionally restricted to one
	// category. Available-only filtering is the caller's choice.
	ListMenu(ctx context.Context, category string, availableOnly bool) ([]cafeteria.MenuItem, error)

	// GetMenuItem returns a single menu entry.
	GetMenuItem(ctx context.Context, id string) (*cafeteria.MenuItem, error)

	// AddMenuItem creates a menu entry. Staff only.
	AddMenuItem(ctx context.Context, actor domain.Actor, item cafeteria.MenuItem) (*cafeteria.MenuItem, error)

	// SetAvailability toggles a menu entry's availability. Staff only.
	SetAvailability(ctx context.Context, actor domain.Actor, id string, available bool) error

	// RemoveMenuItem deletes a menu entry. Staff only.
	RemoveMenuItem(ctx context.Context, actor domain.Actor, id string) error

	// PlaceOrder turns the actor's cart into a placed order.
	PlaceOrder(ctx context.Context, actor domain.Actor, userName string, cart []cafeteria.CartLine) (*workflow.Item, error)

	// ListOrders returns orders: the actor's own for students, every order
	// for staff. Status narrows when non-empty.
	ListOrders(ctx context.Context, actor domain.Actor, status workflow.State) ([]workflow.Item, error)

	// WatchOrders subscribes to the same view ListOrders returns.
	WatchOrders(ctx context.Context, actor domain.Actor, status workflow.State) (<-chan ItemSnapshot, error)

	// AdvanceOrder moves an order one step along its lifecycle. Staff only.
	AdvanceOrder(ctx context.Context, actor domain.Actor, id, transition string) (*workflow.Item, error)
}

// LostFoundService manages lost and found reports through moderation,
// claiming and resolution.
type LostFoundService interface {
	Report(ctx context.Context, actor domain.Actor, report lostfound.Report) (*workflow.Item, error)
	Get(ctx context.Context, id string) (*workflow.Item, error)
	List(ctx context.Context, actor domain.Actor, status workflow.State) ([]workflow.Item, error)
	Watch(ctx context.Context, actor domain.Actor, status workflow.State) (<-chan ItemSnapshot, error)
	Transition(ctx context.Context, actor domain.Actor, id, transition string) (*workflow.Item, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// SkillsService manages peer skill-exchange requests and help offers.
type SkillsService interface {
	Post(ctx context.Context, actor domain.Actor, request skills.Request) (*workflow.Item, error)
	Get(ctx context.Context, id string) (*workflow.Item, error)
	List(ctx context.Context, status workflow.State) ([]workflow.Item, error)
	Watch(ctx context.Context, status workflow.State) (<-chan ItemSnapshot, error)

	// Offer records the actor's offer to help on an open request. At most one
	// offer per helper per request.
	Offer(ctx context.Context, actor domain.Actor, id string, offer workflow.Offer) (*workflow.Item, error)

	// Resolve closes the request. Owner only.
	Resolve(ctx context.Context, actor domain.Actor, id string) (*workflow.Item, error)

	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// NotesService manages shared study notes, their subject index and upvotes.
type NotesService interface {
	// Upload stores a note, creating its subject entry if this is the first
	// note filed under it.
	Upload(ctx context.Context, actor domain.Actor, post notes.Post) (*notes.Post, error)

	// List returns notes, restricted to one subject when subject is
	// non-empty. Subjects are matched case-insensitively.
	List(ctx context.Context, subject string) ([]notes.Post, error)

	// ListSubjects returns every subject that currently has at least one
	// note, in alphabetical order.
	ListSubjects(ctx context.Context) ([]string, error)

	// ToggleUpvote adds the actor's upvote if absent, removes it if present,
	// and returns the note as committed.
	ToggleUpvote(ctx context.Context, actor domain.Actor, id string) (*notes.Post, error)

	// Delete removes a note. Uploader or staff only. The subject entry is
	// removed when its last note goes.
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// FlashcardService generates study flashcards with the AI collaborator.
type FlashcardService interface {
	// FromTopic generates count flashcards about a free-text topic.
	FromTopic(ctx context.Context, topic string, count int) ([]flashcard.Card, error)

	// FromDocument generates count flashcards from an uploaded document
	// (an image or a PDF of study material).
	FromDocument(ctx context.Context, mimeType string, data []byte, count int) ([]flashcard.Card, error)
}

// DirectoryService manages the faculty directory.
type DirectoryService interface {
	List(ctx context.Context, department string) ([]directory.FacultyMember, error)
	Get(ctx context.Context, id string) (*directory.FacultyMember, error)
	Add(ctx context.Context, actor domain.Actor, member directory.FacultyMember) (*directory.FacultyMember, error)
	Update(ctx context.Context, actor domain.Actor, member directory.FacultyMember) error
	Remove(ctx context.Context, actor domain.Actor, id string) error
}

// AnnouncementService manages campus-wide announcements. Writes are
// moderator only.
type AnnouncementService interface {
	List(ctx context.Context) ([]campus.Announcement, error)
	Watch(ctx context.Context) (<-chan AnnouncementSnapshot, error)
	Publish(ctx context.Context, actor domain.Actor, ann campus.Announcement) (*campus.Announcement, error)
	Remove(ctx context.Context, actor domain.Actor, id string) error
}

// AnnouncementSnapshot is one delivery on an announcement watch.
type AnnouncementSnapshot struct {
	Announcements []campus.Announcement
	Err           error
}

// UserService manages user profiles and role assignment.
type UserService interface {
	Get(ctx context.Context, id string) (*campus.User, error)
	Register(ctx context.Context, user campus.User) (*campus.User, error)
	Update(ctx context.Context, actor domain.Actor, user campus.User) error

	// List returns every profile. Moderator only.
	List(ctx context.Context, actor domain.Actor) ([]campus.User, error)

	// SetRole changes a user's role. Moderator only.
	SetRole(ctx context.Context, actor domain.Actor, id string, role domain.Role) error

	// Delete removes a profile. The user themselves or a moderator.
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
