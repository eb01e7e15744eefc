package workflow

import "github.com/campusconnect/campus-api/internal/domain"

// Transition is one legal edge in a kind's transition table, together with
// the actor constraints that gate it.
type Transition struct {
	// Name is the caller-facing transition verb ("approve", "claim", ...).
	Name string
	// From and To are the source and target states. A transition whose To
	// equals its From (the offer append) changes no status; it exists so
	// list appends ride the same validation path as status changes.
	From State
	To   State
	// Role restricts the transition to one role. Empty means any
	// authenticated actor.
	Role domain.Role
	// OwnerOnly requires the actor to be the item's owner.
	OwnerOnly bool
	// NonOwner forbids the item's owner from triggering the transition
	// (claiming or offering on your own item).
	NonOwner bool
	// SetClaimant records the actor as the item's claimant.
	SetClaimant bool
	// ClearClaimant clears the item's claimant (deny returns the item to
	// the pool).
	ClearClaimant bool
	// AppendOffer appends the supplied offer to the offers list, keyed by
	// helper id.
	AppendOffer bool
}

// Definition declares the finite state set, initial state, terminal states,
// and legal transitions for one kind.
type Definition struct {
	Kind        Kind
	Initial     State
	Terminal    []State
	Transitions []Transition
}

// IsTerminal reports whether s is one of the definition's terminal states.
// Terminal states are never mutated again.
func (d Definition) IsTerminal(s State) bool {
	for _, t := range d.Terminal {
		if t == s {
			return true
		}
	}
	return false
}

// Find returns the transition named name leaving state from, if declared.
func (d Definition) Find(from State, name string) (Transition, bool) {
	for _, t := range d.Transitions {
		if t.From == from && t.Name == name {
			return t, true
		}
	}
	return Transition{}, false
}

// definitions is the registry of transition tables, one per kind.
var definitions = map[Kind]Definition{
	KindLostFound: {
		Kind:     KindLostFound,
		Initial:  StateOpen,
		Terminal: []State{StateResolved, StateRejected},
		Transitions: []Transition{
			{Name: "approve", From: StateOpen, To: StateVerified, Role: domain.RoleModerator},
			{Name: "reject", From: StateOpen, To: StateRejected, Role: domain.RoleModerator},
			{Name: "claim", From: StateVerified, To: StateClaimPending, NonOwner: true, SetClaimant: true},
			{Name: "confirm", From: StateClaimPending, To: StateResolved, Role: domain.RoleModerator},
			{Name: "deny", From: StateClaimPending, To: StateVerified, Role: domain.RoleModerator, ClearClaimant: true},
		},
	},
	KindOrder: {
		Kind:     KindOrder,
		Initial:  StatePlaced,
		Terminal: []State{StateCompleted},
		Transitions: []Transition{
			// Strictly sequential: staff advances one step at a time.
			{Name: "accept", From: StatePlaced, To: StatePreparing, Role: domain.RoleStaff},
			{Name: "ready", From: StatePreparing, To: StateReady, Role: domain.RoleStaff},
			{Name: "complete", From: StateReady, To: StateCompleted, Role: domain.RoleStaff},
		},
	},
	KindSkillRequest: {
		Kind:     KindSkillRequest,
		Initial:  StateOpen,
		Terminal: []State{StateResolved},
		Transitions: []Transition{
			{Name: "resolve", From: StateOpen, To: StateResolved, OwnerOnly: true},
			{Name: "offer", From: StateOpen, To: StateOpen, NonOwner: true, AppendOffer: true},
		},
	},
}

// DefinitionFor returns the transition table for kind.
func DefinitionFor(kind Kind) (Definition, bool) {
	d, ok := definitions[kind]
	return d, ok
}

// Kinds returns the registered kinds in no particular order.
func Kinds() []Kind {
	ks := make([]Kind, 0, len(definitions))
	for k := range definitions {
		ks = append(ks, k)
	}
	return ks
}
