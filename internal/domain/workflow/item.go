// Package workflow holds the status-driven workflow model shared by
// lost-and-found items, cafeteria orders, and peer skill requests: the
// declarative transition tables, the finite-state item entity, the pure
// transition validator, and the field-delta vocabulary the store adapter
// understands. The transition tables in this package are the single source
// of truth; no other component encodes status strings or transition rules.
package workflow

import "time"

// Kind identifies a workflow entity family and selects its transition table.
type Kind string

const (
	KindLostFound    Kind = "lost_found"
	KindOrder        Kind = "order"
	KindSkillRequest Kind = "skill_request"
)

// IsValid returns true if the kind has a registered definition.
func (k Kind) IsValid() bool {
	_, ok := definitions[k]
	return ok
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// State is a named status within a kind's finite state set.
type State string

// Lost-and-found states.
const (
	StateOpen         State = "open"
	StateVerified     State = "verified"
	StateClaimPending State = "claim_pending"
	StateResolved     State = "resolved"
	StateRejected     State = "rejected"
)

// Cafeteria order states.
const (
	StatePlaced    State = "placed"
	StatePreparing State = "preparing"
	StateReady     State = "ready"
	StateCompleted State = "completed"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// Offer is a helper's offer on a skill request, appended to the item's
// offers list. Offers are never mutated or individually removed; the list
// is a set keyed by HelperID.
type Offer struct {
	HelperID      string `json:"helper_id"`
	HelperName    string `json:"helper_name"`
	HelperContact string `json:"helper_contact"`
}

// Item is a finite-state entity persisted as one document in the shared
// store. Status is always a member of the finite set declared for Kind;
// OwnerID never changes after creation; ClaimantID is set only in states
// whose transitions admit a claim.
type Item struct {
	ID         string         `json:"id"`
	Kind       Kind           `json:"kind"`
	Status     State          `json:"status"`
	OwnerID    string         `json:"owner_id"`
	ClaimantID string         `json:"claimant_id,omitempty"`
	Offers     []Offer        `json:"offers,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// HasOfferFrom reports whether the item already carries an offer keyed by
// the given helper id.
func (it *Item) HasOfferFrom(helperID string) bool {
	for _, o := range it.Offers {
		if o.HelperID == helperID {
			return true
		}
	}
	return false
}
