package workflow

import "github.com/campusconnect/campus-api/internal/domain"

// Validate checks whether the requested transition is legal for the item's
// current state and the acting identity, and returns the field delta that
// commits it. It is a pure function: no I/O, no clock, deterministic.
//
// The function is total over the transition table: terminal states reject
// everything with ErrTerminal, and any (state, transition) pair not declared
// in the table rejects with ErrUnknownTransition. For offer-appending
// transitions the offer argument must carry the actor's offer; it is ignored
// otherwise.
//
// Validate never mutates item. The returned delta touches only the fields
// the transition owns: status, claimant_id, and offers.
func Validate(def Definition, item *Item, transition string, actor domain.Actor, offer *Offer) (Delta, error) {
	if def.IsTerminal(item.Status) {
		return Delta{}, ErrTerminal
	}

	t, ok := def.Find(item.Status, transition)
	if !ok {
		return Delta{}, ErrUnknownTransition
	}

	if t.Role != "" && actor.Role != t.Role {
		return Delta{}, ErrWrongRole
	}
	if t.OwnerOnly && actor.ID != item.OwnerID {
		return Delta{}, ErrNotOwner
	}
	if t.NonOwner && actor.ID == item.OwnerID {
		return Delta{}, ErrIsOwner
	}

	var delta Delta

	if t.To != item.Status {
		delta = delta.Set(FieldStatus, string(t.To))
	}
	if t.SetClaimant {
		delta = delta.Set(FieldClaimant, actor.ID)
	}
	if t.ClearClaimant {
		delta = delta.Set(FieldClaimant, "")
	}
	if t.AppendOffer {
		if item.HasOfferFrom(actor.ID) {
			return Delta{}, ErrAlreadyOffered
		}
		o := Offer{HelperID: actor.ID}
		if offer != nil {
			o = *offer
			o.HelperID = actor.ID
		}
		delta = delta.AppendUnique(FieldOffers, OfferKey, o)
	}

	return delta, nil
}
