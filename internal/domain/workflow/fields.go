package workflow

import "time"

// Document field names for workflow items. Deltas produced by Validate and
// the codec below are the only places these names appear.
const (
	FieldStatus   = "status"
	FieldOwner    = "owner_id"
	FieldClaimant = "claimant_id"
	FieldOffers   = "offers"
	FieldPayload  = "payload"

	// OfferKey is the identity sub-field for keyed appends on the offers
	// list: no two offers share a helper_id.
	OfferKey = "helper_id"
)

// Fields flattens the item into the generic field map persisted by the
// document store. ID, kind, and creation time travel outside the map.
func (it *Item) Fields() map[string]any {
	fields := map[string]any{
		FieldStatus:   string(it.Status),
		FieldOwner:    it.OwnerID,
		FieldClaimant: it.ClaimantID,
	}
	if len(it.Offers) > 0 {
		offers := make([]any, 0, len(it.Offers))
		for _, o := range it.Offers {
			offers = append(offers, map[string]any{
				"helper_id":      o.HelperID,
				"helper_name":    o.HelperName,
				"helper_contact": o.HelperContact,
			})
		}
		fields[FieldOffers] = offers
	}
	if len(it.Payload) > 0 {
		fields[FieldPayload] = it.Payload
	}
	return fields
}

// ItemFromFields rebuilds an item from a stored field map. The map may come
// straight from a JSON decode, so list and map values are accepted in their
// generic (any-typed) form.
func ItemFromFields(id string, kind Kind, createdAt time.Time, fields map[string]any) *Item {
	it := &Item{
		ID:        id,
		Kind:      kind,
		CreatedAt: createdAt,
	}
	if s, ok := fields[FieldStatus].(string); ok {
		it.Status = State(s)
	}
	if s, ok := fields[FieldOwner].(string); ok {
		it.OwnerID = s
	}
	if s, ok := fields[FieldClaimant].(string); ok {
		it.ClaimantID = s
	}
	if p, ok := fields[FieldPayload].(map[string]any); ok {
		it.Payload = p
	}
	it.Offers = offersFromField(fields[FieldOffers])
	return it
}

func offersFromField(v any) []Offer {
	switch list := v.(type) {
	case []Offer:
		return list
	case []any:
		offers := make([]Offer, 0, len(list))
		for _, e := range list {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			offers = append(offers, Offer{
				HelperID:      stringField(m, "helper_id"),
				HelperName:    stringField(m, "helper_name"),
				HelperContact: stringField(m, "helper_contact"),
			})
		}
		if len(offers) == 0 {
			return nil
		}
		return offers
	default:
		return nil
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
