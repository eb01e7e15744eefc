package workflow

import (
	"reflect"
	"testing"
)

func TestApplyDelta_SetOverwrites(t *testing.T) {
	t.Parallel()

	fields := map[string]any{FieldStatus: "open"}
	fields = ApplyDelta(fields, Delta{}.Set(FieldStatus, "verified").Set(FieldClaimant, "u-2"))

	if fields[FieldStatus] != "verified" {
		t.Errorf("status = %v, want verified", fields[FieldStatus])
	}
	if fields[FieldClaimant] != "u-2" {
		t.Errorf("claimant = %v, want u-2", fields[FieldClaimant])
	}
}

func TestApplyDelta_AppendUniqueKeyedIsIdempotent(t *testing.T) {
	t.Parallel()

	offer := Offer{HelperID: "h-1", HelperName: "Asha"}
	delta := Delta{}.AppendUnique(FieldOffers, OfferKey, offer)

	fields := map[string]any{}
	fields = ApplyDelta(fields, delta)
	fields = ApplyDelta(fields, delta)

	list, ok := fields[FieldOffers].([]any)
	if !ok {
		t.Fatalf("offers = %T, want []any", fields[FieldOffers])
	}
	if len(list) != 1 {
		t.Fatalf("len(offers) = %d after duplicate append, want 1", len(list))
	}

	// A different helper appends a second element.
	fields = ApplyDelta(fields, Delta{}.AppendUnique(FieldOffers, OfferKey, Offer{HelperID: "h-2"}))
	list = fields[FieldOffers].([]any)
	if len(list) != 2 {
		t.Fatalf("len(offers) = %d, want 2", len(list))
	}
}

func TestApplyDelta_AppendUniqueMatchesJSONDecodedElements(t *testing.T) {
	t.Parallel()

	// Stored lists come back from JSON as []any of map[string]any.
	fields := map[string]any{
		FieldOffers: []any{map[string]any{"helper_id": "h-1", "helper_name": "Asha", "helper_contact": ""}},
	}
	fields = ApplyDelta(fields, Delta{}.AppendUnique(FieldOffers, OfferKey, Offer{HelperID: "h-1"}))

	if list := fields[FieldOffers].([]any); len(list) != 1 {
		t.Errorf("len(offers) = %d, want 1 (same helper_id must not duplicate)", len(list))
	}
}

func TestApplyDelta_RemoveScalar(t *testing.T) {
	t.Parallel()

	fields := map[string]any{"upvoted_by": []any{"u-1", "u-2", "u-1"}}
	fields = ApplyDelta(fields, Delta{}.Remove("upvoted_by", "u-1"))

	got := fields["upvoted_by"].([]any)
	want := []any{"u-2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("upvoted_by = %v, want %v", got, want)
	}
}

func TestApplyDelta_IncrementHandlesJSONNumbers(t *testing.T) {
	t.Parallel()

	// JSON decodes numbers as float64; increments must still work.
	fields := map[string]any{"upvote_count": float64(3)}
	fields = ApplyDelta(fields, Delta{}.Increment("upvote_count", -1))

	if got := fields["upvote_count"]; got != int64(2) {
		t.Errorf("upvote_count = %v (%T), want int64(2)", got, got)
	}
}

func TestApplyDelta_IncrementMissingFieldStartsAtZero(t *testing.T) {
	t.Parallel()

	fields := ApplyDelta(map[string]any{}, Delta{}.Increment("upvote_count", 1))

	if got := fields["upvote_count"]; got != int64(1) {
		t.Errorf("upvote_count = %v (%T), want int64(1)", got, got)
	}
}
