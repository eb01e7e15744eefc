package workflow

import (
	"testing"
	"time"
)

func TestDefinitions_Shape(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		def, ok := DefinitionFor(kind)
		if !ok {
			t.Fatalf("DefinitionFor(%q) = false", kind)
		}
		if def.Kind != kind {
			t.Errorf("definition kind = %q, want %q", def.Kind, kind)
		}
		if def.IsTerminal(def.Initial) {
			t.Errorf("%s: initial state %q must not be terminal", kind, def.Initial)
		}
		for _, tr := range def.Transitions {
			if def.IsTerminal(tr.From) {
				t.Errorf("%s: transition %q leaves terminal state %q", kind, tr.Name, tr.From)
			}
			// A self-edge is only legal for append transitions; a plain
			// status self-edge would accept forever without changing
			// anything.
			if tr.From == tr.To && !tr.AppendOffer {
				t.Errorf("%s: transition %q is a no-op self-edge", kind, tr.Name)
			}
			if tr.OwnerOnly && tr.NonOwner {
				t.Errorf("%s: transition %q both requires and forbids the owner", kind, tr.Name)
			}
		}
	}
}

func TestKind_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want bool
	}{
		{KindLostFound, true},
		{KindOrder, true},
		{KindSkillRequest, true},
		{"note", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.want {
			t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestItemFieldsRoundTrip(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	item := &Item{
		ID:         "req-1",
		Kind:       KindSkillRequest,
		Status:     StateOpen,
		OwnerID:    "stu-1",
		ClaimantID: "",
		Offers: []Offer{
			{HelperID: "stu-2", HelperName: "Ravi", HelperContact: "ravi@campus.edu"},
		},
		Payload:   map[string]any{"skill_name": "Linear Algebra"},
		CreatedAt: created,
	}

	got := ItemFromFields(item.ID, item.Kind, created, item.Fields())

	if got.Status != item.Status || got.OwnerID != item.OwnerID {
		t.Errorf("round trip lost scalars: %+v", got)
	}
	if len(got.Offers) != 1 || got.Offers[0] != item.Offers[0] {
		t.Errorf("round trip offers = %+v, want %+v", got.Offers, item.Offers)
	}
	if got.Payload["skill_name"] != "Linear Algebra" {
		t.Errorf("round trip payload = %+v", got.Payload)
	}
}

func TestItemFromFields_GenericJSONShapes(t *testing.T) {
	t.Parallel()

	// A JSON decode hands back []any / map[string]any; the codec must
	// accept that shape as well as the typed one.
	fields := map[string]any{
		FieldStatus:   "open",
		FieldOwner:    "stu-1",
		FieldClaimant: "",
		FieldOffers: []any{
			map[string]any{"helper_id": "stu-2", "helper_name": "Ravi", "helper_contact": "ravi@campus.edu"},
			"garbage entry",
		},
		FieldPayload: map[string]any{"skill_name": "Go"},
	}

	it := ItemFromFields("req-1", KindSkillRequest, time.Now(), fields)
	if it.Status != StateOpen {
		t.Errorf("status = %q, want open", it.Status)
	}
	if len(it.Offers) != 1 || it.Offers[0].HelperID != "stu-2" {
		t.Errorf("offers = %+v, want single decoded offer", it.Offers)
	}
}
