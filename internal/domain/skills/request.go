// Package skills contains the payload carried by peer skill-request workflow
// items. Offers and the open/resolved lifecycle live on the workflow item
// itself; this package only knows what a request asks for.
package skills

import (
	"strings"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

// Request is the payload of a skill-request workflow item. The poster's
// display fields are denormalized from the users collection at creation
// time, the way the original board rendered them.
type Request struct {
	SkillName          string
	Description        string
	PreferredTimeSlots string
	PostedByName       string
	PostedBySapID      string
}

// Validate checks business rules for the request.
func (r *Request) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(r.SkillName) == "" {
		fields["skill_name"] = domain.MsgRequired
	}
	if strings.TrimSpace(r.Description) == "" {
		fields["description"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Payload flattens the request into the workflow item payload map.
func (r *Request) Payload() map[string]any {
	return map[string]any{
		"skill_name":           r.SkillName,
		"description":          r.Description,
		"preferred_time_slots": r.PreferredTimeSlots,
		"posted_by_name":       r.PostedByName,
		"posted_by_sap_id":     r.PostedBySapID,
	}
}

// FromItem reads the request back out of a workflow item payload.
func FromItem(item *workflow.Item) *Request {
	return &Request{
		SkillName:          str(item.Payload, "skill_name"),
		Description:        str(item.Payload, "description"),
		PreferredTimeSlots: str(item.Payload, "preferred_time_slots"),
		PostedByName:       str(item.Payload, "posted_by_name"),
		PostedBySapID:      str(item.Payload, "posted_by_sap_id"),
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
