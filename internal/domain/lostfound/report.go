// Package lostfound contains the payload carried by lost-and-found workflow
// items. The moderation lifecycle (open, verified, claim_pending, resolved,
// rejected) lives in the workflow transition tables.
package lostfound

import (
	"strings"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

// Report is the payload of a lost-and-found workflow item. ImageURL, when
// present, arrives pre-uploaded from the external blob storage collaborator.
type Report struct {
	Name        string
	Description string
	Location    string
	ImageURL    string
}

// Validate checks business rules for the report.
func (r *Report) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(r.Location) == "" {
		fields["location"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Payload flattens the report into the workflow item payload map.
func (r *Report) Payload() map[string]any {
	p := map[string]any{
		"name":     r.Name,
		"location": r.Location,
	}
	if r.Description != "" {
		p["description"] = r.Description
	}
	if r.ImageURL != "" {
		p["image_url"] = r.ImageURL
	}
	return p
}

// FromItem reads the report back out of a workflow item payload.
func FromItem(item *workflow.Item) *Report {
	return &Report{
		Name:        str(item.Payload, "name"),
		Description: str(item.Payload, "description"),
		Location:    str(item.Payload, "location"),
		ImageURL:    str(item.Payload, "image_url"),
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
