// Package campus contains campus-wide entities that belong to no single
// feature board: announcements and user identity documents.
package campus

import (
	"strings"
	"time"

	"github.com/campusconnect/campus-api/internal/domain"
)

// Document kinds.
const (
	KindAnnouncement = "announcement"
	KindUser         = "user"
)

// Announcement is an admin-published campus notice.
type Announcement struct {
	ID        string
	Title     string
	Message   string
	Urgent    bool
	CreatedAt time.Time
}

// Validate checks business rules for the announcement.
func (a *Announcement) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(a.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if strings.TrimSpace(a.Message) == "" {
		fields["message"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Fields flattens the announcement for the document store.
func (a *Announcement) Fields() map[string]any {
	return map[string]any{
		"title":   a.Title,
		"message": a.Message,
		"urgent":  a.Urgent,
	}
}

// AnnouncementFromFields rebuilds an announcement from a stored field map.
func AnnouncementFromFields(id string, createdAt time.Time, fields map[string]any) *Announcement {
	urgent, _ := fields["urgent"].(bool)
	return &Announcement{
		ID:        id,
		Title:     str(fields, "title"),
		Message:   str(fields, "message"),
		Urgent:    urgent,
		CreatedAt: createdAt,
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
