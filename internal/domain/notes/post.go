// Package notes contains the peer note-sharing entities: note posts and the
// subject documents derived from them. Subjects follow the tag lifecycle: a
// subject exists iff at least one note references it, enforced eventually by
// a best-effort cleanup hook, never transactionally.
package notes

import (
	"strings"
	"time"

	"github.com/campusconnect/campus-api/internal/domain"
)

// Document kinds for the note-sharing board.
const (
	KindNote    = "note"
	KindSubject = "subject"
)

// Post is a shared note. FileURL arrives pre-uploaded from the external
// blob storage collaborator; UpvotedBy is a set keyed by user id.
type Post struct {
	ID          string
	Title       string
	Description string
	FileURL     string
	FileType    string
	AuthorID    string
	AuthorSapID string
	AuthorName  string
	UpvoteCount int
	UpvotedBy   []string
	Subject     string
	CreatedAt   time.Time
}

// Validate checks business rules for the post.
func (p *Post) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if strings.TrimSpace(p.FileURL) == "" {
		fields["file_url"] = domain.MsgRequired
	}
	if strings.TrimSpace(p.Subject) == "" {
		fields["subject"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpvotedByUser reports whether userID is in the upvote set.
func (p *Post) UpvotedByUser(userID string) bool {
	for _, id := range p.UpvotedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// NormalizeSubject canonicalizes a subject name: trimmed and uppercased.
// Subject documents are keyed by the normalized name, so "maths", "Maths"
// and " MATHS " all reference the same tag.
func NormalizeSubject(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Fields flattens the post for the document store.
func (p *Post) Fields() map[string]any {
	upvoters := make([]any, 0, len(p.UpvotedBy))
	for _, id := range p.UpvotedBy {
		upvoters = append(upvoters, id)
	}
	return map[string]any{
		"title":         p.Title,
		"description":   p.Description,
		"file_url":      p.FileURL,
		"file_type":     p.FileType,
		"author_id":     p.AuthorID,
		"author_sap_id": p.AuthorSapID,
		"author_name":   p.AuthorName,
		"upvote_count":  p.UpvoteCount,
		"upvoted_by":    upvoters,
		"subject":       p.Subject,
	}
}

// PostFromFields rebuilds a post from a stored field map.
func PostFromFields(id string, createdAt time.Time, fields map[string]any) *Post {
	p := &Post{
		ID:          id,
		Title:       str(fields, "title"),
		Description: str(fields, "description"),
		FileURL:     str(fields, "file_url"),
		FileType:    str(fields, "file_type"),
		AuthorID:    str(fields, "author_id"),
		AuthorSapID: str(fields, "author_sap_id"),
		AuthorName:  str(fields, "author_name"),
		UpvoteCount: intField(fields, "upvote_count"),
		Subject:     str(fields, "subject"),
		CreatedAt:   createdAt,
	}
	switch voters := fields["upvoted_by"].(type) {
	case []string:
		p.UpvotedBy = voters
	case []any:
		for _, v := range voters {
			if s, ok := v.(string); ok {
				p.UpvotedBy = append(p.UpvotedBy, s)
			}
		}
	}
	return p
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
