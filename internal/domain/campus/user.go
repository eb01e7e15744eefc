package campus

import (
	"strings"
	"time"

	"github.com/campusconnect/campus-api/internal/domain"
)

// User is the profile document kept per account. Authentication lives with
// the external identity provider; this document only carries the profile
// fields other boards denormalize (name, SAP id, contact) and the role the
// admin screens manage.
type User struct {
	ID            string
	FullName      string
	SpecializedID string
	ContactEmail  string
	Role          domain.Role
	CreatedAt     time.Time
}

// Validate checks business rules for the profile.
func (u *User) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(u.FullName) == "" {
		fields["full_name"] = domain.MsgRequired
	}
	if !u.Role.IsValid() {
		fields["role"] = "invalid: " + string(u.Role)
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Fields flattens the profile for the document store.
func (u *User) Fields() map[string]any {
	return map[string]any{
		"full_name":      u.FullName,
		"specialized_id": u.SpecializedID,
		"contact_email":  u.ContactEmail,
		"role":           string(u.Role),
	}
}

// UserFromFields rebuilds a profile from a stored field map.
func UserFromFields(id string, createdAt time.Time, fields map[string]any) *User {
	return &User{
		ID:            id,
		FullName:      str(fields, "full_name"),
		SpecializedID: str(fields, "specialized_id"),
		ContactEmail:  str(fields, "contact_email"),
		Role:          domain.Role(str(fields, "role")),
		CreatedAt:     createdAt,
	}
}
