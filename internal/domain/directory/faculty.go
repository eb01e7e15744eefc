// Package directory contains the faculty directory entities.
package directory

import (
	"strings"
	"time"

	"github.com/campusconnect/campus-api/internal/domain"
)

// KindFaculty is the document kind for faculty members.
const KindFaculty = "faculty_member"

// FacultyMember is one directory entry. Timetable maps a day name to a
// free-form availability string, exactly the shape the directory renders.
type FacultyMember struct {
	ID             string
	Name           string
	Department     string
	OfficeLocation string
	ImageURL       string
	Email          string
	Timetable      map[string]string
	CreatedAt      time.Time
}

// Validate checks business rules for the directory entry.
func (f *FacultyMember) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(f.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(f.Department) == "" {
		fields["department"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Fields flattens the entry for the document store.
func (f *FacultyMember) Fields() map[string]any {
	timetable := make(map[string]any, len(f.Timetable))
	for day, slot := range f.Timetable {
		timetable[day] = slot
	}
	return map[string]any{
		"name":            f.Name,
		"department":      f.Department,
		"office_location": f.OfficeLocation,
		"image_url":       f.ImageURL,
		"email":           f.Email,
		"timetable":       timetable,
	}
}

// FromFields rebuilds a directory entry from a stored field map.
func FromFields(id string, createdAt time.Time, fields map[string]any) *FacultyMember {
	f := &FacultyMember{
		ID:             id,
		Name:           str(fields, "name"),
		Department:     str(fields, "department"),
		OfficeLocation: str(fields, "office_location"),
		ImageURL:       str(fields, "image_url"),
		Email:          str(fields, "email"),
		CreatedAt:      createdAt,
	}
	if tt, ok := fields["timetable"].(map[string]any); ok {
		f.Timetable = make(map[string]string, len(tt))
		for day, slot := range tt {
			if s, ok := slot.(string); ok {
				f.Timetable[day] = s
			}
		}
	}
	if tt, ok := fields["timetable"].(map[string]string); ok {
		f.Timetable = tt
	}
	return f
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
