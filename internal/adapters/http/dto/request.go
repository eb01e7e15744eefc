package dto

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/cafeteria"
	"github.com/campusconnect/campus-api/internal/domain/campus"
	"github.com/campusconnect/campus-api/internal/domain/directory"
	"github.com/campusconnect/campus-api/internal/domain/lostfound"
	"github.com/campusconnect/campus-api/internal/domain/notes"
	"github.com/campusconnect/campus-api/internal/domain/skills"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"

	// maxDocumentBytes bounds the decoded size of an uploaded flashcard
	// source document.
	maxDocumentBytes = 8 << 20
)

// AddMenuItemRequest represents the JSON body for creating a menu item.
type AddMenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *AddMenuItemRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if r.Price <= 0 {
		fields["price"] = fmt.Sprintf("must be positive, got %v", r.Price)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToMenuItem converts the request to a domain MenuItem. New items default to
// available unless the request says otherwise.
func (r *AddMenuItemRequest) ToMenuItem() cafeteria.MenuItem {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return cafeteria.MenuItem{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Available:   available,
	}
}

// SetAvailabilityRequest represents the JSON body for toggling a menu item's
// availability.
type SetAvailabilityRequest struct {
	Available *bool `json:"available"`
}

// Validate checks that the availability flag is present.
// Returns a *domain.ValidationError if any checks fail.
func (r *SetAvailabilityRequest) Validate() error {
	if r.Available == nil {
		return &domain.ValidationError{Fields: map[string]string{"available": msgRequired}}
	}
	return nil
}

// OrderLineRequest is one cart entry in a PlaceOrderRequest. Prices are never
// taken from the client; the handler resolves each menu item by id.
type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// PlaceOrderRequest represents the JSON body for placing a cafeteria order.
type PlaceOrderRequest struct {
	UserName string             `json:"user_name"`
	Items    []OrderLineRequest `json:"items"`
}

// Validate checks that the cart is well-formed.
// Returns a *domain.ValidationError if any checks fail.
func (r *PlaceOrderRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.UserName) == "" {
		fields["user_name"] = msgRequired
	}
	if len(r.Items) == 0 {
		fields["items"] = msgMustNotEmpty
	}
	for i, line := range r.Items {
		if strings.TrimSpace(line.MenuItemID) == "" {
			fields[fmt.Sprintf("items[%d].menu_item_id", i)] = msgRequired
		}
		if line.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = fmt.Sprintf("must be >= 1, got %d", line.Quantity)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ReportLostItemRequest represents the JSON body for reporting a lost or
// found item.
type ReportLostItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ToReport converts the request to a domain Report. Field validation is
// delegated to the domain type.
func (r *ReportLostItemRequest) ToReport() lostfound.Report {
	return lostfound.Report{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
	}
}

// PostSkillRequest represents the JSON body for posting a skill-exchange
// request.
type PostSkillRequest struct {
	SkillName          string `json:"skill_name"`
	Description        string `json:"description"`
	PreferredTimeSlots string `json:"preferred_time_slots,omitempty"`
	PostedByName       string `json:"posted_by_name,omitempty"`
	PostedBySapID      string `json:"posted_by_sap_id,omitempty"`
}

// ToRequest converts the request to a domain skill Request. Field validation
// is delegated to the domain type.
func (r *PostSkillRequest) ToRequest() skills.Request {
	return skills.Request{
		SkillName:          r.SkillName,
		Description:        r.Description,
		PreferredTimeSlots: r.PreferredTimeSlots,
		PostedByName:       r.PostedByName,
		PostedBySapID:      r.PostedBySapID,
	}
}

// OfferHelpRequest represents the JSON body for offering help on a skill
// request. The helper's identity comes from the actor headers, never from
// the body.
type OfferHelpRequest struct {
	HelperName    string `json:"helper_name"`
	HelperContact string `json:"helper_contact,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *OfferHelpRequest) Validate() error {
	if strings.TrimSpace(r.HelperName) == "" {
		return &domain.ValidationError{Fields: map[string]string{"helper_name": msgRequired}}
	}
	return nil
}

// ToOffer converts the request to a workflow Offer. HelperID is left empty;
// the service pins it to the acting user.
func (r *OfferHelpRequest) ToOffer() workflow.Offer {
	return workflow.Offer{
		HelperName:    r.HelperName,
		HelperContact: r.HelperContact,
	}
}

// UploadNoteRequest represents the JSON body for sharing a study note.
type UploadNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileURL     string `json:"file_url"`
	FileType    string `json:"file_type,omitempty"`
	AuthorSapID string `json:"author_sap_id,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	Subject     string `json:"subject"`
}

// ToPost converts the request to a domain note Post. Field validation is
// delegated to the domain type.
func (r *UploadNoteRequest) ToPost() notes.Post {
	return notes.Post{
		Title:       r.Title,
		Description: r.Description,
		FileURL:     r.FileURL,
		FileType:    r.FileType,
		AuthorSapID: r.AuthorSapID,
		AuthorName:  r.AuthorName,
		Subject:     r.Subject,
	}
}

// FlashcardTopicRequest represents the JSON body for generating flashcards
// from a free-text topic.
type FlashcardTopicRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *FlashcardTopicRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &domain.ValidationError{Fields: map[string]string{"topic": msgRequired}}
	}
	return nil
}

// FlashcardDocumentRequest represents the JSON body for generating flashcards
// from an uploaded document. Data carries the document base64-encoded.
type FlashcardDocumentRequest struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Count    int    `json:"count,omitempty"`
}

// Validate checks that the document is present and decodable.
// Returns a *domain.ValidationError if any checks fail.
func (r *FlashcardDocumentRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.MimeType) == "" {
		fields["mime_type"] = msgRequired
	}
	if r.Data == "" {
		fields["data"] = msgRequired
	} else if decoded, err := base64.StdEncoding.DecodeString(r.Data); err != nil {
		fields["data"] = "must be valid base64"
	} else if len(decoded) > maxDocumentBytes {
		fields["data"] = fmt.Sprintf("document too large: %d bytes", len(decoded))
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// DecodedData returns the document bytes. Validate must have passed.
func (r *FlashcardDocumentRequest) DecodedData() []byte {
	decoded, _ := base64.StdEncoding.DecodeString(r.Data)
	return decoded
}

// AddFacultyRequest represents the JSON body for creating a faculty
// directory entry.
type AddFacultyRequest struct {
	Name           string            `json:"name"`
	Department     string            `json:"department"`
	OfficeLocation string            `json:"office_location,omitempty"`
	ImageURL       string            `json:"image_url,omitempty"`
	Email          string            `json:"email,omitempty"`
	Timetable      map[string]string `json:"timetable,omitempty"`
}

// ToFacultyMember converts the request to a domain FacultyMember. Field
// validation is delegated to the domain type.
func (r *AddFacultyRequest) ToFacultyMember() directory.FacultyMember {
	return directory.FacultyMember{
		Name:           r.Name,
		Department:     r.Department,
		OfficeLocation: r.OfficeLocation,
		ImageURL:       r.ImageURL,
		Email:          r.Email,
		Timetable:      r.Timetable,
	}
}

// PublishAnnouncementRequest represents the JSON body for publishing a
// campus announcement.
type PublishAnnouncementRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Urgent  bool   `json:"urgent,omitempty"`
}

// ToAnnouncement converts the request to a domain Announcement. Field
// validation is delegated to the domain type.
func (r *PublishAnnouncementRequest) ToAnnouncement() campus.Announcement {
	return campus.Announcement{
		Title:   r.Title,
		Message: r.Message,
		Urgent:  r.Urgent,
	}
}

// RegisterUserRequest represents the JSON body for registering a user
// profile. The profile id comes from the identity provider; when absent one
// is assigned.
type RegisterUserRequest struct {
	ID            string `json:"id,omitempty"`
	FullName      string `json:"full_name"`
	SpecializedID string `json:"specialized_id,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
}

// ToUser converts the request to a domain User. The role is always assigned
// by the service, never taken from the body.
func (r *RegisterUserRequest) ToUser() campus.User {
	return campus.User{
		ID:            r.ID,
		FullName:      r.FullName,
		SpecializedID: r.SpecializedID,
		ContactEmail:  r.ContactEmail,
	}
}

// UpdateUserRequest represents the JSON body for updating a user profile.
type UpdateUserRequest struct {
	FullName      string `json:"full_name"`
	SpecializedID string `json:"specialized_id,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
}

// ToUser converts the request to a domain User for the given profile id.
func (r *UpdateUserRequest) ToUser(id string) campus.User {
	return campus.User{
		ID:            id,
		FullName:      r.FullName,
		SpecializedID: r.SpecializedID,
		ContactEmail:  r.ContactEmail,
	}
}

// SetRoleRequest represents the JSON body for changing a user's role.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// Validate checks that the role is a known value.
// Returns a *domain.ValidationError if any checks fail.
func (r *SetRoleRequest) Validate() error {
	if !domain.Role(r.Role).IsValid() {
		return &domain.ValidationError{Fields: map[string]string{
			"role": fmt.Sprintf("invalid: %q", r.Role),
		}}
	}
	return nil
}
