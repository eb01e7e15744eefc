// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/campusconnect/campus-api/internal/domain/cafeteria"
	"github.com/campusconnect/campus-api/internal/domain/campus"
	"github.com/campusconnect/campus-api/internal/domain/directory"
	"github.com/campusconnect/campus-api/internal/domain/flashcard"
	"github.com/campusconnect/campus-api/internal/domain/lostfound"
	"github.com/campusconnect/campus-api/internal/domain/notes"
	"github.com/campusconnect/campus-api/internal/domain/skills"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

// MenuItemResponse represents a single menu item in HTTP responses.
type MenuItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Available   bool    `json:"available"`
	CreatedAt   string  `json:"created_at"`
}

// MenuListResponse represents the menu in HTTP responses.
type MenuListResponse struct {
	Items []MenuItemResponse `json:"items"`
	Count int                `json:"count"`
}

// ToMenuItemResponse converts a domain MenuItem to an HTTP response DTO.
func ToMenuItemResponse(m *cafeteria.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

// ToMenuListResponse converts a slice of domain MenuItems to an HTTP list
// response DTO.
func ToMenuListResponse(items []cafeteria.MenuItem) MenuListResponse {
	out := make([]MenuItemResponse, len(items))
	for i := range items {
		out[i] = ToMenuItemResponse(&items[i])
	}
	return MenuListResponse{Items: out, Count: len(out)}
}

// OrderResponse represents a cafeteria order in HTTP responses. The order's
// line items are the rendered "Name xN" strings computed at placement time.
type OrderResponse struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	UserID     string   `json:"user_id"`
	UserName   string   `json:"user_name"`
	Items      []string `json:"items"`
	TotalPrice float64  `json:"total_price"`
	CreatedAt  string   `json:"created_at"`
}

// OrderListResponse represents a list of orders in HTTP responses.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Count  int             `json:"count"`
}

// ToOrderResponse converts an order workflow item to an HTTP response DTO.
func ToOrderResponse(item *workflow.Item) OrderResponse {
	details := cafeteria.OrderFromItem(item)
	return OrderResponse{
		ID:         item.ID,
		Status:     item.Status.String(),
		UserID:     item.OwnerID,
		UserName:   details.UserName,
		Items:      details.Lines,
		TotalPrice: details.TotalPrice,
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
	}
}

// ToOrderListResponse converts a slice of order workflow items to an HTTP
// list response DTO.
func ToOrderListResponse(items []workflow.Item) OrderListResponse {
	orders := make([]OrderResponse, len(items))
	for i := range items {
		orders[i] = ToOrderResponse(&items[i])
	}
	return OrderListResponse{Orders: orders, Count: len(orders)}
}

// LostFoundResponse represents a lost-and-found report in HTTP responses.
type LostFoundResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url,omitempty"`
	ReporterID  string `json:"reporter_id"`
	ClaimantID  string `json:"claimant_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// LostFoundListResponse represents a list of reports in HTTP responses.
type LostFoundListResponse struct {
	Reports []LostFoundResponse `json:"reports"`
	Count   int                 `json:"count"`
}

// ToLostFoundResponse converts a lost-and-found workflow item to an HTTP
// response DTO.
func ToLostFoundResponse(item *workflow.Item) LostFoundResponse {
	report := lostfound.FromItem(item)
	return LostFoundResponse{
		ID:          item.ID,
		Status:      item.Status.String(),
		Name:        report.Name,
		Description: report.Description,
		Location:    report.Location,
		ImageURL:    report.ImageURL,
		ReporterID:  item.OwnerID,
		ClaimantID:  item.ClaimantID,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

// ToLostFoundListResponse converts a slice of lost-and-found workflow items
// to an HTTP list response DTO.
func ToLostFoundListResponse(items []workflow.Item) LostFoundListResponse {
	reports := make([]LostFoundResponse, len(items))
	for i := range items {
		reports[i] = ToLostFoundResponse(&items[i])
	}
	return LostFoundListResponse{Reports: reports, Count: len(reports)}
}

// OfferResponse represents one help offer on a skill request.
type OfferResponse struct {
	HelperID      string `json:"helper_id"`
	HelperName    string `json:"helper_name"`
	HelperContact string `json:"helper_contact,omitempty"`
}

// SkillRequestResponse represents a peer skill request in HTTP responses.
type SkillRequestResponse struct {
	ID                 string          `json:"id"`
	Status             string          `json:"status"`
	SkillName          string          `json:"skill_name"`
	Description        string          `json:"description"`
	PreferredTimeSlots string          `json:"preferred_time_slots,omitempty"`
	PostedByID         string          `json:"posted_by_id"`
	PostedByName       string          `json:"posted_by_name,omitempty"`
	PostedBySapID      string          `json:"posted_by_sap_id,omitempty"`
	Offers             []OfferResponse `json:"offers"`
	CreatedAt          string          `json:"created_at"`
}

// SkillRequestListResponse represents a list of skill requests in HTTP
// responses.
type SkillRequestListResponse struct {
	Requests []SkillRequestResponse `json:"requests"`
	Count    int                    `json:"count"`
}

// ToSkillRequestResponse converts a skill-request workflow item to an HTTP
// response DTO.
func ToSkillRequestResponse(item *workflow.Item) SkillRequestResponse {
	request := skills.FromItem(item)
	offers := make([]OfferResponse, len(item.Offers))
	for i, o := range item.Offers {
		offers[i] = OfferResponse{
			HelperID:      o.HelperID,
			HelperName:    o.HelperName,
			HelperContact: o.HelperContact,
		}
	}
	return SkillRequestResponse{
		ID:                 item.ID,
		Status:             item.Status.String(),
		SkillName:          request.SkillName,
		Description:        request.Description,
		PreferredTimeSlots: request.PreferredTimeSlots,
		PostedByID:         item.OwnerID,
		PostedByName:       request.PostedByName,
		PostedBySapID:      request.PostedBySapID,
		Offers:             offers,
		CreatedAt:          item.CreatedAt.Format(time.RFC3339),
	}
}

// ToSkillRequestListResponse converts a slice of skill-request workflow
// items to an HTTP list response DTO.
func ToSkillRequestListResponse(items []workflow.Item) SkillRequestListResponse {
	requests := make([]SkillRequestResponse, len(items))
	for i := range items {
		requests[i] = ToSkillRequestResponse(&items[i])
	}
	return SkillRequestListResponse{Requests: requests, Count: len(requests)}
}

// NoteResponse represents a shared study note in HTTP responses.
type NoteResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileURL     string `json:"file_url"`
	FileType    string `json:"file_type,omitempty"`
	AuthorID    string `json:"author_id"`
	AuthorSapID string `json:"author_sap_id,omitempty"`
	AuthorName  string `json:"author_name,omitempty"`
	UpvoteCount int    `json:"upvote_count"`
	Subject     string `json:"subject"`
	CreatedAt   string `json:"created_at"`
}

// NoteListResponse represents a list of notes in HTTP responses.
type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
	Count int            `json:"count"`
}

// SubjectListResponse represents the subject index in HTTP responses.
type SubjectListResponse struct {
	Subjects []string `json:"subjects"`
	Count    int      `json:"count"`
}

// ToNoteResponse converts a domain note Post to an HTTP response DTO. The
// upvoter set stays server-side; only the count is exposed.
func ToNoteResponse(p *notes.Post) NoteResponse {
	return NoteResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		FileURL:     p.FileURL,
		FileType:    p.FileType,
		AuthorID:    p.AuthorID,
		AuthorSapID: p.AuthorSapID,
		AuthorName:  p.AuthorName,
		UpvoteCount: p.UpvoteCount,
		Subject:     p.Subject,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

// ToNoteListResponse converts a slice of domain note Posts to an HTTP list
// response DTO.
func ToNoteListResponse(posts []notes.Post) NoteListResponse {
	out := make([]NoteResponse, len(posts))
	for i := range posts {
		out[i] = ToNoteResponse(&posts[i])
	}
	return NoteListResponse{Notes: out, Count: len(out)}
}

// FlashcardResponse represents a generated flashcard set in HTTP responses.
type FlashcardResponse struct {
	Cards []flashcard.Card `json:"cards"`
	Count int              `json:"count"`
}

// ToFlashcardResponse converts generated cards to an HTTP response DTO.
func ToFlashcardResponse(cards []flashcard.Card) FlashcardResponse {
	return FlashcardResponse{Cards: cards, Count: len(cards)}
}

// FacultyResponse represents a faculty directory entry in HTTP responses.
type FacultyResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Department     string            `json:"department"`
	OfficeLocation string            `json:"office_location,omitempty"`
	ImageURL       string            `json:"image_url,omitempty"`
	Email          string            `json:"email,omitempty"`
	Timetable      map[string]string `json:"timetable,omitempty"`
	CreatedAt      string            `json:"created_at"`
}

// FacultyListResponse represents a list of directory entries in HTTP
// responses.
type FacultyListResponse struct {
	Faculty []FacultyResponse `json:"faculty"`
	Count   int               `json:"count"`
}

// ToFacultyResponse converts a domain FacultyMember to an HTTP response DTO.
func ToFacultyResponse(f *directory.FacultyMember) FacultyResponse {
	return FacultyResponse{
		ID:             f.ID,
		Name:           f.Name,
		Department:     f.Department,
		OfficeLocation: f.OfficeLocation,
		ImageURL:       f.ImageURL,
		Email:          f.Email,
		Timetable:      f.Timetable,
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
	}
}

// ToFacultyListResponse converts a slice of domain FacultyMembers to an HTTP
// list response DTO.
func ToFacultyListResponse(members []directory.FacultyMember) FacultyListResponse {
	out := make([]FacultyResponse, len(members))
	for i := range members {
		out[i] = ToFacultyResponse(&members[i])
	}
	return FacultyListResponse{Faculty: out, Count: len(out)}
}

// AnnouncementResponse represents a campus announcement in HTTP responses.
type AnnouncementResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Urgent    bool   `json:"urgent"`
	CreatedAt string `json:"created_at"`
}

// AnnouncementListResponse represents a list of announcements in HTTP
// responses.
type AnnouncementListResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	Count         int                    `json:"count"`
}

// ToAnnouncementResponse converts a domain Announcement to an HTTP response
// DTO.
func ToAnnouncementResponse(a *campus.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		Urgent:    a.Urgent,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

// ToAnnouncementListResponse converts a slice of domain Announcements to an
// HTTP list response DTO.
func ToAnnouncementListResponse(anns []campus.Announcement) AnnouncementListResponse {
	out := make([]AnnouncementResponse, len(anns))
	for i := range anns {
		out[i] = ToAnnouncementResponse(&anns[i])
	}
	return AnnouncementListResponse{Announcements: out, Count: len(out)}
}

// UserResponse represents a user profile in HTTP responses.
type UserResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	SpecializedID string `json:"specialized_id,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
	Role          string `json:"role"`
	CreatedAt     string `json:"created_at"`
}

// UserListResponse represents a list of user profiles in HTTP responses.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// ToUserResponse converts a domain User to an HTTP response DTO.
func ToUserResponse(u *campus.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		SpecializedID: u.SpecializedID,
		ContactEmail:  u.ContactEmail,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

// ToUserListResponse converts a slice of domain Users to an HTTP list
// response DTO.
func ToUserListResponse(users []campus.User) UserListResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return UserListResponse{Users: out, Count: len(out)}
}
