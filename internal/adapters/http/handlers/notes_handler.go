package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/ports"
)

// NotesHandler handles HTTP requests for the shared study notes board.
type NotesHandler struct {
	service ports.NotesService
}

// NewNotesHandler creates a new NotesHandler with the given service.
func NewNotesHandler(service ports.NotesService) *NotesHandler {
	return &NotesHandler{service: service}
}

// Upload handles POST /api/v1/notes.
func (h *NotesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadNoteRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	post, err := h.service.Upload(r.Context(), actorFrom(r), req.ToPost())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToNoteResponse(post))
}

// List handles GET /api/v1/notes. The optional ?subject= filter is matched
// case-insensitively.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context(), r.URL.Query().Get("subject"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNoteListResponse(posts))
}

// ListSubjects handles GET /api/v1/notes/subjects.
func (h *NotesHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.ListSubjects(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SubjectListResponse{Subjects: subjects, Count: len(subjects)})
}

// ToggleUpvote handles POST /api/v1/notes/{id}/upvote.
func (h *NotesHandler) ToggleUpvote(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.ToggleUpvote(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNoteResponse(post))
}

// Delete handles DELETE /api/v1/notes/{id}.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
