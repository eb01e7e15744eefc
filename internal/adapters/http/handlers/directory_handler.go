package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/ports"
)

// DirectoryHandler handles HTTP requests for the faculty directory.
type DirectoryHandler struct {
	service ports.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler with the given service.
func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// List handles GET /api/v1/directory/faculty.
func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFacultyListResponse(members))
}

// Get handles GET /api/v1/directory/faculty/{id}.
func (h *DirectoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFacultyResponse(member))
}

// Add handles POST /api/v1/directory/faculty.
func (h *DirectoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddFacultyRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	created, err := h.service.Add(r.Context(), actorFrom(r), req.ToFacultyMember())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToFacultyResponse(created))
}

// Update handles PUT /api/v1/directory/faculty/{id}. The body carries the
// full entry; the path decides which one it replaces.
func (h *DirectoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.AddFacultyRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	member := req.ToFacultyMember()
	member.ID = chi.URLParam(r, "id")
	if err := h.service.Update(r.Context(), actorFrom(r), member); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Remove handles DELETE /api/v1/directory/faculty/{id}.
func (h *DirectoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
