package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/ports"
)

// AnnouncementHandler handles HTTP requests for campus announcements.
type AnnouncementHandler struct {
	service ports.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler with the given
// service.
func NewAnnouncementHandler(service ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// List handles GET /api/v1/announcements.
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	anns, err := h.service.List(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAnnouncementListResponse(anns))
}

// Watch handles GET /api/v1/announcements/watch. Streams the announcement
// list as server-sent events, one full snapshot per change.
func (h *AnnouncementHandler) Watch(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.service.Watch(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	rc, ok := startSSE(w)
	if !ok {
		return
	}
	for snap := range snaps {
		if snap.Err != nil {
			return
		}
		if err := writeSSEEvent(w, rc, dto.ToAnnouncementListResponse(snap.Announcements)); err != nil {
			return
		}
	}
}

// Publish handles POST /api/v1/announcements.
func (h *AnnouncementHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req dto.PublishAnnouncementRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	created, err := h.service.Publish(r.Context(), actorFrom(r), req.ToAnnouncement())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToAnnouncementResponse(created))
}

// Remove handles DELETE /api/v1/announcements/{id}.
func (h *AnnouncementHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
