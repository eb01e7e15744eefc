package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/ports"
)

// SkillsHandler handles HTTP requests for the peer skill-exchange board.
type SkillsHandler struct {
	service ports.SkillsService
}

// NewSkillsHandler creates a new SkillsHandler with the given service.
func NewSkillsHandler(service ports.SkillsService) *SkillsHandler {
	return &SkillsHandler{service: service}
}

// Post handles POST /api/v1/skills/requests.
func (h *SkillsHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostSkillRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	item, err := h.service.Post(r.Context(), actorFrom(r), req.ToRequest())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToSkillRequestResponse(item))
}

// Get handles GET /api/v1/skills/requests/{id}.
func (h *SkillsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSkillRequestResponse(item))
}

// List handles GET /api/v1/skills/requests.
func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), statusQuery(r))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSkillRequestListResponse(items))
}

// Watch handles GET /api/v1/skills/requests/watch. Streams the request list
// as server-sent events, one full snapshot per change.
func (h *SkillsHandler) Watch(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.service.Watch(r.Context(), statusQuery(r))
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
		if err := writeSSEEvent(w, rc, dto.ToSkillRequestListResponse(snap.Items)); err != nil {
			return
		}
	}
}

// Offer handles POST /api/v1/skills/requests/{id}/offers.
func (h *SkillsHandler) Offer(w http.ResponseWriter, r *http.Request) {
	var req dto.OfferHelpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.service.Offer(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.ToOffer())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSkillRequestResponse(item))
}

// Resolve handles POST /api/v1/skills/requests/{id}/resolve.
func (h *SkillsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Resolve(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSkillRequestResponse(item))
}

// Delete handles DELETE /api/v1/skills/requests/{id}.
func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
