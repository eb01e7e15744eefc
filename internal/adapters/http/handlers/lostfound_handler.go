package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/ports"
)

// LostFoundHandler handles HTTP requests for the lost-and-found board.
type LostFoundHandler struct {
	service ports.LostFoundService
}

// NewLostFoundHandler creates a new LostFoundHandler with the given service.
func NewLostFoundHandler(service ports.LostFoundService) *LostFoundHandler {
	return &LostFoundHandler{service: service}
}

// Report handles POST /api/v1/lostfound/items.
func (h *LostFoundHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportLostItemRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	item, err := h.service.Report(r.Context(), actorFrom(r), req.ToReport())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToLostFoundResponse(item))
}

// Get handles GET /api/v1/lostfound/items/{id}.
func (h *LostFoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLostFoundResponse(item))
}

// List handles GET /api/v1/lostfound/items.
func (h *LostFoundHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), actorFrom(r), statusQuery(r))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLostFoundListResponse(items))
}

// Watch handles GET /api/v1/lostfound/items/watch. Streams the report list
// as server-sent events, one full snapshot per change.
func (h *LostFoundHandler) Watch(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.service.Watch(r.Context(), actorFrom(r), statusQuery(r))
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
		if err := writeSSEEvent(w, rc, dto.ToLostFoundListResponse(snap.Items)); err != nil {
			return
		}
	}
}

// Transition handles POST /api/v1/lostfound/items/{id}/transitions/{transition}.
// The transition tables decide which moves (approve, reject, claim, confirm,
// deny) are open to the actor.
func (h *LostFoundHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	transition := chi.URLParam(r, "transition")

	item, err := h.service.Transition(r.Context(), actorFrom(r), id, transition)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLostFoundResponse(item))
}

// Delete handles DELETE /api/v1/lostfound/items/{id}.
func (h *LostFoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
