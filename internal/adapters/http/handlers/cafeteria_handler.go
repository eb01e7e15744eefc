package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/cafeteria"
	"github.com/campusconnect/campus-api/internal/ports"
)

// CafeteriaHandler handles HTTP requests for the cafeteria menu and orders.
type CafeteriaHandler struct {
	service ports.CafeteriaService
}

// NewCafeteriaHandler creates a new CafeteriaHandler with the given service.
func NewCafeteriaHandler(service ports.CafeteriaService) *CafeteriaHandler {
	return &CafeteriaHandler{service: service}
}

// ListMenu handles GET /api/v1/cafeteria/menu.
func (h *CafeteriaHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	availableOnly := boolQuery(r, "available")

	items, err := h.service.ListMenu(r.Context(), category, availableOnly)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMenuListResponse(items))
}

// AddMenuItem handles POST /api/v1/cafeteria/menu.
func (h *CafeteriaHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMenuItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.service.AddMenuItem(r.Context(), actorFrom(r), req.ToMenuItem())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToMenuItemResponse(created))
}

// SetAvailability handles PATCH /api/v1/cafeteria/menu/{id}/availability.
func (h *CafeteriaHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req dto.SetAvailabilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.SetAvailability(r.Context(), actorFrom(r), id, *req.Available); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveMenuItem handles DELETE /api/v1/cafeteria/menu/{id}.
func (h *CafeteriaHandler) RemoveMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.RemoveMenuItem(r.Context(), actorFrom(r), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/cafeteria/orders. Each cart line is
// resolved against the live menu so that names and prices come from the
// catalogue, never from the client.
func (h *CafeteriaHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cart := make([]cafeteria.CartLine, 0, len(req.Items))
	for _, line := range req.Items {
		item, err := h.service.GetMenuItem(r.Context(), line.MenuItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				err = &domain.ValidationError{Fields: map[string]string{
					"items": "unknown menu item: " + line.MenuItemID,
				}}
			}
			dto.WriteErrorResponse(w, r, err)
			return
		}
		cart = append(cart, cafeteria.CartLine{Item: *item, Quantity: line.Quantity})
	}

	order, err := h.service.PlaceOrder(r.Context(), actorFrom(r), req.UserName, cart)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToOrderResponse(order))
}

// ListOrders handles GET /api/v1/cafeteria/orders.
func (h *CafeteriaHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), actorFrom(r), statusQuery(r))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToOrderListResponse(orders))
}

// WatchOrders handles GET /api/v1/cafeteria/orders/watch. Streams the
// order list as server-sent events, one full snapshot per change.
func (h *CafeteriaHandler) WatchOrders(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.service.WatchOrders(r.Context(), actorFrom(r), statusQuery(r))
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
		if err := writeSSEEvent(w, rc, dto.ToOrderListResponse(snap.Items)); err != nil {
			return
		}
	}
}

// AdvanceOrder handles POST /api/v1/cafeteria/orders/{id}/transitions/{transition}.
func (h *CafeteriaHandler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	transition := chi.URLParam(r, "transition")

	order, err := h.service.AdvanceOrder(r.Context(), actorFrom(r), id, transition)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToOrderResponse(order))
}
