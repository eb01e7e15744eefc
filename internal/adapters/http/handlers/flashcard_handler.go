package handlers

import (
	"net/http"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/ports"
)

// FlashcardHandler handles HTTP requests for AI flashcard generation.
type FlashcardHandler struct {
	service ports.FlashcardService
}

// NewFlashcardHandler creates a new FlashcardHandler with the given service.
func NewFlashcardHandler(service ports.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{service: service}
}

// FromTopic handles POST /api/v1/flashcards/topic.
func (h *FlashcardHandler) FromTopic(w http.ResponseWriter, r *http.Request) {
	var req dto.FlashcardTopicRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cards, err := h.service.FromTopic(r.Context(), req.Topic, req.Count)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFlashcardResponse(cards))
}

// FromDocument handles POST /api/v1/flashcards/document.
func (h *FlashcardHandler) FromDocument(w http.ResponseWriter, r *http.Request) {
	var req dto.FlashcardDocumentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cards, err := h.service.FromDocument(r.Context(), req.MimeType, req.DecodedData(), req.Count)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFlashcardResponse(cards))
}
