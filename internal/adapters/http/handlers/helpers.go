package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/adapters/http/middleware"
	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

// actorFrom extracts the caller identity established by the Actor middleware.
// A zero actor means the request carried no identity headers; services treat
// that as a validation failure.
func actorFrom(r *http.Request) domain.Actor {
	return middleware.ActorFromContext(r.Context())
}

// statusQuery reads the optional ?status= filter as a workflow state.
func statusQuery(r *http.Request) workflow.State {
	return workflow.State(strings.TrimSpace(r.URL.Query().Get("status")))
}

// boolQuery reads a query parameter as a boolean flag. Absent or anything
// other than "true" or "1" is false.
func boolQuery(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (16 MB,
// sized for base64 flashcard document uploads).
const maxJSONBodyBytes = 16 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

// startSSE switches the response to a server-sent event stream. Returns a
// controller for flushing frames, or false when the connection cannot
// stream (the headers are already committed at that point, so the caller
// just drops the request).
func startSSE(w http.ResponseWriter) (*http.ResponseController, bool) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		slog.Error("response writer does not support streaming", slog.Any("error", err))
		return nil, false
	}
	return rc, true
}

// writeSSEEvent marshals v and writes it as one "data:" frame, flushing
// immediately so watchers see each snapshot as it lands.
func writeSSEEvent(w http.ResponseWriter, rc *http.ResponseController, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n\n")); err != nil {
		return err
	}
	return rc.Flush()
}
