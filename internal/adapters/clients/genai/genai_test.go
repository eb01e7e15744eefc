package genai_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusconnect/campus-api/internal/adapters/clients/genai"
	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/platform/config"
	"github.com/campusconnect/campus-api/internal/platform/httpclient"
)

func newClient(t *testing.T, baseURL string) *genai.Client {
	t.Helper()
	cfg := &config.GenAIConfig{
		BaseURL: baseURL,
		Model:   "gemini-1.5-flash",
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      2,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
	logger := slog.New(slog.DiscardHandler)
	return genai.New(httpclient.New(cfg, "genai", nil, logger), cfg, logger)
}

func modelReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	var gotBody struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(modelReply("1. Q: What? A: That.")); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}))
	defer server.Close()

	c := newClient(t, server.URL)
	text, err := c.Complete(context.Background(), "make flashcards")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "1. Q: What? A: That." {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q, want test-key", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 ||
		gotBody.Contents[0].Parts[0].Text != "make flashcards" {
		t.Errorf("request body = %+v, want single text part", gotBody)
	}
}

func TestCompleteWithDocument(t *testing.T) {
	t.Parallel()

	data := []byte("%PDF-1.4 study material")
	var gotBody struct {
		Contents []struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mime_type"`
					Data     string `json:"data"`
				} `json:"inline_data"`
			} `json:"parts"`
		} `json:"contents"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(modelReply("1. Q: What? A: That."))
	}))
	defer server.Close()

	c := newClient(t, server.URL)
	if _, err := c.CompleteWithDocument(context.Background(), "summarize", "application/pdf", data); err != nil {
		t.Fatalf("CompleteWithDocument() error = %v", err)
	}

	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("request body = %+v, want text part and inline data part", gotBody)
	}
	inline := gotBody.Contents[0].Parts[1].InlineData
	if inline == nil {
		t.Fatal("second part carries no inline data")
	}
	if inline.MimeType != "application/pdf" {
		t.Errorf("mime type = %q", inline.MimeType)
	}
	if inline.Data != base64.StdEncoding.EncodeToString(data) {
		t.Error("document bytes were not base64-encoded")
	}
}

func TestComplete_BadRequestIsValidation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"message": "unsupported document type"}}`)
	}))
	defer server.Close()

	c := newClient(t, server.URL)
	_, err := c.Complete(context.Background(), "make flashcards")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want domain.ErrValidation", err)
	}
}

func TestComplete_ServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newClient(t, server.URL)
	_, err := c.Complete(context.Background(), "make flashcards")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable", err)
	}
}

func TestComplete_EmptyCandidates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	defer server.Close()

	c := newClient(t, server.URL)
	_, err := c.Complete(context.Background(), "make flashcards")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable for blocked output", err)
	}
}
