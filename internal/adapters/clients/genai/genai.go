// Package genai is the outbound adapter for the generative-AI completion
// API. It speaks the Gemini-style generateContent wire format: a JSON body
// of content parts (text, optionally inline base64 document data) posted to
// the model's generateContent endpoint, authenticated by API key header.
//
// The underlying httpclient.Client provides circuit breaking, retry with
// exponential backoff, rate limiting, OpenTelemetry tracing, and health
// checking for every outbound call. HTTP failures are mapped to domain
// errors; the rest of the system never sees provider status codes.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/platform/config"
	"github.com/campusconnect/campus-api/internal/platform/httpclient"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.CompletionClient = (*Client)(nil)
	_ ports.HealthChecker    = (*Client)(nil)
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// Client implements ports.CompletionClient against a generateContent API.
type Client struct {
	http   *httpclient.Client
	model  string
	apiKey string
	logger *slog.Logger
}

// New creates a Client. The httpclient's base URL points at the provider
// root; model and api key come from the genai config section.
func New(httpClient *httpclient.Client, cfg *config.GenAIConfig, logger *slog.Logger) *Client {
	return &Client{
		http:   httpClient,
		model:  cfg.Model,
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// --- wire format ---

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Complete sends a text-only prompt and returns the model's text output.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []part{{Text: prompt}})
}

// CompleteWithDocument sends a prompt together with an inline document
// (image or PDF bytes, base64-encoded on the wire).
func (c *Client) CompleteWithDocument(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	parts := []part{
		{Text: prompt},
		{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(data),
		}},
	}
	return c.generate(ctx, parts)
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("marshaling generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.http.BaseURL(), c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		// Do can return both resp and err when retries are exhausted on a
		// retryable status; translate the response rather than the raw error.
		if resp != nil {
			defer c.closeBody(ctx, resp)
			return "", c.translateError(resp)
		}
		c.logger.ErrorContext(ctx, "generate request failed",
			slog.String("operation", "generate"),
			slog.String("model", c.model),
			slog.Any("error", err),
		)
		return "", fmt.Errorf("generate: %w: %w", err, domain.ErrUnavailable)
	}
	defer c.closeBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "generate returned unexpected status",
			slog.String("operation", "generate"),
			slog.String("model", c.model),
			slog.Int("status", resp.StatusCode),
		)
		return "", c.translateError(resp)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding generate response: %w: %w", err, domain.ErrUnavailable)
	}

	text := firstText(decoded)
	if text == "" {
		// Empty candidates usually mean the prompt or document was blocked.
		return "", fmt.Errorf("model returned no text output: %w", domain.ErrUnavailable)
	}
	return text, nil
}

// translateError maps a provider error response to a domain error. Client
// mistakes (oversized or malformed documents) surface as validation errors;
// everything else is the provider being unavailable to us.
func (c *Client) translateError(resp *http.Response) error {
	detail := readErrorDetail(resp)
	switch {
	case resp.StatusCode == http.StatusBadRequest ||
		resp.StatusCode == http.StatusRequestEntityTooLarge ||
		resp.StatusCode == http.StatusUnsupportedMediaType:
		return fmt.Errorf("generate rejected (%d): %s: %w", resp.StatusCode, detail, domain.ErrValidation)
	default:
		return fmt.Errorf("generate failed (%d): %s: %w", resp.StatusCode, detail, domain.ErrUnavailable)
	}
}

// readErrorDetail pulls the provider's error message out of the body, falling
// back to the status text.
func readErrorDetail(resp *http.Response) string {
	if resp.Body != nil {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if err == nil {
			var parsed struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
				return parsed.Error.Message
			}
		}
	}
	return http.StatusText(resp.StatusCode)
}

func firstText(resp generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "failed to close response body",
			slog.Any("error", err),
		)
	}
}

// Name identifies the client in health reports.
func (c *Client) Name() string { return "genai" }

// HealthCheck reports the underlying HTTP client's circuit state.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}
