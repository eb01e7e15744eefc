package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// apiClient is a thin JSON client for the campus API. Identity travels in
// the trusted actor headers; there is no authentication at this boundary.
type apiClient struct {
	baseURL   string
	actorID   string
	actorRole string
}

// doJSON sends body (if non-nil) as JSON and decodes the response into out
// (if non-nil). Non-2xx responses are returned as errors carrying the
// problem detail from the server.
func (c *apiClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Actor-ID", c.actorID)
	req.Header.Set("X-Actor-Role", c.actorRole)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s: %s", method, path, problemDetail(resp.Body, resp.Status))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// problemDetail extracts the detail string from an RFC 9457 body, falling
// back to the HTTP status line.
func problemDetail(body io.Reader, status string) string {
	var problem struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&problem); err == nil && problem.Detail != "" {
		return problem.Detail
	}
	return status
}
