// Package textgen is the thin client for the external text-generation
// service the editors use for article drafts.  The contract is plain
// text both ways: the prompt goes out as the request body, the generated
// text comes back as the response body.  No retries; a failure surfaces
// to the editor as the usual error banner.
package textgen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to one generation endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a Client.  Generation can take a while, so the timeout is
// longer than the media client's.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// Generate sends the prompt and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL, strings.NewReader(prompt))
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("generate: service answered %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("generate: read response: %w", err)
	}
	return string(body), nil
}
