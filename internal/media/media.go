// Package media is the thin client for the external image store the
// content editors upload to.  The store is keyed by generated filename;
// the console never lists or transforms images, it only uploads bytes and
// deletes by name.  No retries: a failed upload surfaces to the editor as
// the usual error banner.
package media

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to one image store endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a Client.  baseURL is the store's root; apiKey may be empty
// for stores fronted by network policy.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Filename generates the storage key for an uploaded file, preserving the
// original extension.  Collisions are not checked; UUIDs make them
// negligible.
func Filename(original string) string {
	return uuid.NewString() + strings.ToLower(path.Ext(original))
}

// Upload sends the image bytes and returns the public URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/"+filename, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload %s: store answered %s", filename, resp.Status)
	}
	return c.baseURL + "/" + filename, nil
}

// Delete removes one image by filename.  A 404 from the store is treated
// as success; the image is gone either way.
func (c *Client) Delete(ctx context.Context, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/"+filename, nil)
	if err != nil {
		return fmt.Errorf("delete %s: %w", filename, err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete %s: store answered %s", filename, resp.Status)
	}
	return nil
}
