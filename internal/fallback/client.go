// Package fallback provides the client for the external structured-extraction
// service invoked when heuristic parsing yields nothing usable.
package fallback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campushire/parsume/internal/models"
)

// Parser extracts structured fields from a document. Implementations may be
// remote NLP services; callers must expect errors and degrade gracefully.
type Parser interface {
	ExtractAll(ctx context.Context, path string) (*models.Fields, error)
}

// Client calls a structured-extraction service over HTTP. The service
// accepts a multipart-encoded document on POST /v1/extract and responds with
// a JSON field mapping in the same shape as models.Fields.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a client for the service at baseURL. timeout bounds each
// request including body transfer; model loading on the service side can be
// slow, so callers should also carry a context deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ExtractAll uploads the document at path and returns the extracted fields.
func (c *Client) ExtractAll(ctx context.Context, path string) (*models.Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, string(b))
	}

	var fields models.Fields
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &fields, nil
}
