// Package supabase is a minimal PostgREST client covering the operations the
// projects backend needs: filtered selects, inserts, updates, and deletes
// against a Supabase REST endpoint authenticated with a service key.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a Supabase PostgREST endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// StatusError is returned for non-2xx PostgREST responses. Message carries
// the upstream error text when it could be extracted from the body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("supabase: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("supabase: status %d", e.StatusCode)
}

// New creates a new PostgREST client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// Select fetches rows from a table. Filters use PostgREST query syntax
// (id=eq.3, order=created_at.desc). The result is decoded into out, which is
// a single object when single is set and a JSON array otherwise.
func (c *Client) Select(ctx context.Context, table string, params url.Values, single bool, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, table, params, nil)
	if err != nil {
		return err
	}
	if single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}
	return c.do(req, out)
}

// Insert inserts one row and decodes the created representation into out.
func (c *Client) Insert(ctx context.Context, table string, row any, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, table, nil, row)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")
	req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	return c.do(req, out)
}

// Update patches rows matching params and decodes the updated rows into out.
func (c *Client) Update(ctx context.Context, table string, params url.Values, patch any, out any) error {
	req, err := c.newRequest(ctx, http.MethodPatch, table, params, patch)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")
	return c.do(req, out)
}

// Delete removes rows matching params and decodes the deleted rows into out.
func (c *Client) Delete(ctx context.Context, table string, params url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodDelete, table, params, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, table string, params url.Values, body any) (*http.Request, error) {
	reqURL := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, rdr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// extractMessage pulls the "message" field from a PostgREST error body.
func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}
