// Package media proxies stock-photo search to the Pexels API and normalizes
// the response shape for the front end.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client handles communication with the photo-search API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// UpstreamError is returned for non-2xx photo-search responses. Message
// carries the upstream error body when one could be extracted.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("media: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("media: status %d", e.StatusCode)
}

// PhotoSource is the normalized set of image URLs for one photo.
type PhotoSource struct {
	Original string `json:"original"`
	Large    string `json:"large"`
	Medium   string `json:"medium"`
	Small    string `json:"small"`
}

// Photo is the normalized photo shape returned to the front end.
type Photo struct {
	ID           int64       `json:"id"`
	Photographer string      `json:"photographer"`
	URL          string      `json:"url"`
	Src          PhotoSource `json:"src"`
}

// SearchResult wraps the normalized photos with paging metadata.
type SearchResult struct {
	Photos       []Photo `json:"photos"`
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	TotalResults int64   `json:"total_results"`
}

// Search queries the upstream API and normalizes the result. Missing or
// wrong-typed upstream fields are coerced to zero values; paging fields fall
// back to the request's own page/per_page and the photo count.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(raw)}
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return normalize(body, page, perPage), nil
}

func normalize(body map[string]any, page, perPage int) *SearchResult {
	rawPhotos, _ := body["photos"].([]any)
	photos := make([]Photo, 0, len(rawPhotos))
	for _, rp := range rawPhotos {
		obj, ok := rp.(map[string]any)
		if !ok {
			continue
		}
		src, _ := obj["src"].(map[string]any)
		photos = append(photos, Photo{
			ID:           asInt64(obj["id"]),
			Photographer: asString(obj["photographer"]),
			URL:          asString(obj["url"]),
			Src: PhotoSource{
				Original: asString(src["original"]),
				Large:    asString(src["large"]),
				Medium:   asString(src["medium"]),
				Small:    asString(src["small"]),
			},
		})
	}

	res := &SearchResult{
		Photos:       photos,
		Page:         page,
		PerPage:      perPage,
		TotalResults: int64(len(photos)),
	}
	if v := asInt64(body["page"]); v > 0 {
		res.Page = int(v)
	}
	if v := asInt64(body["per_page"]); v > 0 {
		res.PerPage = int(v)
	}
	if v := asInt64(body["total_results"]); v > 0 {
		res.TotalResults = v
	}
	return res
}

// upstreamMessage pulls an error string out of a Pexels error body.
func upstreamMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Code
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	default:
		return 0
	}
}
