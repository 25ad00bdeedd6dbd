// Thin HTTP layer for career-page endpoints. One request in flight at a
// time, one best-effort attempt per endpoint, no retries.

package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Client issues search requests against vendor career pages.
type Client struct {
	http *http.Client
}

// NewClient builds a client with the given request timeout. A hung
// vendor otherwise stalls the whole run.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Do performs one search request and sniffs the response body. A
// text/html content type yields a markup response, anything else is
// treated as JSON.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var httpReq *http.Request
	var err error

	switch req.Method {
	case http.MethodPost:
		payload, merr := json.Marshal(req.Body)
		if merr != nil {
			return nil, fmt.Errorf("encode request body: %w", merr)
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(payload))
		if err == nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
	default:
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.URL, err)
	}
	log.Printf("Data fetched from search with response status code: %d", resp.StatusCode)

	return &Response{
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// Response is one raw page response, owned by the adapter that asked
// for it and never persisted.
type Response struct {
	ContentType string
	Body        []byte
}

// IsHTML reports whether the body should be treated as markup rather
// than JSON.
func (r *Response) IsHTML() bool {
	return strings.Contains(r.ContentType, "text/html")
}

// Empty reports whether there is nothing to extract from.
func (r *Response) Empty() bool {
	return r == nil || len(bytes.TrimSpace(r.Body)) == 0
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
