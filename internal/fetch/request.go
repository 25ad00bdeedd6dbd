package fetch

import (
	"net/http"
	"net/url"
	"strings"
)

// Request is an immutable description of one search call. Mutating
// helpers return copies, so a shared body template is never written
// through.
type Request struct {
	Method string
	URL    string
	Body   map[string]any
	Header http.Header
}

// NewRequest builds a request from a config-supplied body template and
// extra HTTP headers. Both maps are copied.
func NewRequest(method, rawURL string, body map[string]any, header map[string]string) Request {
	req := Request{
		Method: method,
		URL:    rawURL,
		Body:   copyBody(body),
		Header: http.Header{},
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	return req
}

// WithKeywordURL substitutes the keyword into the URL template's {}
// placeholder, query-escaped.
func (r Request) WithKeywordURL(keyword string) Request {
	out := r.clone()
	out.URL = strings.ReplaceAll(r.URL, "{}", url.QueryEscape(keyword))
	return out
}

// WithURL swaps the target URL.
func (r Request) WithURL(rawURL string) Request {
	out := r.clone()
	out.URL = rawURL
	return out
}

// WithBodyField sets one top-level body field.
func (r Request) WithBodyField(key string, value any) Request {
	out := r.clone()
	out.Body[key] = value
	return out
}

// WithNestedBodyField sets body[parent][key], creating the parent map
// if the template lacks it.
func (r Request) WithNestedBodyField(parent, key string, value any) Request {
	out := r.clone()
	inner, _ := out.Body[parent].(map[string]any)
	nested := make(map[string]any, len(inner)+1)
	for k, v := range inner {
		nested[k] = v
	}
	nested[key] = value
	out.Body[parent] = nested
	return out
}

// Offset returns the current integer value of a body field, tolerating
// the float64 that JSON-decoded templates carry.
func (r Request) Offset(key string) int {
	switch v := r.Body[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (r Request) clone() Request {
	out := Request{
		Method: r.Method,
		URL:    r.URL,
		Body:   copyBody(r.Body),
		Header: http.Header{},
	}
	for k, values := range r.Header {
		for _, v := range values {
			out.Header.Add(k, v)
		}
	}
	return out
}

func copyBody(body map[string]any) map[string]any {
	out := make(map[string]any, len(body))
	for k, v := range body {
		out[k] = v
	}
	return out
}
