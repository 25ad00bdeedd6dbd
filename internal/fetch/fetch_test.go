package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDoSniffsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"jobs":[]}`)
		case "/html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			io.WriteString(w, "<html></html>")
		}
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)

	resp, err := client.Do(context.Background(), NewRequest(http.MethodGet, srv.URL+"/json", nil, nil))
	assert.NoError(t, err)
	assert.False(t, resp.IsHTML())

	var decoded struct {
		Jobs []any `json:"jobs"`
	}
	assert.NoError(t, resp.DecodeJSON(&decoded))

	resp, err = client.Do(context.Background(), NewRequest(http.MethodGet, srv.URL+"/html", nil, nil))
	assert.NoError(t, err)
	assert.True(t, resp.IsHTML())
}

func TestDoPostSendsBodyAndHeaders(t *testing.T) {
	var gotBody map[string]any
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Api-Key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	req := NewRequest(http.MethodPost, srv.URL,
		map[string]any{"searchText": "engineer", "offset": 0},
		map[string]string{"X-Api-Key": "abc"})

	_, err := client.Do(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "abc", gotHeader)
	assert.Equal(t, "engineer", gotBody["searchText"])
}

func TestRequestBuildersDoNotMutateOriginal(t *testing.T) {
	template := map[string]any{"searchText": "", "offset": float64(0)}
	req := NewRequest(http.MethodPost, "https://example.com/search?q={}", template, nil)

	withKeyword := req.WithKeywordURL("software engineer")
	assert.Contains(t, withKeyword.URL, "software+engineer")
	assert.Contains(t, req.URL, "{}")

	paged := req.WithBodyField("offset", 20)
	assert.Equal(t, 20, paged.Offset("offset"))
	assert.Equal(t, 0, req.Offset("offset"))
	assert.Equal(t, float64(0), template["offset"])

	nested := req.WithNestedBodyField("params", "query", "engineer")
	inner, ok := nested.Body["params"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "engineer", inner["query"])
	_, exists := req.Body["params"]
	assert.False(t, exists)
}
