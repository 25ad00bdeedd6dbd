package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/filter"
)

func itoa(n int) string { return strconv.Itoa(n) }

// pageServer serves one JSON body per ?page=N and hands out matching
// requests, so pagination tests stay short.
type pageServer struct {
	srv    *httptest.Server
	client *fetch.Client
}

func newPageServer(t *testing.T, body func(page int) string) *pageServer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body(page))
	}))
	return &pageServer{
		srv:    srv,
		client: fetch.NewClient(5 * time.Second),
	}
}

func (s *pageServer) request(page int) fetch.Request {
	return fetch.NewRequest(http.MethodGet, fmt.Sprintf("%s/?page=%d", s.srv.URL, page), nil, nil)
}

func (s *pageServer) fetch(ctx context.Context, page int) (*fetch.Response, error) {
	return s.client.Do(ctx, s.request(page))
}

func (s *pageServer) close() { s.srv.Close() }

// testParams builds Params with a fixed clock and forgiving rules.
func testParams(keyword string, now time.Time, base fetch.Request) Params {
	return Params{
		Base:  base,
		Rules: filter.NewRules(keyword, []string{"Senior"}, filter.DefaultThreshold, filter.DefaultRecencyDays, now),
	}
}

func jsonResponse(body string) *fetch.Response {
	return &fetch.Response{ContentType: "application/json", Body: []byte(body)}
}

func htmlResponse(body string) *fetch.Response {
	return &fetch.Response{ContentType: "text/html; charset=utf-8", Body: []byte(body)}
}
