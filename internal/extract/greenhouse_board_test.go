package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-jobs-notifier/internal/fetch"
)

func TestGreenhouseBoardExtract(t *testing.T) {
	fresh := testNow.AddDate(0, 0, -2).Format("2006-01-02")
	stale := testNow.AddDate(0, 0, -40).Format("2006-01-02")

	detailPages := map[string]string{
		"/acme/jobs/9001": detailPage(fresh, "New York", "US"),
		"/acme/jobs/9002": detailPage(stale, "New York", "US"),
		"/acme/jobs/9003": detailPage(fresh, "Berlin", "DE"),
	}
	detailHits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := detailPages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		detailHits++
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, page)
	}))
	defer srv.Close()

	listing := `<html><body>
		<section class="level-0">
			<h3>Engineering</h3>
			<div class="opening"><a href="/acme/jobs/9001">Software&nbsp;Engineer</a></div>
			<div class="opening"><a href="/acme/jobs/9002">Software Engineer</a></div>
			<div class="opening"><a href="/acme/jobs/9003">Software Engineer</a></div>
			<div class="opening"><a href="/acme/jobs/9004">Head of People Operations</a></div>
		</section>
	</body></html>`

	board := NewGreenhouseBoard("Acme", srv.URL)
	params := testParams("Software Engineer", testNow, fetch.NewRequest(http.MethodGet, srv.URL, nil, nil))

	recs, err := board.Extract(context.Background(), fetch.NewClient(5*time.Second), htmlResponse(listing), params)
	assert.NoError(t, err)

	assert.Len(t, recs, 1, "stale and non-US detail pages dropped")
	rec, ok := recs["9001"]
	assert.True(t, ok)
	assert.Equal(t, "Software Engineer", rec.Title, "NBSP normalized out of the anchor text")
	assert.Equal(t, srv.URL+"/acme/jobs/9001", rec.ApplyURL)

	assert.Equal(t, 3, detailHits, "irrelevant title never costs a detail fetch")
}

func detailPage(datePosted, locality, country string) string {
	return fmt.Sprintf(`<html><head>
		<script type="application/ld+json">
			{"@type":"JobPosting","datePosted":"%s","jobLocation":{"address":{"addressLocality":"%s","addressCountry":"%s"}}}
		</script>
	</head><body></body></html>`, datePosted, locality, country)
}
