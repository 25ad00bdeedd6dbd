// Per-vendor extraction of normalized job records from career-page
// responses.
//
// Every career-page backend speaks its own dialect: different JSON
// paths, different date formats, JSON buried in script tags, or plain
// server-rendered boards. Each adapter here owns exactly one dialect
// and produces the same jobs.Records shape.

package extract

import (
	"context"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/filter"
	"go-jobs-notifier/internal/jobs"
)

// Params carries everything an adapter needs beyond the page itself:
// the request that produced the page (pagination mutates copies of it)
// and the relevance rules for the current keyword.
type Params struct {
	Base  fetch.Request
	Rules filter.Rules
}

// Extractor turns one raw page response into normalized records for
// the current keyword. Implementations issue follow-up requests through
// client only for pagination or per-job detail lookups.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, client *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error)
}

// cleanText normalizes text pulled out of HTML: NFKC fold (turns NBSP
// and friends into plain spaces), drops zero-width marks, trims.
func cleanText(s string) string {
	t := transform.Chain(norm.NFKC, runes.Remove(runes.In(unicode.Cf)))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(out)
}

// parseVendorTime tries each layout in turn. Vendors are consistent
// individually but disagree with each other down to the comma.
func parseVendorTime(value string, layouts ...string) (time.Time, bool) {
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
