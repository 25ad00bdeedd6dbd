package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// GreenhouseJSON handles greenhouse's board API: a jobs array with
// absolute apply URLs and an updated_at timestamp. US-only when the
// posting carries a location name.
type GreenhouseJSON struct {
	Company string
}

// NewGreenhouseJSON builds the API adapter for one employer board.
func NewGreenhouseJSON(company string) GreenhouseJSON {
	return GreenhouseJSON{Company: company}
}

func (g GreenhouseJSON) Name() string { return g.Company }

type greenhouseResponse struct {
	Jobs []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		UpdatedAt   string `json:"updated_at"`
		AbsoluteURL string `json:"absolute_url"`
		Location    struct {
			Name string `json:"name"`
		} `json:"location"`
	} `json:"jobs"`
}

func (g GreenhouseJSON) Extract(_ context.Context, _ *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	var decoded greenhouseResponse
	if err := page.DecodeJSON(&decoded); err != nil {
		return nil, err
	}

	relevant := jobs.Records{}
	for _, job := range decoded.Jobs {
		if job.Title == "" || job.ID == 0 {
			continue
		}
		if job.Location.Name != "" && !usLocation(job.Location.Name) {
			continue
		}
		posted, ok := parseVendorTime(job.UpdatedAt,
			"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05-0700")
		if !ok {
			continue
		}
		if !params.Rules.Accept(job.Title, posted) {
			continue
		}
		id := fmt.Sprintf("%d", job.ID)
		relevant[id] = jobs.Record{
			ID:       id,
			Title:    job.Title,
			Posted:   posted,
			ApplyURL: job.AbsoluteURL,
		}
	}
	return relevant, nil
}

// greenhouseDetailCap bounds per-job detail requests on template
// boards; each opening costs one extra fetch.
const greenhouseDetailCap = 20

// GreenhouseBoard handles greenhouse's server-rendered template
// boards: openings grouped under department sections, each anchor
// pointing at a detail page. The listing carries no dates, so every
// title that survives the relevance gate costs one detail fetch to
// read the structured-data block for datePosted and location.
type GreenhouseBoard struct {
	Company string
	BaseURL string
}

// NewGreenhouseBoard builds the template-board adapter for one
// employer. BaseURL resolves relative opening hrefs.
func NewGreenhouseBoard(company, baseURL string) GreenhouseBoard {
	return GreenhouseBoard{Company: company, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func (g GreenhouseBoard) Name() string { return g.Company }

type boardOpening struct {
	id    string
	title string
	url   string
}

func (g GreenhouseBoard) Extract(ctx context.Context, client *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	openings, err := g.openingsFromHTML(page.Body)
	if err != nil {
		return nil, err
	}

	relevant := jobs.Records{}
	fetched := 0
	for _, opening := range openings {
		if !params.Rules.MatchesTitle(opening.title) {
			continue
		}
		if fetched >= greenhouseDetailCap {
			break
		}
		fetched++

		detail, err := client.Do(ctx, params.Base.WithURL(opening.url))
		if err != nil || detail.Empty() {
			// Listing data alone has no date; without the detail page
			// the posting's recency cannot be determined.
			continue
		}
		posted, location, ok := postingDetail(detail.Body)
		if !ok {
			continue
		}
		if location != "" && !usLocation(location) {
			continue
		}
		if !params.Rules.Recent(posted) {
			continue
		}
		relevant[opening.id] = jobs.Record{
			ID:       opening.id,
			Title:    opening.title,
			Posted:   posted,
			ApplyURL: opening.url,
		}
	}
	return relevant, nil
}

// openingsFromHTML walks the board's section/department groupings and
// collects id/title/url triples from the opening anchors.
func (g GreenhouseBoard) openingsFromHTML(body []byte) ([]boardOpening, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse board page: %w", err)
	}

	var openings []boardOpening
	doc.Find("section.level-0 div.opening a, div.opening a").Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		if !exists {
			return
		}
		title := cleanText(a.Text())
		if title == "" {
			return
		}
		id := href[strings.LastIndex(href, "/")+1:]
		if id == "" {
			return
		}
		url := href
		if strings.HasPrefix(href, "/") {
			url = g.BaseURL + href
		}
		openings = append(openings, boardOpening{id: id, title: title, url: url})
	})
	return openings, nil
}

type jobPostingLD struct {
	DatePosted  string `json:"datePosted"`
	JobLocation struct {
		Address struct {
			AddressLocality string `json:"addressLocality"`
			AddressCountry  string `json:"addressCountry"`
		} `json:"address"`
	} `json:"jobLocation"`
}

// postingDetail reads datePosted and the location out of the detail
// page's application/ld+json block.
func postingDetail(body []byte) (posted time.Time, location string, ok bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return time.Time{}, "", false
	}

	var ld jobPostingLD
	found := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var candidate jobPostingLD
		if err := json.Unmarshal([]byte(s.Text()), &candidate); err != nil {
			return true
		}
		if candidate.DatePosted == "" {
			return true
		}
		ld = candidate
		found = true
		return false
	})
	if !found {
		return time.Time{}, "", false
	}

	ts, parsed := parseVendorTime(ld.DatePosted,
		"2006-01-02", "2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05-0700")
	if !parsed {
		return time.Time{}, "", false
	}

	address := ld.JobLocation.Address
	location = strings.TrimSpace(strings.Join(nonEmpty(address.AddressLocality, address.AddressCountry), ", "))
	return ts, location, true
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
