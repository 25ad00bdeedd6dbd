package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

const (
	applePageSize = 20
	applePageCap  = 5
)

// Apple's search page is server-rendered HTML with the real payload
// dumped into an inline script as a window.APP_STATE assignment. Later
// pages come from the fullUrl the page itself reports, plus &page=N.
type Apple struct{}

func (Apple) Name() string { return "Apple" }

type appleState struct {
	TotalRecords  int    `json:"totalRecords"`
	FullURL       string `json:"fullUrl"`
	SearchResults []struct {
		PositionID              string `json:"positionId"`
		PostingTitle            string `json:"postingTitle"`
		PostingDate             string `json:"postingDate"`
		TransformedPostingTitle string `json:"transformedPostingTitle"`
		Team                    struct {
			TeamCode string `json:"teamCode"`
		} `json:"team"`
	} `json:"searchResults"`
}

func (a Apple) Extract(ctx context.Context, client *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	// Pagination follows the fullUrl reported by the latest page, not
	// the configured search URL.
	var currentURL string

	extractPage := func(resp *fetch.Response) (jobs.Records, int, error) {
		state, err := appleStateFromHTML(resp.Body)
		if err != nil {
			return nil, 0, err
		}
		if state == nil {
			return jobs.Records{}, 0, nil
		}
		currentURL = state.FullURL

		pageJobs := jobs.Records{}
		for _, job := range state.SearchResults {
			title := cleanText(job.PostingTitle)
			if title == "" || job.PositionID == "" {
				continue
			}
			posted, ok := parseVendorTime(job.PostingDate, "Jan 2, 2006")
			if !ok {
				continue
			}
			if !params.Rules.Accept(title, posted) {
				continue
			}
			pageJobs[job.PositionID] = jobs.Record{
				ID:     job.PositionID,
				Title:  title,
				Posted: posted,
				ApplyURL: fmt.Sprintf("https://jobs.apple.com/en-us/details/%s/%s?team=%s",
					job.PositionID, job.TransformedPostingTitle, job.Team.TeamCode),
			}
		}
		return pageJobs, PageCount(state.TotalRecords, applePageSize), nil
	}

	nextRequest := func(pageNo int) fetch.Request {
		return params.Base.WithURL(fmt.Sprintf("%s&page=%d", currentURL, pageNo))
	}

	return paginate(ctx, client, page, extractPage, nextRequest, applePageCap)
}

// appleStateFromHTML locates the APP_STATE script block and parses the
// assignment's right-hand side as JSON. A page without the block (a
// block or an empty shell) yields nil, not an error.
func appleStateFromHTML(body []byte) (*appleState, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse apple page: %w", err)
	}

	var raw string
	doc.Find(`script[type="text/javascript"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, "window.APP_STATE") {
			raw = text
			return false
		}
		return true
	})
	if raw == "" {
		return nil, nil
	}

	_, rhs, found := strings.Cut(raw, "=")
	if !found {
		return nil, nil
	}
	rhs = strings.TrimSuffix(strings.TrimSpace(rhs), ";")

	var state appleState
	if err := json.Unmarshal([]byte(rhs), &state); err != nil {
		return nil, fmt.Errorf("decode apple app state: %w", err)
	}
	return &state, nil
}
