package extract

import (
	"context"
	"strings"
	"time"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// Lever hosted boards share one JSON feed (?mode=json): a bare array
// of postings with epoch-millisecond creation times and a location
// under categories. Postings that carry a location must look US-based;
// a missing location is not filtered.
type Lever struct {
	Company string
}

// NewLever builds the board adapter for one employer.
func NewLever(company string) Lever {
	return Lever{Company: company}
}

func (l Lever) Name() string { return l.Company }

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"`
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
}

func (l Lever) Extract(_ context.Context, _ *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	var postings []leverPosting
	if err := page.DecodeJSON(&postings); err != nil {
		return nil, err
	}

	relevant := jobs.Records{}
	for _, job := range postings {
		if job.Text == "" || job.ID == "" {
			continue
		}
		if job.Categories.Location != "" && !usLocation(job.Categories.Location) {
			continue
		}
		posted := time.UnixMilli(job.CreatedAt)
		if !params.Rules.Accept(job.Text, posted) {
			continue
		}
		relevant[job.ID] = jobs.Record{
			ID:       job.ID,
			Title:    job.Text,
			Posted:   posted,
			ApplyURL: job.HostedURL,
		}
	}
	return relevant, nil
}

// usLocation matches the location strings Lever and greenhouse boards
// use for US postings.
func usLocation(location string) bool {
	if strings.Contains(location, "US") || strings.Contains(location, "United States") {
		return true
	}
	lower := strings.ToLower(location)
	return strings.Contains(lower, "remote - us") || strings.Contains(lower, "remote (us")
}
