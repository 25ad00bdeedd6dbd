package extract

import (
	"context"
	"fmt"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// Netflix's posting search: records.postings with timezone-suffixed
// creation timestamps.
type Netflix struct{}

func (Netflix) Name() string { return "Netflix" }

type netflixResponse struct {
	Records struct {
		Postings []struct {
			ExternalID string `json:"external_id"`
			Text       string `json:"text"`
			CreatedAt  string `json:"created_at"`
		} `json:"postings"`
	} `json:"records"`
}

func (Netflix) Extract(_ context.Context, _ *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	var decoded netflixResponse
	if err := page.DecodeJSON(&decoded); err != nil {
		return nil, err
	}

	relevant := jobs.Records{}
	for _, job := range decoded.Records.Postings {
		if job.Text == "" || job.ExternalID == "" {
			continue
		}
		posted, ok := parseVendorTime(job.CreatedAt,
			"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05-0700")
		if !ok {
			continue
		}
		if !params.Rules.Accept(job.Text, posted) {
			continue
		}
		relevant[job.ExternalID] = jobs.Record{
			ID:       job.ExternalID,
			Title:    job.Text,
			Posted:   posted,
			ApplyURL: fmt.Sprintf("https://jobs.netflix.com/jobs/%s", job.ExternalID),
		}
	}
	return relevant, nil
}
