package extract

import (
	"context"
	"fmt"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// Amazon's job search API: flat jobs array, long-form month dates,
// apply link built from the job path.
type Amazon struct{}

func (Amazon) Name() string { return "Amazon" }

type amazonResponse struct {
	Jobs []struct {
		IDICIMS    string `json:"id_icims"`
		Title      string `json:"title"`
		PostedDate string `json:"posted_date"`
		JobPath    string `json:"job_path"`
	} `json:"jobs"`
}

func (Amazon) Extract(_ context.Context, _ *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	var decoded amazonResponse
	if err := page.DecodeJSON(&decoded); err != nil {
		return nil, err
	}

	relevant := jobs.Records{}
	for _, job := range decoded.Jobs {
		if job.Title == "" || job.IDICIMS == "" {
			continue
		}
		posted, ok := parseVendorTime(job.PostedDate, "January 2, 2006")
		if !ok {
			continue
		}
		if !params.Rules.Accept(job.Title, posted) {
			continue
		}
		relevant[job.IDICIMS] = jobs.Record{
			ID:       job.IDICIMS,
			Title:    job.Title,
			Posted:   posted,
			ApplyURL: fmt.Sprintf("https://www.amazon.jobs/%s", job.JobPath),
		}
	}
	return relevant, nil
}
