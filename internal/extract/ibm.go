package extract

import (
	"context"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// IBM's search API: flat queryResult array, postings outside the US are
// dropped before relevance is even considered.
type IBM struct{}

func (IBM) Name() string { return "IBM" }

type ibmResponse struct {
	QueryResult []struct {
		ID             string `json:"id"`
		Title          string `json:"title"`
		OpenDate       string `json:"open_date"`
		PrimaryCountry string `json:"primary_country"`
		URL            string `json:"url"`
	} `json:"queryResult"`
}

func (IBM) Extract(_ context.Context, _ *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	var decoded ibmResponse
	if err := page.DecodeJSON(&decoded); err != nil {
		return nil, err
	}

	relevant := jobs.Records{}
	for _, job := range decoded.QueryResult {
		if job.Title == "" || job.ID == "" {
			continue
		}
		if job.PrimaryCountry != "US" {
			continue
		}
		posted, ok := parseVendorTime(job.OpenDate,
			"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05-0700")
		if !ok {
			continue
		}
		if !params.Rules.Accept(job.Title, posted) {
			continue
		}
		relevant[job.ID] = jobs.Record{
			ID:       job.ID,
			Title:    job.Title,
			Posted:   posted,
			ApplyURL: job.URL,
		}
	}
	return relevant, nil
}
