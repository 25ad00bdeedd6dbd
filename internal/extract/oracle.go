package extract

import (
	"context"
	"fmt"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// Oracle's recruiting cloud API: requisition list nested inside the
// first element of an items array.
type Oracle struct{}

func (Oracle) Name() string { return "Oracle" }

type oracleResponse struct {
	Items []struct {
		RequisitionList []struct {
			ID         string `json:"Id"`
			Title      string `json:"Title"`
			PostedDate string `json:"PostedDate"`
		} `json:"requisitionList"`
	} `json:"items"`
}

func (Oracle) Extract(_ context.Context, _ *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	var decoded oracleResponse
	if err := page.DecodeJSON(&decoded); err != nil {
		return nil, err
	}
	if len(decoded.Items) == 0 {
		return jobs.Records{}, nil
	}

	relevant := jobs.Records{}
	for _, job := range decoded.Items[0].RequisitionList {
		if job.Title == "" || job.ID == "" {
			continue
		}
		posted, ok := parseVendorTime(job.PostedDate,
			"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05-0700", "2006-01-02")
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
			ApplyURL: fmt.Sprintf("https://careers.oracle.com/jobs/#en/sites/jobsearch/job/%s", job.ID),
		}
	}
	return relevant, nil
}
