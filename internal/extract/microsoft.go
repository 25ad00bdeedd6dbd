package extract

import (
	"context"
	"fmt"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

const (
	microsoftPageSize = 20
	microsoftPageCap  = 5
)

// Microsoft's search API: result envelope with a declared total, paged
// by a &pg=N query parameter on the original search URL.
type Microsoft struct{}

func (Microsoft) Name() string { return "Microsoft" }

type microsoftResponse struct {
	OperationResult struct {
		Result struct {
			TotalJobs int `json:"totalJobs"`
			Jobs      []struct {
				JobID       string `json:"jobId"`
				Title       string `json:"title"`
				PostingDate string `json:"postingDate"`
			} `json:"jobs"`
		} `json:"result"`
	} `json:"operationResult"`
}

func (m Microsoft) Extract(ctx context.Context, client *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	extractPage := func(resp *fetch.Response) (jobs.Records, int, error) {
		var decoded microsoftResponse
		if err := resp.DecodeJSON(&decoded); err != nil {
			return nil, 0, err
		}
		result := decoded.OperationResult.Result

		pageJobs := jobs.Records{}
		for _, job := range result.Jobs {
			if job.Title == "" || job.JobID == "" {
				continue
			}
			posted, ok := parseVendorTime(job.PostingDate,
				"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05-0700")
			if !ok {
				continue
			}
			if !params.Rules.Accept(job.Title, posted) {
				continue
			}
			pageJobs[job.JobID] = jobs.Record{
				ID:       job.JobID,
				Title:    job.Title,
				Posted:   posted,
				ApplyURL: fmt.Sprintf("https://careers.microsoft.com/us/en/job/%s", job.JobID),
			}
		}
		return pageJobs, PageCount(result.TotalJobs, microsoftPageSize), nil
	}

	nextRequest := func(pageNo int) fetch.Request {
		return params.Base.WithURL(fmt.Sprintf("%s&pg=%d", params.Base.URL, pageNo))
	}

	return paginate(ctx, client, page, extractPage, nextRequest, microsoftPageCap)
}
