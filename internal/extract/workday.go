package extract

import (
	"context"
	"fmt"
	"strings"

	"go-jobs-notifier/internal/dateparse"
	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

const (
	workdayPageSize = 20
	workdayPageCap  = 5
)

// Workday backs dozens of employer boards with an identical POST API:
// a declared total, jobPostings with relative "Posted N Days Ago"
// phrases, and offset-based pagination in the request body. Only the
// apply-link prefix differs per employer.
type Workday struct {
	Company     string
	ApplyPrefix string
}

// NewWorkday builds the board adapter for one employer.
func NewWorkday(company, applyPrefix string) Workday {
	return Workday{Company: company, ApplyPrefix: applyPrefix}
}

func (w Workday) Name() string { return w.Company }

type workdayResponse struct {
	Total       int `json:"total"`
	JobPostings []struct {
		Title        string   `json:"title"`
		ExternalPath string   `json:"externalPath"`
		PostedOn     string   `json:"postedOn"`
		BulletFields []string `json:"bulletFields"`
	} `json:"jobPostings"`
}

func (w Workday) Extract(ctx context.Context, client *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	extractPage := func(resp *fetch.Response) (jobs.Records, int, error) {
		var decoded workdayResponse
		if err := resp.DecodeJSON(&decoded); err != nil {
			return nil, 0, err
		}

		pageJobs := jobs.Records{}
		for _, job := range decoded.JobPostings {
			if job.Title == "" || len(job.BulletFields) == 0 {
				continue
			}
			jobID := job.BulletFields[0]
			posted, err := dateparse.ParsePast(workdayPostedPhrase(job.PostedOn), params.Rules.Now)
			if err != nil {
				// "Posted 30+ Days Ago" style strings that survive the
				// cleanup but still fail to parse mean the date cannot
				// be determined; skip rather than guess.
				continue
			}
			if !params.Rules.Accept(job.Title, posted) {
				continue
			}
			pageJobs[jobID] = jobs.Record{
				ID:       jobID,
				Title:    job.Title,
				Posted:   posted,
				ApplyURL: fmt.Sprintf("%s%s", w.ApplyPrefix, job.ExternalPath),
			}
		}
		return pageJobs, PageCount(decoded.Total, workdayPageSize), nil
	}

	nextRequest := func(pageNo int) fetch.Request {
		return params.Base.WithBodyField("offset", (pageNo-1)*workdayPageSize)
	}

	return paginate(ctx, client, page, extractPage, nextRequest, workdayPageCap)
}

// workdayPostedPhrase strips the "Posted " prefix and the "+" from
// phrases like "Posted 30+ Days Ago" so the date parser sees "30 days
// ago".
func workdayPostedPhrase(postedOn string) string {
	phrase := strings.ReplaceAll(postedOn, "Posted ", "")
	phrase = strings.ReplaceAll(phrase, "+", "")
	return strings.ToLower(phrase)
}
