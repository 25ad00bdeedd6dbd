package extract

import (
	"context"
	"strconv"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// Tencent's recruit API: PascalCase fields, numeric post ids, month
// dates without a space after the comma.
type Tencent struct{}

func (Tencent) Name() string { return "Tencent" }

type tencentResponse struct {
	Data struct {
		Posts []struct {
			RecruitPostID   int64  `json:"RecruitPostId"`
			RecruitPostName string `json:"RecruitPostName"`
			LastUpdateTime  string `json:"LastUpdateTime"`
			PostURL         string `json:"PostURL"`
		} `json:"Posts"`
	} `json:"Data"`
}

func (Tencent) Extract(_ context.Context, _ *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	var decoded tencentResponse
	if err := page.DecodeJSON(&decoded); err != nil {
		return nil, err
	}

	relevant := jobs.Records{}
	for _, job := range decoded.Data.Posts {
		if job.RecruitPostName == "" || job.RecruitPostID == 0 {
			continue
		}
		posted, ok := parseVendorTime(job.LastUpdateTime, "January 2,2006", "January 2, 2006")
		if !ok {
			continue
		}
		if !params.Rules.Accept(job.RecruitPostName, posted) {
			continue
		}
		id := strconv.FormatInt(job.RecruitPostID, 10)
		relevant[id] = jobs.Record{
			ID:       id,
			Title:    job.RecruitPostName,
			Posted:   posted,
			ApplyURL: job.PostURL,
		}
	}
	return relevant, nil
}
