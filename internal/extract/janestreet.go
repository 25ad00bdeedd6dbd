package extract

import (
	"context"
	"fmt"
	"strconv"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// Jane Street's positions feed: a bare top-level array with no posting
// date at all, so anything matching counts as discovered today. Only
// NYC positions are kept.
type JaneStreet struct{}

func (JaneStreet) Name() string { return "JaneStreet" }

type janeStreetPosition struct {
	ID       int64  `json:"id"`
	Position string `json:"position"`
	City     string `json:"city"`
}

func (JaneStreet) Extract(_ context.Context, _ *fetch.Client, page *fetch.Response, params Params) (jobs.Records, error) {
	var decoded []janeStreetPosition
	if err := page.DecodeJSON(&decoded); err != nil {
		return nil, err
	}

	relevant := jobs.Records{}
	for _, job := range decoded {
		if job.Position == "" || job.ID == 0 {
			continue
		}
		if job.City != "NYC" {
			continue
		}
		if !params.Rules.MatchesTitle(job.Position) {
			continue
		}
		id := strconv.FormatInt(job.ID, 10)
		relevant[id] = jobs.Record{
			ID:       id,
			Title:    job.Position,
			Posted:   params.Rules.Now,
			ApplyURL: fmt.Sprintf("https://www.janestreet.com/join-jane-street/position/%s", id),
		}
	}
	return relevant, nil
}
