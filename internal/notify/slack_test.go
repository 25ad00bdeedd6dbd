package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-jobs-notifier/internal/jobs"
)

func TestSlackPayloads(t *testing.T) {
	var got []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		got = append(got, payload)
	}))
	defer srv.Close()

	slack := NewSlack(Webhooks{Jobs: srv.URL, Errors: srv.URL, Deploy: srv.URL}, 5*time.Second)

	rec := jobs.Record{
		ID:       "amzn-1",
		Title:    "Software Engineer",
		Posted:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		ApplyURL: "https://www.amazon.jobs/en/jobs/amzn-1",
	}
	assert.NoError(t, slack.JobFound("Amazon", rec))
	assert.NoError(t, slack.Error("career page is down"))
	assert.NoError(t, slack.Deployment("Info", "starting"))

	assert.Len(t, got, 3)
	assert.Contains(t, got[0]["text"], "Company Name: *Amazon*")
	assert.Contains(t, got[0]["text"], "Posted Date: *03/12/2026*")
	assert.Contains(t, got[0]["text"], "<https://www.amazon.jobs/en/jobs/amzn-1>")
	assert.Contains(t, got[1]["text"], "Error Message: ERROR - career page is down")
	assert.Contains(t, got[2]["text"], "Deployment Message: Info - starting")
}

func TestSlackUnconfiguredWebhook(t *testing.T) {
	slack := NewSlack(Webhooks{}, time.Second)
	assert.Error(t, slack.Error("anything"))
}
