package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"go-jobs-notifier/internal/jobs"
)

// Webhooks holds the three Slack incoming-webhook URLs: new-job
// notices, error reports, and deployment lifecycle messages.
type Webhooks struct {
	Jobs   string
	Errors string
	Deploy string
}

// Slack posts {"text": ...} payloads to incoming webhooks.
type Slack struct {
	hooks Webhooks
	http  *http.Client
}

// NewSlack builds the webhook notifier.
func NewSlack(hooks Webhooks, timeout time.Duration) *Slack {
	return &Slack{
		hooks: hooks,
		http:  &http.Client{Timeout: timeout},
	}
}

// JobFound announces one newly discovered posting.
func (s *Slack) JobFound(company string, rec jobs.Record) error {
	text := fmt.Sprintf(
		"Company Name: *%s*\nJob Id: *%s*\nJob Title: *%s*\nPosted Date: *%s*\nApply: <%s>\n----------\n",
		company, rec.ID, rec.Title, rec.Posted.Format("01/02/2006"), rec.ApplyURL)
	return s.post(s.hooks.Jobs, text)
}

// Error reports a failure to the error channel.
func (s *Slack) Error(message string) error {
	return s.post(s.hooks.Errors, fmt.Sprintf("Error Message: ERROR - %s", message))
}

// Deployment reports run lifecycle events (start, finish).
func (s *Slack) Deployment(kind, message string) error {
	return s.post(s.hooks.Deploy, fmt.Sprintf("Deployment Message: %s - %s", kind, message))
}

func (s *Slack) post(webhook, text string) error {
	if webhook == "" {
		return fmt.Errorf("webhook URL not configured")
	}
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	resp, err := s.http.Post(webhook, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("Notification sent with response status code: %d", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notification rejected: status %d", resp.StatusCode)
	}
	return nil
}
