// Outbound notification channels. Slack-style webhooks are the
// primary surface; Telegram can mirror job notices when configured.

package notify

import (
	"log"

	"go-jobs-notifier/internal/jobs"
)

// Notifier delivers the three kinds of run messages.
type Notifier interface {
	JobFound(company string, rec jobs.Record) error
	Error(message string) error
	Deployment(kind, message string) error
}

// Multi fans every message out to all channels. Delivery failures on
// secondary channels are logged, not propagated; the first channel's
// error wins.
type Multi []Notifier

func (m Multi) JobFound(company string, rec jobs.Record) error {
	var first error
	for i, n := range m {
		if err := n.JobFound(company, rec); err != nil {
			if i == 0 {
				first = err
			} else {
				log.Printf("secondary notifier failed: %v", err)
			}
		}
	}
	return first
}

func (m Multi) Error(message string) error {
	var first error
	for i, n := range m {
		if err := n.Error(message); err != nil {
			if i == 0 {
				first = err
			} else {
				log.Printf("secondary notifier failed: %v", err)
			}
		}
	}
	return first
}

func (m Multi) Deployment(kind, message string) error {
	var first error
	for i, n := range m {
		if err := n.Deployment(kind, message); err != nil {
			if i == 0 {
				first = err
			} else {
				log.Printf("secondary notifier failed: %v", err)
			}
		}
	}
	return first
}
