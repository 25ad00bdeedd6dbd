// Run settings: .env for secrets (webhook URLs, Telegram), YAML for
// tunables, CSV tables for the company roster.

package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Env variable names for the notification channels.
const (
	EnvJobWebhook    = "SLACK_JOB_WEBHOOK"
	EnvErrorWebhook  = "SLACK_ERROR_WEBHOOK"
	EnvDeployWebhook = "SLACK_DEPLOY_WEBHOOK"
	EnvTelegramToken = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChat  = "TELEGRAM_CHAT_ID"
)

// Settings are the run tunables. The match threshold and recency
// window ship with the values the system has always used, but they are
// knobs here, not literals in the filter.
type Settings struct {
	MatchThreshold     int      `yaml:"match_threshold"`
	RecencyDays        int      `yaml:"recency_days"`
	HTTPTimeoutSeconds int      `yaml:"http_timeout_seconds"`
	DataDir            string   `yaml:"data_dir"`
	IgnoreTerms        []string `yaml:"ignore_terms"`

	JobWebhook     string
	ErrorWebhook   string
	DeployWebhook  string
	TelegramToken  string
	TelegramChatID int64
}

// LoadSettings reads settings.yaml (a missing file means defaults) and
// then the environment for the notification channels.
func LoadSettings(path string) *Settings {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: could not read %s: %v", path, err)
	} else if err := yaml.Unmarshal(data, s); err != nil {
		log.Fatalf("Error parsing %s: %v", path, err)
	}

	if s.MatchThreshold == 0 {
		s.MatchThreshold = 50
	}
	if s.RecencyDays == 0 {
		s.RecencyDays = 7
	}
	if s.HTTPTimeoutSeconds == 0 {
		s.HTTPTimeoutSeconds = 20
	}
	if s.DataDir == "" {
		s.DataDir = "data"
	}
	if len(s.IgnoreTerms) == 0 {
		s.IgnoreTerms = []string{"Senior", "Sr.", "Staff", "Principal", "Manager", "Director"}
	}

	s.JobWebhook = os.Getenv(EnvJobWebhook)
	s.ErrorWebhook = os.Getenv(EnvErrorWebhook)
	s.DeployWebhook = os.Getenv(EnvDeployWebhook)
	s.TelegramToken = os.Getenv(EnvTelegramToken)
	if chat := os.Getenv(EnvTelegramChat); chat != "" {
		id, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			log.Fatalf("Invalid %s: %v", EnvTelegramChat, err)
		}
		s.TelegramChatID = id
	}

	if s.JobWebhook == "" {
		log.Printf("Warning: %s not set, job notifications will fail", EnvJobWebhook)
	}
	return s
}
