package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"go-jobs-notifier/internal/config"
	"go-jobs-notifier/internal/extract"
	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/notify"
	"go-jobs-notifier/internal/runner"
	"go-jobs-notifier/internal/state"
)

func main() {
	setupLogging()
	_ = godotenv.Load()

	settings := config.LoadSettings("settings.yaml")
	log.Printf("Config loaded. Data dir: %s, threshold: %d, recency: %d days",
		settings.DataDir, settings.MatchThreshold, settings.RecencyDays)

	notifier := buildNotifier(settings)

	companies, err := config.LoadCompanies(settings.DataDir)
	if err != nil {
		log.Printf("Error occurred: %v", err)
		if nerr := notifier.Error(fmt.Sprintf("config load failed: %v", err)); nerr != nil {
			log.Printf("error notification failed: %v", nerr)
		}
		os.Exit(1)
	}

	known, err := state.Load(filepath.Join(settings.DataDir, config.KnownJobsFile))
	if err != nil {
		log.Printf("Error occurred: %v", err)
		if nerr := notifier.Error(fmt.Sprintf("known jobs load failed: %v", err)); nerr != nil {
			log.Printf("error notification failed: %v", nerr)
		}
		os.Exit(1)
	}

	r := &runner.Runner{
		Settings: settings,
		Client:   fetch.NewClient(time.Duration(settings.HTTPTimeoutSeconds) * time.Second),
		Table:    extract.Registry(),
		Notifier: notifier,
		Known:    known,
	}

	runErr := r.Run(context.Background(), companies)

	// Whatever happened, keep what this run learned.
	if err := known.Save(); err != nil {
		log.Printf("Failed to save known jobs: %v", err)
	}

	if runErr != nil {
		log.Printf("Error occurred: %v", runErr)
		stamp := time.Now().Format("02/01/2006 15:04:05")
		if nerr := notifier.Error(fmt.Sprintf("%s - %v", stamp, runErr)); nerr != nil {
			log.Printf("error notification failed: %v", nerr)
		}
		os.Exit(1)
	}
}

// buildNotifier wires the Slack webhooks and, when configured, a
// Telegram mirror.
func buildNotifier(settings *config.Settings) notify.Notifier {
	timeout := time.Duration(settings.HTTPTimeoutSeconds) * time.Second
	slack := notify.NewSlack(notify.Webhooks{
		Jobs:   settings.JobWebhook,
		Errors: settings.ErrorWebhook,
		Deploy: settings.DeployWebhook,
	}, timeout)

	if settings.TelegramToken == "" || settings.TelegramChatID == 0 {
		return slack
	}
	telegram, err := notify.NewTelegram(settings.TelegramToken, settings.TelegramChatID)
	if err != nil {
		log.Printf("Telegram mirror disabled: %v", err)
		return slack
	}
	log.Printf("Telegram mirror enabled.")
	return notify.Multi{slack, telegram}
}

// setupLogging mirrors everything to a per-run log file under logs/.
func setupLogging() {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
		return
	}
	name := filepath.Join("logs", fmt.Sprintf("run-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
}
