package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobs-notifier/internal/jobs"
)

// Telegram mirrors notifications to a chat when a bot token and chat
// id are configured. Optional; the Slack webhooks stay authoritative.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram connects the bot.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) JobFound(company string, rec jobs.Record) error {
	text := fmt.Sprintf(
		"<b>%s</b>\n%s\nPosted %s\n<a href=\"%s\">Apply</a>",
		company, rec.Title, rec.Posted.Format("01/02/2006"), rec.ApplyURL)
	return t.send(text)
}

func (t *Telegram) Error(message string) error {
	return t.send(fmt.Sprintf("<b>Error</b>\n%s", message))
}

func (t *Telegram) Deployment(kind, message string) error {
	return t.send(fmt.Sprintf("%s - %s", kind, message))
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.api.Send(msg)
	return err
}
