package notifications

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"solscreener/internal/airdrop"
	"solscreener/internal/config"
	"solscreener/internal/monitors"
	"solscreener/internal/safety"
	"solscreener/internal/scan"
	"solscreener/internal/scoring"
	"solscreener/internal/store"
)

const userAgent = "solscreener/1.0"

// Candidate is one screened token ready for delivery.
type Candidate struct {
	Project     scan.Project
	Safety      safety.Report
	Expectation scoring.Expectation
	// PreviousScore is set when the mint was scored before.
	PreviousScore *float64
}

// ScreeningReport is the payload of one screening cycle.
type ScreeningReport struct {
	SessionID  string
	StartedAt  time.Time
	Scanned    int
	Candidates []Candidate
}

// DailyReport is the payload of the daily summary.
type DailyReport struct {
	Airdrops []airdrop.Airdrop
	Launches []monitors.Alert
	Stats    store.Stats
}

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyScreeningResults(ctx context.Context, report ScreeningReport) error
	NotifyRealtimeAlerts(ctx context.Context, alerts []monitors.Alert) error
	NotifyDailyReport(ctx context.Context, report DailyReport) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds the notification fan-out from config. Each configured
// sink (Discord webhook, Telegram bot, ntfy topic) is attached; with none
// configured a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	var sinks []Service
	if url := strings.TrimSpace(cfg.Notifications.DiscordWebhookURL); url != "" {
		sinks = append(sinks, &discordService{webhookURL: url, client: client})
	}
	token := strings.TrimSpace(cfg.Notifications.TelegramBotToken)
	chatID := strings.TrimSpace(cfg.Notifications.TelegramChatID)
	if token != "" && chatID != "" {
		sinks = append(sinks, &telegramService{
			endpoint: "https://api.telegram.org/bot" + token + "/sendMessage",
			chatID:   chatID,
			client:   client,
		})
	}
	if topic := strings.TrimSpace(cfg.Notifications.NtfyTopic); topic != "" {
		sinks = append(sinks, &ntfyService{endpoint: topic, client: client})
	}

	switch len(sinks) {
	case 0:
		return noopService{}
	case 1:
		return sinks[0]
	default:
		return hub{sinks: sinks}
	}
}

// hub fans every event out to all sinks. A failing sink never blocks the
// others; errors are joined for the caller to log.
type hub struct {
	sinks []Service
}

func (h hub) NotifyScreeningResults(ctx context.Context, report ScreeningReport) error {
	return h.each(func(s Service) error { return s.NotifyScreeningResults(ctx, report) })
}

func (h hub) NotifyRealtimeAlerts(ctx context.Context, alerts []monitors.Alert) error {
	return h.each(func(s Service) error { return s.NotifyRealtimeAlerts(ctx, alerts) })
}

func (h hub) NotifyDailyReport(ctx context.Context, report DailyReport) error {
	return h.each(func(s Service) error { return s.NotifyDailyReport(ctx, report) })
}

func (h hub) NotifyError(ctx context.Context, err error, contextLabel string) error {
	return h.each(func(s Service) error { return s.NotifyError(ctx, err, contextLabel) })
}

func (h hub) TestNotification(ctx context.Context) error {
	return h.each(func(s Service) error { return s.TestNotification(ctx) })
}

func (h hub) each(send func(Service) error) error {
	var errs []error
	for _, sink := range h.sinks {
		if err := send(sink); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type noopService struct{}

func (noopService) NotifyScreeningResults(context.Context, ScreeningReport) error  { return nil }
func (noopService) NotifyRealtimeAlerts(context.Context, []monitors.Alert) error   { return nil }
func (noopService) NotifyDailyReport(context.Context, DailyReport) error           { return nil }
func (noopService) NotifyError(context.Context, error, string) error               { return nil }
func (noopService) TestNotification(context.Context) error                         { return nil }
