package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"solscreener/internal/monitors"
)

// Telegram rejects messages over 4096 characters; stay under with margin.
const telegramMaxChars = 4000

type telegramService struct {
	endpoint string
	chatID   string
	client   *http.Client
}

func (t *telegramService) NotifyScreeningResults(ctx context.Context, report ScreeningReport) error {
	return t.send(ctx, screeningText(report))
}

func (t *telegramService) NotifyRealtimeAlerts(ctx context.Context, alerts []monitors.Alert) error {
	return t.send(ctx, realtimeText(alerts))
}

func (t *telegramService) NotifyDailyReport(ctx context.Context, report DailyReport) error {
	return t.send(ctx, dailyText(report))
}

func (t *telegramService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	detail := "unknown"
	if err != nil {
		detail = err.Error()
	}
	text := "Screener error"
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		text += " (" + contextLabel + ")"
	}
	return t.send(ctx, text+": "+detail)
}

func (t *telegramService) TestNotification(ctx context.Context) error {
	return t.send(ctx, "Notification test")
}

func (t *telegramService) send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    truncate(text, telegramMaxChars),
	})
	if err != nil {
		return fmt.Errorf("encode telegram payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("telegram returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
