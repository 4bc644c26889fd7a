package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"solscreener/internal/monitors"
)

type ntfyPayload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyScreeningResults(ctx context.Context, report ScreeningReport) error {
	return n.send(ctx, ntfyPayload{
		title:   fmt.Sprintf("Screener - %d candidates", len(report.Candidates)),
		message: screeningText(report),
		tags:    []string{"screener", "scan"},
	})
}

func (n *ntfyService) NotifyRealtimeAlerts(ctx context.Context, alerts []monitors.Alert) error {
	return n.send(ctx, ntfyPayload{
		title:    fmt.Sprintf("Screener - %d realtime alert(s)", len(alerts)),
		message:  realtimeText(alerts),
		tags:     []string{"screener", "realtime"},
		priority: "high",
	})
}

func (n *ntfyService) NotifyDailyReport(ctx context.Context, report DailyReport) error {
	return n.send(ctx, ntfyPayload{
		title:   "Screener - Daily Report",
		message: dailyText(report),
		tags:    []string{"screener", "daily"},
	})
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	return n.send(ctx, ntfyPayload{
		title:    "Screener - Error",
		message:  builder.String(),
		tags:     []string{"screener", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, ntfyPayload{
		title:    "Screener - Test",
		message:  "Notification system test",
		tags:     []string{"screener", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data ntfyPayload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
