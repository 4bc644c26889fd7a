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

// Discord embed limits and colors.
const (
	discordMaxEmbeds     = 10
	discordMaxFieldChars = 1024
	discordMaxContent    = 2000

	colorGreen  = 0x2ecc71
	colorYellow = 0xf1c40f
	colorRed    = 0xe74c3c
	colorGrey   = 0x95a5a6
	colorBlue   = 0x3498db
)

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordMessage struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordService struct {
	webhookURL string
	client     *http.Client
}

func (d *discordService) NotifyScreeningResults(ctx context.Context, report ScreeningReport) error {
	msg := discordMessage{
		Content: fmt.Sprintf("**Screening** — %d scanned, %d new candidates",
			report.Scanned, len(report.Candidates)),
	}
	for i, candidate := range report.Candidates {
		if i >= discordMaxEmbeds {
			break
		}
		msg.Embeds = append(msg.Embeds, candidateEmbed(candidate))
	}
	return d.send(ctx, msg)
}

func (d *discordService) NotifyRealtimeAlerts(ctx context.Context, alerts []monitors.Alert) error {
	return d.send(ctx, discordMessage{
		Content: truncate(realtimeText(alerts), discordMaxContent),
	})
}

func (d *discordService) NotifyDailyReport(ctx context.Context, report DailyReport) error {
	return d.send(ctx, discordMessage{
		Content: truncate(dailyText(report), discordMaxContent),
	})
}

func (d *discordService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	detail := "unknown"
	if err != nil {
		detail = err.Error()
	}
	embed := discordEmbed{
		Title:       "Screener error",
		Description: fmt.Sprintf("```\n%s\n```", truncate(detail, discordMaxFieldChars)),
		Color:       colorRed,
	}
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		embed.Title = "Screener error: " + contextLabel
	}
	return d.send(ctx, discordMessage{Embeds: []discordEmbed{embed}})
}

func (d *discordService) TestNotification(ctx context.Context) error {
	return d.send(ctx, discordMessage{Content: "Notification test"})
}

func candidateEmbed(c Candidate) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("%s %s — %.1f", heatEmoji(c.Expectation.HeatLevel),
			displaySymbol(c.Project.Symbol), c.Project.TotalScore),
		URL:   c.Project.PairURL,
		Color: embedColor(c.Safety.Level),
		Fields: []discordEmbedField{
			{Name: "Liquidity", Value: formatUSD(c.Project.LiquidityUSD), Inline: true},
			{Name: "Volume 24h", Value: formatUSD(c.Project.Volume24hUSD), Inline: true},
			{Name: "Safety", Value: fmt.Sprintf("%s %s", safetyEmoji(c.Safety.Level), c.Safety.Level), Inline: true},
		},
	}

	position := "skip"
	if !c.Expectation.Skip() {
		position = fmt.Sprintf("%.1f%% of stack", c.Expectation.PositionPct)
	}
	embed.Fields = append(embed.Fields,
		discordEmbedField{Name: "Heat", Value: fmt.Sprintf("%d/5", c.Expectation.HeatLevel), Inline: true},
		discordEmbedField{Name: "Confidence", Value: fmt.Sprintf("%d%%", c.Expectation.Confidence), Inline: true},
		discordEmbedField{Name: "Position", Value: position, Inline: true},
	)

	if c.PreviousScore != nil {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   "Score change",
			Value:  fmt.Sprintf("%.1f -> %.1f", *c.PreviousScore, c.Project.TotalScore),
			Inline: true,
		})
	}
	if len(c.Expectation.Reasoning) > 0 {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:  "Read",
			Value: truncate(strings.Join(c.Expectation.Reasoning, "\n"), discordMaxFieldChars),
		})
	}
	embed.Fields = append(embed.Fields, discordEmbedField{
		Name:  "Mint",
		Value: c.Project.Mint,
	})
	return embed
}

func embedColor(safetyLevel string) int {
	switch safetyLevel {
	case "safe":
		return colorGreen
	case "warning":
		return colorYellow
	case "danger":
		return colorRed
	case "unknown":
		return colorGrey
	default:
		return colorBlue
	}
}

func (d *discordService) send(ctx context.Context, msg discordMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build discord request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send discord notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
