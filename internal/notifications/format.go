package notifications

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"solscreener/internal/monitors"
)

var usdPrinter = message.NewPrinter(language.English)

func formatUSD(amount float64) string {
	if amount >= 1000 {
		return usdPrinter.Sprintf("$%.0f", amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

func heatEmoji(heat int) string {
	switch heat {
	case 5:
		return "🔥🔥🔥"
	case 4:
		return "🔥🔥"
	case 3:
		return "🔥"
	case 2:
		return "🌡"
	default:
		return "❄️"
	}
}

func safetyEmoji(level string) string {
	switch level {
	case "safe":
		return "✅"
	case "warning":
		return "⚠️"
	case "danger":
		return "🚨"
	default:
		return "❔"
	}
}

func candidateLine(c Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s — score %.1f", heatEmoji(c.Expectation.HeatLevel),
		displaySymbol(c.Project.Symbol), c.Project.TotalScore)
	if c.PreviousScore != nil {
		fmt.Fprintf(&b, " (was %.1f)", *c.PreviousScore)
	}
	fmt.Fprintf(&b, " | %s %s", safetyEmoji(c.Safety.Level), c.Safety.Level)
	if c.Expectation.Skip() {
		b.WriteString(" | skip")
	} else {
		fmt.Fprintf(&b, " | size %.1f%%", c.Expectation.PositionPct)
	}
	fmt.Fprintf(&b, " | conf %d%%", c.Expectation.Confidence)
	return b.String()
}

func candidateDetail(c Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Liquidity %s | 24h vol %s | price $%.6f\n",
		formatUSD(c.Project.LiquidityUSD), formatUSD(c.Project.Volume24hUSD), c.Project.PriceUSD)
	fmt.Fprintf(&b, "Moves: 5m %+.1f%% | 1h %+.1f%% | 24h %+.1f%%\n",
		c.Project.Change5m, c.Project.Change1h, c.Project.Change24h)
	if len(c.Safety.Dangers) > 0 {
		fmt.Fprintf(&b, "Red flags: %s\n", strings.Join(c.Safety.Dangers, "; "))
	}
	if len(c.Expectation.Reasoning) > 0 {
		fmt.Fprintf(&b, "Read: %s\n", strings.Join(c.Expectation.Reasoning, "; "))
	}
	fmt.Fprintf(&b, "Mint: %s", c.Project.Mint)
	return strings.TrimRight(b.String(), "\n")
}

func screeningText(report ScreeningReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Screening: %d scanned, %d new candidates\n", report.Scanned, len(report.Candidates))
	for _, candidate := range report.Candidates {
		b.WriteString(candidateLine(candidate))
		b.WriteString("\n")
		b.WriteString(candidateDetail(candidate))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func realtimeText(alerts []monitors.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Realtime: %d alert(s)\n", len(alerts))
	for _, alert := range alerts {
		fmt.Fprintf(&b, "• %s — %s\n", alert.Title, alert.Detail)
	}
	return strings.TrimRight(b.String(), "\n")
}

func dailyText(report DailyReport) string {
	var b strings.Builder
	b.WriteString("Daily report\n")
	fmt.Fprintf(&b, "Last 24h: %d scans, %d projects seen, %d notified\n",
		report.Stats.Scans, report.Stats.Projects, report.Stats.Notified)
	if len(report.Launches) > 0 {
		b.WriteString("Launches:\n")
		for _, launch := range report.Launches {
			fmt.Fprintf(&b, "• %s — %s\n", launch.Title, launch.Detail)
		}
	}
	if len(report.Airdrops) > 0 {
		b.WriteString("Airdrops:\n")
		for _, drop := range report.Airdrops {
			line := fmt.Sprintf("• %s (%s)", drop.Name, drop.Status)
			if drop.URL != "" {
				line += " " + drop.URL
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func displaySymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "?"
	}
	return symbol
}

// truncate cuts text to at most limit bytes without splitting a rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	suffix := ""
	if limit > 3 {
		cut = limit - 3
		suffix = "..."
	}
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + suffix
}
