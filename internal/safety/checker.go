package safety

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"solscreener/internal/logging"
	"solscreener/internal/services/rugcheck"
)

// Risk levels, worst to best.
const (
	LevelDanger  = "danger"
	LevelWarning = "warning"
	LevelSafe    = "safe"
	LevelUnknown = "unknown"
)

// Top-10 holder concentration thresholds, in percent of supply.
const (
	concentrationDangerPct  = 50.0
	concentrationWarningPct = 30.0
)

// Report is the condensed safety picture for one mint.
type Report struct {
	Mint          string
	Level         string
	Score         float64
	Dangers       []string
	Warnings      []string
	MintAuthority bool
	LPUnlocked    bool
	TopHolderPct  float64
	Top1Pct       float64
	Top5Pct       float64
}

// RedFlags returns the number of danger-grade findings.
func (r Report) RedFlags() int {
	return len(r.Dangers)
}

// Checker turns RugCheck reports into safety classifications.
type Checker struct {
	rug *rugcheck.Client
	log *slog.Logger
}

// NewChecker constructs a Checker. A nil logger discards output.
func NewChecker(rug *rugcheck.Client, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Checker{
		rug: rug,
		log: logging.NewComponentLogger(logger, "safety"),
	}
}

// Check fetches and classifies one mint.
func (c *Checker) Check(ctx context.Context, mint string) (Report, error) {
	raw, err := c.rug.TokenReport(ctx, mint)
	if err != nil {
		return Report{Mint: mint, Level: LevelUnknown}, err
	}
	return Classify(*raw), nil
}

// CheckAll classifies many mints, degrading to an unknown report for any
// mint whose lookup fails.
func (c *Checker) CheckAll(ctx context.Context, mints []string) map[string]Report {
	reports := make(map[string]Report, len(mints))
	for _, mint := range mints {
		if ctx.Err() != nil {
			break
		}
		report, err := c.Check(ctx, mint)
		if err != nil {
			c.log.Warn("safety check failed",
				logging.String(logging.FieldMint, mint),
				logging.Error(err))
		}
		reports[mint] = report
	}
	return reports
}

// Classify condenses a raw RugCheck report. A mint becomes danger with two
// or more red flags, warning with one red flag or at least two
// warning-grade findings, safe otherwise. A lone warning is noise.
func Classify(raw rugcheck.Report) Report {
	report := Report{
		Mint:         raw.Mint,
		Score:        raw.Score,
		TopHolderPct: raw.TopHolderShare(),
	}
	for i, holder := range raw.TopHolders {
		if i == 0 {
			report.Top1Pct = holder.Pct
		}
		if i < 5 {
			report.Top5Pct += holder.Pct
		}
	}

	for _, risk := range raw.Risks {
		name := strings.ToLower(risk.Name)
		switch strings.ToLower(risk.Level) {
		case "danger":
			report.Dangers = append(report.Dangers, risk.Name)
		case "warn", "warning":
			report.Warnings = append(report.Warnings, risk.Name)
		}
		if strings.Contains(name, "mint authority") {
			report.MintAuthority = true
		}
		if strings.Contains(name, "lp") || strings.Contains(name, "liquidity") {
			if strings.Contains(name, "unlock") || strings.Contains(name, "not locked") {
				report.LPUnlocked = true
			}
		}
	}

	switch {
	case report.TopHolderPct > concentrationDangerPct:
		report.Dangers = append(report.Dangers,
			fmt.Sprintf("top 10 holders own %.1f%% of supply", report.TopHolderPct))
	case report.TopHolderPct > concentrationWarningPct:
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("top 10 holders own %.1f%% of supply", report.TopHolderPct))
	}

	switch {
	case len(report.Dangers) >= 2:
		report.Level = LevelDanger
	case len(report.Dangers) == 1 || len(report.Warnings) >= 2:
		report.Level = LevelWarning
	default:
		report.Level = LevelSafe
	}
	return report
}
