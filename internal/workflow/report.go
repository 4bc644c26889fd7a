package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"solscreener/internal/airdrop"
	"solscreener/internal/logging"
	"solscreener/internal/market"
	"solscreener/internal/notifications"
	"solscreener/internal/store"
)

// ReportCycle assembles and sends the daily summary.
type ReportCycle struct {
	airdrops *airdrop.Scanner
	tge      *market.TGEMonitor
	store    *store.Store
	notifier notifications.Service
	log      *slog.Logger
}

// NewReportCycle wires a daily report cycle. The airdrop scanner and TGE
// monitor may be nil.
func NewReportCycle(
	airdrops *airdrop.Scanner,
	tge *market.TGEMonitor,
	st *store.Store,
	notifier notifications.Service,
	logger *slog.Logger,
) *ReportCycle {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ReportCycle{
		airdrops: airdrops,
		tge:      tge,
		store:    st,
		notifier: notifier,
		log:      logging.NewComponentLogger(logger, "report"),
	}
}

// Run builds and sends one daily report.
func (c *ReportCycle) Run(ctx context.Context) error {
	report := notifications.DailyReport{}
	if c.airdrops != nil {
		report.Airdrops = c.airdrops.Scan(ctx)
	}
	if c.tge != nil {
		report.Launches = c.tge.Check(ctx)
	}

	stats, err := c.store.ScanStats(ctx)
	if err != nil {
		return fmt.Errorf("scan stats: %w", err)
	}
	report.Stats = stats

	c.log.Info("daily report",
		logging.Int("airdrops", len(report.Airdrops)),
		logging.Int("launches", len(report.Launches)),
		logging.Int("scans24h", stats.Scans))

	if err := c.notifier.NotifyDailyReport(ctx, report); err != nil {
		c.log.Warn("daily report notification failed", logging.Error(err))
	}
	return nil
}
