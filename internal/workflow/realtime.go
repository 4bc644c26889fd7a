package workflow

import (
	"context"
	"log/slog"

	"solscreener/internal/logging"
	"solscreener/internal/market"
	"solscreener/internal/monitors"
	"solscreener/internal/notifications"
)

// RealtimeCycle runs every monitor once and batches the findings into a
// single notification.
type RealtimeCycle struct {
	wallets   *monitors.WalletTracker
	liquidity *monitors.LiquidityMonitor
	ranges    *monitors.RangeMonitor
	meme      *market.MemeChartMonitor
	nftFloor  *market.NFTFloorMonitor
	notifier  notifications.Service
	log       *slog.Logger
}

// NewRealtimeCycle wires a realtime cycle. Any monitor may be nil when its
// watch list is empty.
func NewRealtimeCycle(
	wallets *monitors.WalletTracker,
	liquidity *monitors.LiquidityMonitor,
	ranges *monitors.RangeMonitor,
	meme *market.MemeChartMonitor,
	nftFloor *market.NFTFloorMonitor,
	notifier notifications.Service,
	logger *slog.Logger,
) *RealtimeCycle {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RealtimeCycle{
		wallets:   wallets,
		liquidity: liquidity,
		ranges:    ranges,
		meme:      meme,
		nftFloor:  nftFloor,
		notifier:  notifier,
		log:       logging.NewComponentLogger(logger, "realtime"),
	}
}

// Run executes one monitoring pass. A pass with no findings sends nothing.
func (c *RealtimeCycle) Run(ctx context.Context) error {
	var alerts []monitors.Alert
	if c.wallets != nil {
		alerts = append(alerts, c.wallets.Check(ctx)...)
	}
	if c.liquidity != nil {
		alerts = append(alerts, c.liquidity.Check(ctx)...)
	}
	if c.ranges != nil {
		alerts = append(alerts, c.ranges.Check(ctx)...)
	}
	if c.meme != nil {
		alerts = append(alerts, c.meme.Check(ctx)...)
	}
	if c.nftFloor != nil {
		alerts = append(alerts, c.nftFloor.Check(ctx)...)
	}

	c.log.Info("realtime pass", logging.Int("alerts", len(alerts)))
	if len(alerts) == 0 {
		return nil
	}

	if err := c.notifier.NotifyRealtimeAlerts(ctx, alerts); err != nil {
		c.log.Warn("realtime notification failed", logging.Error(err))
	}
	return nil
}
