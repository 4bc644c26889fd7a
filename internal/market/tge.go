package market

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"solscreener/internal/logging"
	"solscreener/internal/monitors"
	"solscreener/internal/services/dexscreener"
)

const (
	tgeMaxAge     = 6 * time.Hour
	tgeMaxLookups = 10
)

// TGEMonitor surfaces tokens whose first pair appeared within the last few
// hours, for the daily report's launch section.
type TGEMonitor struct {
	dex *dexscreener.Client
	log *slog.Logger
}

// NewTGEMonitor constructs a TGEMonitor. A nil logger discards output.
func NewTGEMonitor(dex *dexscreener.Client, logger *slog.Logger) *TGEMonitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TGEMonitor{
		dex: dex,
		log: logging.NewComponentLogger(logger, "tge"),
	}
}

// Check returns an alert per fresh launch found in the profiles feed.
func (m *TGEMonitor) Check(ctx context.Context) []monitors.Alert {
	profiles, err := m.dex.LatestProfiles(ctx)
	if err != nil {
		m.log.Warn("profiles lookup failed", logging.Error(err))
		return nil
	}

	now := time.Now().UTC()
	lookups := 0
	var alerts []monitors.Alert
	seen := make(map[string]struct{})
	for _, profile := range profiles {
		if ctx.Err() != nil {
			break
		}
		if profile.ChainID != "solana" || profile.TokenAddress == "" {
			continue
		}
		if _, ok := seen[profile.TokenAddress]; ok {
			continue
		}
		seen[profile.TokenAddress] = struct{}{}
		if lookups++; lookups > tgeMaxLookups {
			break
		}

		pair, err := m.dex.BestPair(ctx, profile.TokenAddress)
		if err != nil || pair == nil {
			continue
		}
		created := pair.CreatedAt()
		if created.IsZero() || now.Sub(created) > tgeMaxAge {
			continue
		}

		alerts = append(alerts, monitors.Alert{
			Kind:  monitors.KindTGE,
			Title: fmt.Sprintf("%s launched", pair.BaseToken.Symbol),
			Detail: fmt.Sprintf("%s on %s %s ago, market cap $%.0f",
				pair.BaseToken.Symbol, pair.DexID,
				now.Sub(created).Round(time.Minute), pair.MarketCap),
		})
	}
	return alerts
}
