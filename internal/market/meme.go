package market

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"solscreener/internal/logging"
	"solscreener/internal/monitors"
	"solscreener/internal/services/dexscreener"
)

// A pair is "hot" when both short windows are running.
const (
	memeHot5mPct = 15.0
	memeHot1hPct = 30.0

	memeLiquidityFloorUSD = 20000.0
	memeTopN              = 5

	memeSearchQuery = "solana"
)

// MemeChartMonitor finds Solana pairs with vertical short-term charts.
type MemeChartMonitor struct {
	dex *dexscreener.Client
	log *slog.Logger
}

// NewMemeChartMonitor constructs a MemeChartMonitor. A nil logger discards
// output.
func NewMemeChartMonitor(dex *dexscreener.Client, logger *slog.Logger) *MemeChartMonitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &MemeChartMonitor{
		dex: dex,
		log: logging.NewComponentLogger(logger, "meme"),
	}
}

// Check returns at most five hot movers as alerts, hottest first.
func (m *MemeChartMonitor) Check(ctx context.Context) []monitors.Alert {
	pairs, err := m.dex.Search(ctx, memeSearchQuery)
	if err != nil {
		m.log.Warn("search failed", logging.Error(err))
		return nil
	}

	var hot []dexscreener.Pair
	seen := make(map[string]struct{})
	for _, pair := range pairs {
		if pair.ChainID != "solana" {
			continue
		}
		if _, ok := seen[pair.BaseToken.Address]; ok {
			continue
		}
		if pair.Liquidity.USD < memeLiquidityFloorUSD {
			continue
		}
		if pair.PriceChange.M5 < memeHot5mPct || pair.PriceChange.H1 < memeHot1hPct {
			continue
		}
		seen[pair.BaseToken.Address] = struct{}{}
		hot = append(hot, pair)
	}

	sort.SliceStable(hot, func(i, j int) bool {
		return hot[i].PriceChange.H1 > hot[j].PriceChange.H1
	})
	if len(hot) > memeTopN {
		hot = hot[:memeTopN]
	}

	alerts := make([]monitors.Alert, 0, len(hot))
	for _, pair := range hot {
		alerts = append(alerts, monitors.Alert{
			Kind:  monitors.KindMemeChart,
			Title: fmt.Sprintf("%s running", pair.BaseToken.Symbol),
			Detail: fmt.Sprintf("%s +%.1f%% (5m) +%.1f%% (1h), $%.0f liquidity",
				pair.BaseToken.Symbol, pair.PriceChange.M5, pair.PriceChange.H1, pair.Liquidity.USD),
		})
	}
	return alerts
}
