package monitors

import (
	"context"
	"fmt"
	"log/slog"

	"solscreener/internal/logging"
	"solscreener/internal/services/dexscreener"
)

// Liquidity move thresholds, in percent of the previous sample.
const (
	liquidityRemovedPct = -50.0
	liquidityDropPct    = -20.0
	liquiditySurgePct   = 100.0

	// Below this a pool counts as drained rather than merely dropped.
	drainedFloorUSD = 1000.0
)

// LiquidityMonitor samples pool liquidity on watched tokens and alerts on
// large moves between samples.
type LiquidityMonitor struct {
	dex      *dexscreener.Client
	log      *slog.Logger
	tokens   []string
	previous map[string]float64
}

// NewLiquidityMonitor constructs a LiquidityMonitor. A nil logger discards
// output.
func NewLiquidityMonitor(dex *dexscreener.Client, logger *slog.Logger, tokens []string) *LiquidityMonitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LiquidityMonitor{
		dex:      dex,
		log:      logging.NewComponentLogger(logger, "liquidity"),
		tokens:   tokens,
		previous: make(map[string]float64),
	}
}

// Check samples every watched token and returns alerts for moves beyond
// the thresholds. The first sample per token only seeds the baseline.
func (m *LiquidityMonitor) Check(ctx context.Context) []Alert {
	var alerts []Alert
	for _, token := range m.tokens {
		if ctx.Err() != nil {
			break
		}
		pair, err := m.dex.BestPair(ctx, token)
		if err != nil {
			m.log.Warn("pair lookup failed",
				logging.String(logging.FieldMint, token),
				logging.Error(err))
			continue
		}
		if pair == nil {
			continue
		}

		current := pair.Liquidity.USD
		previous, seen := m.previous[token]
		m.previous[token] = current
		if !seen || previous <= 0 {
			continue
		}

		change := (current - previous) / previous * 100
		if alert, ok := classifyLiquidityMove(pair.BaseToken.Symbol, token, previous, current, change); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

func classifyLiquidityMove(symbol, token string, previous, current, change float64) (Alert, bool) {
	detail := fmt.Sprintf("%s liquidity $%.0f -> $%.0f (%+.1f%%)", token, previous, current, change)
	switch {
	case change <= liquidityRemovedPct && current < drainedFloorUSD:
		return Alert{Kind: KindLiquidity, Title: fmt.Sprintf("%s liquidity removed", symbol), Detail: detail}, true
	case change <= liquidityRemovedPct:
		return Alert{Kind: KindLiquidity, Title: fmt.Sprintf("%s liquidity down %.0f%%", symbol, -change), Detail: detail}, true
	case change <= liquidityDropPct:
		return Alert{Kind: KindLiquidity, Title: fmt.Sprintf("%s liquidity dropping", symbol), Detail: detail}, true
	case change >= liquiditySurgePct:
		return Alert{Kind: KindLiquidity, Title: fmt.Sprintf("%s liquidity surge", symbol), Detail: detail}, true
	}
	return Alert{}, false
}
