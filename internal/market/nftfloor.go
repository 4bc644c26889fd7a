package market

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"solscreener/internal/logging"
	"solscreener/internal/monitors"
	"solscreener/internal/services/magiceden"
)

const floorMovePct = 15.0

// NFTFloorMonitor samples floor prices on watched collections and alerts
// on moves beyond ±15% between samples.
type NFTFloorMonitor struct {
	eden        *magiceden.Client
	log         *slog.Logger
	collections []string
	previous    map[string]float64
}

// NewNFTFloorMonitor constructs an NFTFloorMonitor. A nil logger discards
// output.
func NewNFTFloorMonitor(eden *magiceden.Client, logger *slog.Logger, collections []string) *NFTFloorMonitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &NFTFloorMonitor{
		eden:        eden,
		log:         logging.NewComponentLogger(logger, "nftfloor"),
		collections: collections,
		previous:    make(map[string]float64),
	}
}

// Check samples every watched collection. The first sample per collection
// only seeds the baseline.
func (m *NFTFloorMonitor) Check(ctx context.Context) []monitors.Alert {
	var alerts []monitors.Alert
	for _, symbol := range m.collections {
		if ctx.Err() != nil {
			break
		}
		stats, err := m.eden.Stats(ctx, symbol)
		if err != nil {
			m.log.Warn("stats lookup failed",
				logging.String("collection", symbol),
				logging.Error(err))
			continue
		}

		floor := stats.FloorSOL()
		previous, seen := m.previous[symbol]
		m.previous[symbol] = floor
		if !seen || previous <= 0 || floor <= 0 {
			continue
		}

		change := (floor - previous) / previous * 100
		if math.Abs(change) < floorMovePct {
			continue
		}
		direction := "pumping"
		if change < 0 {
			direction = "dumping"
		}
		alerts = append(alerts, monitors.Alert{
			Kind:  monitors.KindNFTFloor,
			Title: fmt.Sprintf("%s floor %s", symbol, direction),
			Detail: fmt.Sprintf("%s floor %.2f SOL -> %.2f SOL (%+.1f%%), %d listed",
				symbol, previous, floor, change, stats.ListedCount),
		})
	}
	return alerts
}
