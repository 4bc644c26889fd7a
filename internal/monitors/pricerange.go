package monitors

import (
	"context"
	"fmt"
	"log/slog"

	"solscreener/internal/config"
	"solscreener/internal/logging"
	"solscreener/internal/services/coingecko"
)

// RangeMonitor alerts when a configured asset trades outside its band.
type RangeMonitor struct {
	gecko *coingecko.Client
	log   *slog.Logger
	bands []config.PriceRange
}

// NewRangeMonitor constructs a RangeMonitor. A nil logger discards output.
func NewRangeMonitor(gecko *coingecko.Client, logger *slog.Logger, bands []config.PriceRange) *RangeMonitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RangeMonitor{
		gecko: gecko,
		log:   logging.NewComponentLogger(logger, "pricerange"),
		bands: bands,
	}
}

// Check fetches current prices and returns an alert per breached band.
func (m *RangeMonitor) Check(ctx context.Context) []Alert {
	if len(m.bands) == 0 {
		return nil
	}

	ids := make([]string, 0, len(m.bands))
	for _, band := range m.bands {
		ids = append(ids, band.CoinID)
	}
	quotes, err := m.gecko.SimplePrices(ctx, ids)
	if err != nil {
		m.log.Warn("price lookup failed", logging.Error(err))
		return nil
	}

	var alerts []Alert
	for _, band := range m.bands {
		quote, ok := quotes[band.CoinID]
		if !ok || quote.USD <= 0 {
			// A zero quote is a provider hiccup, not a price below range.
			continue
		}
		switch {
		case quote.USD > band.High:
			alerts = append(alerts, Alert{
				Kind:  KindPriceRange,
				Title: fmt.Sprintf("%s above range", band.Symbol),
				Detail: fmt.Sprintf("%s at $%.2f, above $%.2f (24h %+.1f%%)",
					band.Symbol, quote.USD, band.High, quote.Change24h),
			})
		case quote.USD < band.Low:
			alerts = append(alerts, Alert{
				Kind:  KindPriceRange,
				Title: fmt.Sprintf("%s below range", band.Symbol),
				Detail: fmt.Sprintf("%s at $%.2f, below $%.2f (24h %+.1f%%)",
					band.Symbol, quote.USD, band.Low, quote.Change24h),
			})
		}
	}
	return alerts
}
