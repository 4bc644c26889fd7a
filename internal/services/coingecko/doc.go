// Package coingecko wraps the CoinGecko simple price API used by the
// majors price range monitor.
package coingecko
