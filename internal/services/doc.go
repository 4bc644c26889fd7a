// Package services defines shared plumbing for the external data source
// clients (DexScreener, RugCheck, CoinGecko, Solana RPC, Helius, Magic Eden).
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (configuration vs transient vs upstream) with errors.Is.
//   - The HTTPDoer seam every client accepts, keeping the HTTP layer
//     swappable in tests.
//
// Use these helpers when wiring new providers so operational behaviour stays
// uniform across the screener.
package services
