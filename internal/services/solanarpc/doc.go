// Package solanarpc is a minimal Solana JSON-RPC client.
//
// It covers the two methods the screener needs: signature listings for an
// address (to watch the Pump.fun migration account and tracked wallets) and
// parsed transaction lookups (to classify which programs a transaction
// touched and which mints it moved).
package solanarpc
