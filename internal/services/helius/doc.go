// Package helius wraps the Helius enhanced transaction and token metadata
// APIs. Both require an API key; when no key is configured the wallet
// tracker falls back to raw Solana RPC.
package helius
