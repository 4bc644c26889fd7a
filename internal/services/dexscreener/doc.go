// Package dexscreener wraps the public DexScreener HTTP API.
//
// The screener uses three endpoints: latest token profiles (newly promoted
// tokens), pair lookups by token address, and free-text pair search. No API
// key is required; rate limits are generous enough for polling use.
package dexscreener
