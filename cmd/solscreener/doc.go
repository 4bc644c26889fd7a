// Command solscreener discovers, scores, and reports on new Solana
// tokens. It runs one-shot passes from the command line or as a
// long-lived daemon with scheduled screening, monitoring, and daily
// report cycles.
package main
