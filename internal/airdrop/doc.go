// Package airdrop collects active and upcoming Solana airdrops from
// configured JSON feeds for the daily report.
package airdrop
