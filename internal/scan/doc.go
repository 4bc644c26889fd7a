// Package scan discovers candidate Solana tokens from DexScreener and
// normalizes them into Project records for scoring.
package scan
