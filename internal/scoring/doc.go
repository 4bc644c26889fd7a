// Package scoring turns discovered projects into ranked candidates.
//
// Three stages: a deterministic 0-100 composite score from market data, an
// optional mania score from holder distribution and social signals (blended
// 80/20 into the composite), and an expectation summary that condenses
// score, safety, and mania into a heat level with a suggested position size.
package scoring
