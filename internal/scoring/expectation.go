package scoring

import (
	"fmt"
	"math"
)

// Market trend labels accepted by the expectation calculator.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNeutral = "neutral"
)

// TrustUnknown marks an absent trust score.
const TrustUnknown = -1

// ExpectationInputs are the signals condensed into an expectation.
type ExpectationInputs struct {
	TotalScore  float64
	SafetyLevel string // safe, warning, danger, unknown
	ManiaScore  float64
	ManiaKnown  bool
	HighBotRisk bool
	TrustScore  float64 // 0-100, TrustUnknown when absent
	MarketTrend string
}

// Expectation is the trading-desk style summary attached to a candidate.
// Position of zero means skip.
type Expectation struct {
	HeatLevel   int
	Confidence  int
	PositionPct float64
	RiskReward  string
	Reasoning   []string
}

// Skip reports whether the candidate should not be entered at all.
func (e Expectation) Skip() bool {
	return e.PositionPct <= 0
}

// CalculateExpectation derives heat, confidence, and position size.
//
// Heat starts from the total score (>=75 is 5, >=60 is 4, >=45 is 3,
// >=30 is 2, else 1) and is shifted by safety, mania, trust, and market
// trend, then clamped to 1..5. Confidence is driven by how much the
// individual signals disagree: the variance across the normalized factors
// is scaled by 15 and subtracted from 100, clamped to 10..100.
func CalculateExpectation(in ExpectationInputs) Expectation {
	baseHeat := heatFromScore(in.TotalScore)

	safetyMod := 0
	switch in.SafetyLevel {
	case "danger":
		safetyMod = -2
	case "warning":
		safetyMod = -1
	}

	maniaMod := 0
	if in.ManiaKnown {
		if in.ManiaScore >= 70 {
			maniaMod = 1
		} else if in.ManiaScore <= 20 {
			maniaMod = -1
		}
		if in.HighBotRisk {
			maniaMod--
		}
	}

	trustMod := 0
	if in.TrustScore >= 0 {
		if in.TrustScore >= 70 {
			trustMod = 1
		} else if in.TrustScore <= 30 {
			trustMod = -1
		}
	}

	marketMod := 0
	switch in.MarketTrend {
	case TrendBullish:
		marketMod = 1
	case TrendBearish:
		marketMod = -1
	}

	heat := clampInt(baseHeat+safetyMod+maniaMod+trustMod+marketMod, 1, 5)

	factors := []float64{
		float64(baseHeat),
		float64(3 + safetyMod),
		float64(3 + maniaMod),
		float64(3 + trustMod),
	}
	confidence := clampInt(int(math.Round(100-variance(factors)*15)), 10, 100)

	return Expectation{
		HeatLevel:   heat,
		Confidence:  confidence,
		PositionPct: positionFor(heat),
		RiskReward:  riskRewardFor(heat),
		Reasoning:   reasoning(in, baseHeat, safetyMod, maniaMod, trustMod, marketMod),
	}
}

func heatFromScore(score float64) int {
	switch {
	case score >= 75:
		return 5
	case score >= 60:
		return 4
	case score >= 45:
		return 3
	case score >= 30:
		return 2
	default:
		return 1
	}
}

func positionFor(heat int) float64 {
	switch heat {
	case 5:
		return 10
	case 4:
		return 5
	case 3:
		return 2
	case 2:
		return 0.5
	default:
		return 0
	}
}

func riskRewardFor(heat int) string {
	switch heat {
	case 5:
		return "high conviction"
	case 4:
		return "elevated"
	case 3:
		return "moderate"
	case 2:
		return "low conviction"
	default:
		return "avoid"
	}
}

func reasoning(in ExpectationInputs, baseHeat, safetyMod, maniaMod, trustMod, marketMod int) []string {
	lines := []string{
		fmt.Sprintf("score %.1f sets base heat %d", in.TotalScore, baseHeat),
	}
	if safetyMod != 0 {
		lines = append(lines, fmt.Sprintf("safety %s (%+d)", in.SafetyLevel, safetyMod))
	}
	if maniaMod != 0 {
		lines = append(lines, fmt.Sprintf("mania %.0f (%+d)", in.ManiaScore, maniaMod))
	}
	if in.HighBotRisk {
		lines = append(lines, "high bot activity on socials")
	}
	if trustMod != 0 {
		lines = append(lines, fmt.Sprintf("trust %.0f (%+d)", in.TrustScore, trustMod))
	}
	if marketMod != 0 {
		lines = append(lines, fmt.Sprintf("market %s (%+d)", in.MarketTrend, marketMod))
	}
	return lines
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, value := range values {
		mean += value
	}
	mean /= float64(len(values))
	total := 0.0
	for _, value := range values {
		diff := value - mean
		total += diff * diff
	}
	return total / float64(len(values))
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
