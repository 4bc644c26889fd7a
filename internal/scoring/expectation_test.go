package scoring_test

import (
	"testing"

	"solscreener/internal/scoring"
)

func TestHeatFromScoreBands(t *testing.T) {
	tests := []struct {
		score float64
		heat  int
		pos   float64
	}{
		{80, 5, 10},
		{60, 4, 5},
		{45, 3, 2},
		{30, 2, 0.5},
		{10, 1, 0},
	}
	for _, tc := range tests {
		exp := scoring.CalculateExpectation(scoring.ExpectationInputs{
			TotalScore:  tc.score,
			SafetyLevel: "safe",
			TrustScore:  scoring.TrustUnknown,
		})
		if exp.HeatLevel != tc.heat {
			t.Fatalf("score %.0f: expected heat %d, got %d", tc.score, tc.heat, exp.HeatLevel)
		}
		if exp.PositionPct != tc.pos {
			t.Fatalf("score %.0f: expected position %.1f, got %.1f", tc.score, tc.pos, exp.PositionPct)
		}
	}
}

func TestDangerDropsHeatByTwo(t *testing.T) {
	exp := scoring.CalculateExpectation(scoring.ExpectationInputs{
		TotalScore:  80,
		SafetyLevel: "danger",
		TrustScore:  scoring.TrustUnknown,
	})
	if exp.HeatLevel != 3 {
		t.Fatalf("expected heat 3 after danger penalty, got %d", exp.HeatLevel)
	}
	if exp.Confidence != 70 {
		t.Fatalf("disagreeing signals should lower confidence to 70, got %d", exp.Confidence)
	}
}

func TestAgreementYieldsHighConfidence(t *testing.T) {
	exp := scoring.CalculateExpectation(scoring.ExpectationInputs{
		TotalScore:  50,
		SafetyLevel: "safe",
		TrustScore:  scoring.TrustUnknown,
	})
	if exp.Confidence != 100 {
		t.Fatalf("identical factors should yield full confidence, got %d", exp.Confidence)
	}
}

func TestHeatNeverLeavesRange(t *testing.T) {
	exp := scoring.CalculateExpectation(scoring.ExpectationInputs{
		TotalScore:  80,
		SafetyLevel: "danger",
		ManiaScore:  10,
		ManiaKnown:  true,
		HighBotRisk: true,
		TrustScore:  10,
		MarketTrend: scoring.TrendBearish,
	})
	if exp.HeatLevel != 1 {
		t.Fatalf("stacked penalties should clamp at 1, got %d", exp.HeatLevel)
	}
	if !exp.Skip() {
		t.Fatal("heat 1 should be a skip")
	}

	exp = scoring.CalculateExpectation(scoring.ExpectationInputs{
		TotalScore:  90,
		SafetyLevel: "safe",
		ManiaScore:  85,
		ManiaKnown:  true,
		TrustScore:  90,
		MarketTrend: scoring.TrendBullish,
	})
	if exp.HeatLevel != 5 {
		t.Fatalf("stacked bonuses should clamp at 5, got %d", exp.HeatLevel)
	}
}

func TestConfidenceFloor(t *testing.T) {
	for score := 0.0; score <= 100; score += 25 {
		exp := scoring.CalculateExpectation(scoring.ExpectationInputs{
			TotalScore:  score,
			SafetyLevel: "danger",
			ManiaScore:  5,
			ManiaKnown:  true,
			HighBotRisk: true,
			TrustScore:  5,
		})
		if exp.Confidence < 10 || exp.Confidence > 100 {
			t.Fatalf("confidence out of range at score %.0f: %d", score, exp.Confidence)
		}
	}
}

func TestReasoningMentionsModifiers(t *testing.T) {
	exp := scoring.CalculateExpectation(scoring.ExpectationInputs{
		TotalScore:  65,
		SafetyLevel: "warning",
		ManiaScore:  80,
		ManiaKnown:  true,
		TrustScore:  scoring.TrustUnknown,
		MarketTrend: scoring.TrendBullish,
	})
	if len(exp.Reasoning) < 3 {
		t.Fatalf("expected reasoning lines for each modifier, got %v", exp.Reasoning)
	}
}
