package scoring_test

import (
	"testing"
	"time"

	"solscreener/internal/scan"
	"solscreener/internal/scoring"
)

func TestScoreStrongProject(t *testing.T) {
	engine := scoring.NewEngine()
	project := engine.Score(scan.Project{
		Mint:         "MINT1",
		Symbol:       "EXM",
		LiquidityUSD: 1_000_000,
		Volume24hUSD: 3_000_000,
		Change5m:     15,
		Change1h:     50,
		Twitter:      "https://x.com/example",
		Telegram:     "https://t.me/example",
		Website:      "https://example.xyz",
		GitHubRepo:   "https://github.com/example/token",
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	})

	if project.Scores[scoring.ComponentLiquidity] != 25 {
		t.Fatalf("unexpected liquidity score %f", project.Scores[scoring.ComponentLiquidity])
	}
	if project.Scores[scoring.ComponentVolume] != 20 {
		t.Fatalf("unexpected volume score %f", project.Scores[scoring.ComponentVolume])
	}
	if project.Scores[scoring.ComponentMomentum] != 20 {
		t.Fatalf("unexpected momentum score %f", project.Scores[scoring.ComponentMomentum])
	}
	if project.Scores[scoring.ComponentSocial] != 15 {
		t.Fatalf("unexpected social score %f", project.Scores[scoring.ComponentSocial])
	}
	if project.Scores[scoring.ComponentGitHub] != 10 {
		t.Fatalf("unexpected github score %f", project.Scores[scoring.ComponentGitHub])
	}
	if project.TotalScore < 95 || project.TotalScore > 100 {
		t.Fatalf("unexpected total %f", project.TotalScore)
	}
}

func TestScoreEmptyProject(t *testing.T) {
	engine := scoring.NewEngine()
	project := engine.Score(scan.Project{Mint: "MINT2"})
	if project.TotalScore != 0 {
		t.Fatalf("empty project should score 0, got %f", project.TotalScore)
	}
}

func TestNegativeMomentumEarnsNothing(t *testing.T) {
	engine := scoring.NewEngine()
	project := engine.Score(scan.Project{
		Mint:     "MINT3",
		Change5m: -10,
		Change1h: -40,
	})
	if project.Scores[scoring.ComponentMomentum] != 0 {
		t.Fatalf("unexpected momentum score %f", project.Scores[scoring.ComponentMomentum])
	}
}

func TestRankSortsBestFirst(t *testing.T) {
	engine := scoring.NewEngine()
	ranked := engine.Rank([]scan.Project{
		{Mint: "WEAK"},
		{Mint: "STRONG", LiquidityUSD: 500_000, Volume24hUSD: 1_500_000,
			CreatedAt: time.Now().UTC().Add(-2 * time.Hour)},
	})
	if len(ranked) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(ranked))
	}
	if ranked[0].Mint != "STRONG" {
		t.Fatalf("expected STRONG ranked first, got %q", ranked[0].Mint)
	}
}

func TestApplyManiaBlends(t *testing.T) {
	project := scan.Project{Mint: "MINT4", TotalScore: 90}
	project = scoring.ApplyMania(project, 50)
	if project.TotalScore != 82 {
		t.Fatalf("expected 80/20 blend of 90 and 50 to be 82, got %f", project.TotalScore)
	}
	if project.Scores[scoring.ComponentMania] != 50 {
		t.Fatalf("mania component not recorded: %v", project.Scores)
	}
}
