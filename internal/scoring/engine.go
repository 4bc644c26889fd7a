package scoring

import (
	"math"
	"sort"
	"time"

	"solscreener/internal/scan"
)

// Score component keys as stored in Project.Scores.
const (
	ComponentLiquidity = "liquidity"
	ComponentVolume    = "volume"
	ComponentMomentum  = "momentum"
	ComponentSocial    = "social"
	ComponentGitHub    = "github"
	ComponentFreshness = "freshness"
	ComponentMania     = "mania"
)

// Component weights, summing to 100.
const (
	maxLiquidityPoints = 25.0
	maxVolumePoints    = 20.0
	maxMomentumPoints  = 20.0
	maxSocialPoints    = 15.0
	maxGitHubPoints    = 10.0
	maxFreshnessPoints = 10.0
)

// maniaBlend is the share of the final score taken from the mania score
// when mania scoring is enabled.
const maniaBlend = 0.2

// Engine computes composite scores for projects.
type Engine struct {
	now func() time.Time
}

// NewEngine constructs a scoring engine.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Score fills in the project's component scores and total, returning the
// updated copy. The total is 0-100.
func (e *Engine) Score(project scan.Project) scan.Project {
	now := e.now().UTC()
	scores := map[string]float64{
		ComponentLiquidity: liquidityScore(project.LiquidityUSD),
		ComponentVolume:    volumeScore(project.Volume24hUSD, project.LiquidityUSD),
		ComponentMomentum:  momentumScore(project.Change5m, project.Change1h),
		ComponentSocial:    socialScore(project),
		ComponentGitHub:    githubScore(project.GitHubRepo),
		ComponentFreshness: freshnessScore(project.Age(now)),
	}

	total := 0.0
	for _, value := range scores {
		total += value
	}

	project.Scores = scores
	project.TotalScore = round1(total)
	return project
}

// Rank scores every project and returns them sorted by total, best first.
func (e *Engine) Rank(projects []scan.Project) []scan.Project {
	ranked := make([]scan.Project, 0, len(projects))
	for _, project := range projects {
		ranked = append(ranked, e.Score(project))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	return ranked
}

// ApplyMania blends a mania score into a scored project, recording it as a
// component and reweighting the total 80/20.
func ApplyMania(project scan.Project, mania float64) scan.Project {
	mania = clamp(mania, 0, 100)
	if project.Scores == nil {
		project.Scores = make(map[string]float64)
	}
	project.Scores[ComponentMania] = round1(mania)
	project.TotalScore = round1((1-maniaBlend)*project.TotalScore + maniaBlend*mania)
	return project
}

// liquidityScore rewards pool depth on a log scale from $1k to $1M.
func liquidityScore(liquidityUSD float64) float64 {
	if liquidityUSD < 1000 {
		return 0
	}
	fraction := (math.Log10(liquidityUSD) - 3) / 3
	return round1(maxLiquidityPoints * clamp(fraction, 0, 1))
}

// volumeScore rewards 24h turnover relative to pool depth, saturating at 3x.
func volumeScore(volumeUSD, liquidityUSD float64) float64 {
	if liquidityUSD <= 0 || volumeUSD <= 0 {
		return 0
	}
	ratio := volumeUSD / liquidityUSD
	return round1(maxVolumePoints * clamp(ratio/3, 0, 1))
}

// momentumScore rewards positive short-term moves, saturating at +15% on
// 5m and +50% on 1h.
func momentumScore(change5m, change1h float64) float64 {
	short := clamp(change5m/15, 0, 1)
	hour := clamp(change1h/50, 0, 1)
	return round1(maxMomentumPoints / 2 * (short + hour))
}

func socialScore(project scan.Project) float64 {
	score := 0.0
	if project.Twitter != "" {
		score += 7
	}
	if project.Telegram != "" {
		score += 4
	}
	if project.Website != "" {
		score += 4
	}
	return clamp(score, 0, maxSocialPoints)
}

func githubScore(repo string) float64 {
	if repo == "" {
		return 0
	}
	return maxGitHubPoints
}

// freshnessScore decays linearly over 24h; unknown age earns nothing.
func freshnessScore(age time.Duration) float64 {
	if age <= 0 {
		return 0
	}
	fraction := 1 - age.Hours()/24
	return round1(maxFreshnessPoints * clamp(fraction, 0, 1))
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
