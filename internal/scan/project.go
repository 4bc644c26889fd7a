package scan

import (
	"strings"
	"time"

	"solscreener/internal/services/dexscreener"
)

// Source identifies where a project was discovered.
const (
	SourceDexScreener = "dexscreener"
	SourcePumpfun     = "pumpfun"
)

// Project is one candidate token assembled from market data. Scores is
// filled in by the scoring engine; everything else comes from discovery.
type Project struct {
	Mint         string
	Symbol       string
	Name         string
	PairAddress  string
	DexID        string
	Source       string
	PriceUSD     float64
	LiquidityUSD float64
	Volume24hUSD float64
	Change5m     float64
	Change1h     float64
	Change24h    float64
	MarketCapUSD float64
	Twitter      string
	Telegram     string
	Website      string
	GitHubRepo   string
	PairURL      string
	CreatedAt    time.Time

	Scores     map[string]float64
	TotalScore float64
}

// Age returns how long the project's pair has existed at the given instant.
func (p Project) Age(now time.Time) time.Duration {
	if p.CreatedAt.IsZero() {
		return 0
	}
	return now.Sub(p.CreatedAt)
}

// HasSocials reports whether any social or website link is known.
func (p Project) HasSocials() bool {
	return p.Twitter != "" || p.Telegram != "" || p.Website != ""
}

// ProjectFromPair maps a DexScreener pair onto a Project.
func ProjectFromPair(pair dexscreener.Pair) Project {
	project := Project{
		Mint:         pair.BaseToken.Address,
		Symbol:       pair.BaseToken.Symbol,
		Name:         pair.BaseToken.Name,
		PairAddress:  pair.PairAddress,
		DexID:        pair.DexID,
		Source:       SourceDexScreener,
		PriceUSD:     pair.Price(),
		LiquidityUSD: pair.Liquidity.USD,
		Volume24hUSD: pair.Volume.H24,
		Change5m:     pair.PriceChange.M5,
		Change1h:     pair.PriceChange.H1,
		Change24h:    pair.PriceChange.H24,
		MarketCapUSD: pair.MarketCap,
		Twitter:      pair.SocialURL("twitter"),
		Telegram:     pair.SocialURL("telegram"),
		Website:      pair.WebsiteURL(),
		PairURL:      pair.URL,
		CreatedAt:    pair.CreatedAt(),
	}
	if project.GitHubRepo == "" {
		project.GitHubRepo = githubLink(project.Website)
	}
	return project
}

func githubLink(website string) string {
	if strings.Contains(strings.ToLower(website), "github.com/") {
		return website
	}
	return ""
}
