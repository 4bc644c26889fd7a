package dexscreener

import (
	"encoding/json"
	"strconv"
	"time"
)

// Token identifies one side of a trading pair.
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Liquidity holds pooled liquidity figures for a pair.
type Liquidity struct {
	USD   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// PriceChange holds percentage moves over standard windows.
type PriceChange struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// Volume holds traded USD volume over standard windows.
type Volume struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// Social is a social link attached to a pair's info block.
type Social struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Website is a project website attached to a pair's info block.
type Website struct {
	URL string `json:"url"`
}

// PairInfo carries the optional metadata block.
type PairInfo struct {
	ImageURL string    `json:"imageUrl"`
	Websites []Website `json:"websites"`
	Socials  []Social  `json:"socials"`
}

// Pair is a DexScreener trading pair.
//
// priceUsd arrives as a JSON string and pairCreatedAt as Unix milliseconds;
// both are normalized by the accessors below.
type Pair struct {
	ChainID       string      `json:"chainId"`
	DexID         string      `json:"dexId"`
	URL           string      `json:"url"`
	PairAddress   string      `json:"pairAddress"`
	BaseToken     Token       `json:"baseToken"`
	QuoteToken    Token       `json:"quoteToken"`
	PriceUSD      string      `json:"priceUsd"`
	Volume        Volume      `json:"volume"`
	PriceChange   PriceChange `json:"priceChange"`
	Liquidity     Liquidity   `json:"liquidity"`
	FDV           float64     `json:"fdv"`
	MarketCap     float64     `json:"marketCap"`
	PairCreatedAt int64       `json:"pairCreatedAt"`
	Info          *PairInfo   `json:"info"`
}

// Price returns the USD price as a float, zero when absent or malformed.
func (p Pair) Price() float64 {
	if p.PriceUSD == "" {
		return 0
	}
	value, err := strconv.ParseFloat(p.PriceUSD, 64)
	if err != nil {
		return 0
	}
	return value
}

// CreatedAt converts the pair creation timestamp, zero time when absent.
func (p Pair) CreatedAt() time.Time {
	if p.PairCreatedAt <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(p.PairCreatedAt).UTC()
}

// SocialURL returns the first social link of the given type, empty if none.
func (p Pair) SocialURL(socialType string) string {
	if p.Info == nil {
		return ""
	}
	for _, social := range p.Info.Socials {
		if social.Type == socialType {
			return social.URL
		}
	}
	return ""
}

// WebsiteURL returns the first project website, empty if none.
func (p Pair) WebsiteURL() string {
	if p.Info == nil || len(p.Info.Websites) == 0 {
		return ""
	}
	return p.Info.Websites[0].URL
}

// TokenProfile is an entry from the latest token profiles feed.
type TokenProfile struct {
	ChainID      string `json:"chainId"`
	TokenAddress string `json:"tokenAddress"`
	URL          string `json:"url"`
	Description  string `json:"description"`
}

type pairsResponse struct {
	Pairs []Pair `json:"pairs"`
}

func decodePairs(data []byte) ([]Pair, error) {
	var resp pairsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return resp.Pairs, nil
}
