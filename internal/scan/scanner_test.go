package scan_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"solscreener/internal/scan"
	"solscreener/internal/services/dexscreener"
)

func pairJSON(mint, symbol string, liquidity float64, createdAt time.Time) string {
	return fmt.Sprintf(`{
		"chainId": "solana",
		"dexId": "raydium",
		"pairAddress": "PAIR-%s",
		"baseToken": {"address": %q, "name": "Token %s", "symbol": %q},
		"priceUsd": "0.01",
		"volume": {"h24": 50000},
		"priceChange": {"m5": 1, "h1": 5, "h24": 20},
		"liquidity": {"usd": %f},
		"pairCreatedAt": %d
	}`, mint, mint, symbol, symbol, liquidity, createdAt.UnixMilli())
}

func TestScanFiltersAgeAndLiquidity(t *testing.T) {
	now := time.Now().UTC()
	fresh := now.Add(-2 * time.Hour)
	stale := now.Add(-48 * time.Hour)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/token-profiles/latest/v1":
			w.Write([]byte(`[
				{"chainId": "solana", "tokenAddress": "GOOD"},
				{"chainId": "solana", "tokenAddress": "THIN"},
				{"chainId": "solana", "tokenAddress": "OLD"},
				{"chainId": "ethereum", "tokenAddress": "ETH1"},
				{"chainId": "solana", "tokenAddress": "GOOD"}
			]`))
		case strings.HasPrefix(r.URL.Path, "/latest/dex/tokens/"):
			mint := strings.TrimPrefix(r.URL.Path, "/latest/dex/tokens/")
			var body string
			switch mint {
			case "GOOD":
				body = pairJSON("GOOD", "GG", 25000, fresh)
			case "THIN":
				body = pairJSON("THIN", "TH", 500, fresh)
			case "OLD":
				body = pairJSON("OLD", "OL", 25000, stale)
			default:
				t.Fatalf("unexpected mint %q", mint)
			}
			fmt.Fprintf(w, `{"pairs": [%s]}`, body)
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	dex := dexscreener.NewClient(server.URL, server.Client(), time.Second)
	scanner := scan.NewScanner(dex, nil, scan.Options{
		MinLiquidityUSD: 10000,
		Lookback:        24 * time.Hour,
	})

	projects, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	project := projects[0]
	if project.Mint != "GOOD" || project.Symbol != "GG" {
		t.Fatalf("unexpected project %+v", project)
	}
	if project.Source != scan.SourceDexScreener {
		t.Fatalf("unexpected source %q", project.Source)
	}
}

func TestProjectFromPairMapsSocials(t *testing.T) {
	pair := dexscreener.Pair{
		ChainID:       "solana",
		PairAddress:   "PAIR1",
		BaseToken:     dexscreener.Token{Address: "MINT1", Name: "Example", Symbol: "EXM"},
		PriceUSD:      "0.5",
		PairCreatedAt: time.Now().Add(-time.Hour).UnixMilli(),
		Info: &dexscreener.PairInfo{
			Websites: []dexscreener.Website{{URL: "https://github.com/example/token"}},
			Socials: []dexscreener.Social{
				{Type: "twitter", URL: "https://x.com/example"},
				{Type: "telegram", URL: "https://t.me/example"},
			},
		},
	}

	project := scan.ProjectFromPair(pair)
	if project.Twitter != "https://x.com/example" {
		t.Fatalf("unexpected twitter %q", project.Twitter)
	}
	if project.Telegram != "https://t.me/example" {
		t.Fatalf("unexpected telegram %q", project.Telegram)
	}
	if project.GitHubRepo != "https://github.com/example/token" {
		t.Fatalf("expected github link to be picked up, got %q", project.GitHubRepo)
	}
	if !project.HasSocials() {
		t.Fatal("expected socials to be reported")
	}
	if project.PriceUSD != 0.5 {
		t.Fatalf("unexpected price %f", project.PriceUSD)
	}
}
