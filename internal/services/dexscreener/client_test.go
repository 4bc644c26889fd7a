package dexscreener_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solscreener/internal/services"
	"solscreener/internal/services/dexscreener"
)

const pairsJSON = `{
  "pairs": [
    {
      "chainId": "solana",
      "dexId": "raydium",
      "pairAddress": "PAIR1",
      "baseToken": {"address": "MINT1", "name": "Example", "symbol": "EXM"},
      "priceUsd": "0.0042",
      "volume": {"h24": 150000},
      "priceChange": {"m5": 2.5, "h1": 12.0, "h24": 80.0},
      "liquidity": {"usd": 52000},
      "pairCreatedAt": 1700000000000,
      "info": {"socials": [{"type": "twitter", "url": "https://x.com/example"}]}
    },
    {
      "chainId": "solana",
      "dexId": "orca",
      "pairAddress": "PAIR2",
      "baseToken": {"address": "MINT1", "name": "Example", "symbol": "EXM"},
      "priceUsd": "0.0041",
      "liquidity": {"usd": 98000}
    }
  ]
}`

func TestTokenPairsDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest/dex/tokens/MINT1" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(pairsJSON))
	}))
	defer server.Close()

	client := dexscreener.NewClient(server.URL, server.Client(), time.Second)
	pairs, err := client.TokenPairs(context.Background(), "MINT1")
	if err != nil {
		t.Fatalf("token pairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	first := pairs[0]
	if first.BaseToken.Symbol != "EXM" {
		t.Fatalf("unexpected symbol %q", first.BaseToken.Symbol)
	}
	if first.Price() != 0.0042 {
		t.Fatalf("unexpected price %f", first.Price())
	}
	if first.PriceChange.H24 != 80.0 {
		t.Fatalf("unexpected 24h change %f", first.PriceChange.H24)
	}
	if first.SocialURL("twitter") != "https://x.com/example" {
		t.Fatalf("unexpected social url %q", first.SocialURL("twitter"))
	}
	if got := first.CreatedAt(); got.IsZero() || got.Year() != 2023 {
		t.Fatalf("unexpected created at %v", got)
	}
}

func TestBestPairPrefersDeepestLiquidity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pairsJSON))
	}))
	defer server.Close()

	client := dexscreener.NewClient(server.URL, server.Client(), time.Second)
	best, err := client.BestPair(context.Background(), "MINT1")
	if err != nil {
		t.Fatalf("best pair: %v", err)
	}
	if best == nil || best.PairAddress != "PAIR2" {
		t.Fatalf("expected PAIR2 with deepest liquidity, got %+v", best)
	}
}

func TestBestPairReturnsNilWhenUnlisted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pairs": []}`))
	}))
	defer server.Close()

	client := dexscreener.NewClient(server.URL, server.Client(), time.Second)
	best, err := client.BestPair(context.Background(), "UNKNOWN")
	if err != nil {
		t.Fatalf("best pair: %v", err)
	}
	if best != nil {
		t.Fatalf("expected nil pair, got %+v", best)
	}
}

func TestLatestProfiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token-profiles/latest/v1" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[{"chainId":"solana","tokenAddress":"MINT2","description":"new token"}]`))
	}))
	defer server.Close()

	client := dexscreener.NewClient(server.URL, server.Client(), time.Second)
	profiles, err := client.LatestProfiles(context.Background())
	if err != nil {
		t.Fatalf("latest profiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].TokenAddress != "MINT2" {
		t.Fatalf("unexpected profiles %+v", profiles)
	}
}

func TestErrorStatusClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := dexscreener.NewClient(server.URL, server.Client(), time.Second)
	_, err := client.TokenPairs(context.Background(), "MINT1")
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected rate limited marker, got %v", err)
	}
}
