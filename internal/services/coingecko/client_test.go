package coingecko_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solscreener/internal/services"
	"solscreener/internal/services/coingecko"
)

func TestSimplePrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("ids") != "solana,bitcoin" {
			t.Fatalf("unexpected ids %q", query.Get("ids"))
		}
		if query.Get("include_24hr_change") != "true" {
			t.Fatal("expected 24h change to be requested")
		}
		w.Write([]byte(`{
			"solana": {"usd": 152.34, "usd_24h_change": -3.1},
			"bitcoin": {"usd": 64250.0, "usd_24h_change": 1.2}
		}`))
	}))
	defer server.Close()

	client := coingecko.NewClient(server.URL, server.Client(), time.Second)
	quotes, err := client.SimplePrices(context.Background(), []string{"solana", "bitcoin"})
	if err != nil {
		t.Fatalf("simple prices: %v", err)
	}
	sol, ok := quotes["solana"]
	if !ok {
		t.Fatal("missing solana quote")
	}
	if sol.USD != 152.34 || sol.Change24h != -3.1 {
		t.Fatalf("unexpected solana quote %+v", sol)
	}
}

func TestSimplePricesRequiresIDs(t *testing.T) {
	client := coingecko.NewClient("http://localhost", nil, time.Second)
	_, err := client.SimplePrices(context.Background(), nil)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSimplePricesRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := coingecko.NewClient(server.URL, server.Client(), time.Second)
	_, err := client.SimplePrices(context.Background(), []string{"solana"})
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected rate limited marker, got %v", err)
	}
}
