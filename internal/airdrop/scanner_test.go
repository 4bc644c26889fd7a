package airdrop_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solscreener/internal/airdrop"
)

func TestScanMergesAndFilters(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"name": "Jupiter S2", "status": "active", "url": "https://jup.ag"},
			{"name": "Old Drop", "status": "ended"},
			{"name": "Soon Drop", "status": "Upcoming"}
		]`))
	}))
	defer first.Close()

	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"name": "jupiter s2", "status": "active"},
			{"name": "Fresh Drop", "status": "active"}
		]`))
	}))
	defer second.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	scanner := airdrop.NewScanner(
		[]string{first.URL, broken.URL, second.URL},
		http.DefaultClient, nil, time.Second)

	drops := scanner.Scan(context.Background())
	if len(drops) != 3 {
		t.Fatalf("expected 3 airdrops, got %v", drops)
	}
	if drops[0].Name != "Jupiter S2" || drops[0].Status != airdrop.StatusActive {
		t.Fatalf("unexpected first drop %+v", drops[0])
	}
	if drops[1].Status != airdrop.StatusUpcoming {
		t.Fatalf("status should be normalized, got %+v", drops[1])
	}
	if drops[2].Name != "Fresh Drop" {
		t.Fatalf("duplicate names should be merged, got %+v", drops[2])
	}
	if drops[0].Source == "" {
		t.Fatal("source host should be recorded")
	}
}
