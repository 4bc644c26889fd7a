package rugcheck_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solscreener/internal/services"
	"solscreener/internal/services/rugcheck"
)

const reportJSON = `{
  "mint": "MINT1",
  "score": 420,
  "risks": [
    {"name": "Mint authority enabled", "level": "danger", "description": "tokens can be minted"},
    {"name": "Low liquidity", "level": "warn", "description": "pool is shallow"},
    {"name": "Top holders", "level": "warning", "description": "concentrated supply"}
  ],
  "topHolders": [
    {"address": "H1", "pct": 22.5},
    {"address": "H2", "pct": 11.0},
    {"address": "H3", "pct": 4.5}
  ]
}`

func TestTokenReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/MINT1/report/summary" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(reportJSON))
	}))
	defer server.Close()

	client := rugcheck.NewClient(server.URL, server.Client(), time.Second)
	report, err := client.TokenReport(context.Background(), "MINT1")
	if err != nil {
		t.Fatalf("token report: %v", err)
	}
	if report.Score != 420 {
		t.Fatalf("unexpected score %f", report.Score)
	}
	if report.DangerCount() != 1 {
		t.Fatalf("expected 1 danger risk, got %d", report.DangerCount())
	}
	if report.WarningCount() != 2 {
		t.Fatalf("expected 2 warning risks, got %d", report.WarningCount())
	}
	if got := report.TopHolderShare(); got != 38.0 {
		t.Fatalf("unexpected top holder share %f", got)
	}
}

func TestTokenReportRequiresMint(t *testing.T) {
	client := rugcheck.NewClient("http://localhost", nil, time.Second)
	_, err := client.TokenReport(context.Background(), "  ")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTokenReportNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := rugcheck.NewClient(server.URL, server.Client(), time.Second)
	_, err := client.TokenReport(context.Background(), "UNKNOWN")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found marker, got %v", err)
	}
}
