package services_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"solscreener/internal/services"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	inner := errors.New("connection refused")
	err := services.Wrap(services.ErrTransient, "dexscreener", "new pairs", "request failed", inner)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatal("expected transient marker")
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected inner error to be preserved")
	}
	if !strings.Contains(err.Error(), "dexscreener: new pairs: request failed") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "rugcheck", "report", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatal("nil marker should default to transient")
	}
}

func TestStatusErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		marker error
	}{
		{http.StatusNotFound, services.ErrNotFound},
		{http.StatusTooManyRequests, services.ErrRateLimited},
		{http.StatusBadGateway, services.ErrTransient},
		{http.StatusForbidden, services.ErrUpstream},
	}
	for _, tc := range tests {
		err := services.StatusError("coingecko", "price", tc.status)
		if !errors.Is(err, tc.marker) {
			t.Fatalf("status %d: expected marker %v, got %v", tc.status, tc.marker, err)
		}
	}
}

func TestRetryable(t *testing.T) {
	if !services.Retryable(services.Wrap(services.ErrRateLimited, "p", "op", "", nil)) {
		t.Fatal("rate limited should be retryable")
	}
	if services.Retryable(services.Wrap(services.ErrConfiguration, "p", "op", "", nil)) {
		t.Fatal("configuration errors are not retryable")
	}
}
