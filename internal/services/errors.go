package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrRateLimited   = errors.New("rate limited")
	ErrUpstream      = errors.New("upstream error")
	ErrTransient     = errors.New("transient failure")
)

// HTTPDoer is the HTTP client seam shared by all service clients.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Wrap builds an error message that includes provider context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, provider, operation, message string, err error) error {
	detail := buildDetail(provider, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// StatusError classifies an unexpected HTTP status from a provider.
func StatusError(provider, operation string, status int) error {
	marker := ErrUpstream
	switch {
	case status == http.StatusNotFound:
		marker = ErrNotFound
	case status == http.StatusTooManyRequests:
		marker = ErrRateLimited
	case status >= http.StatusInternalServerError:
		marker = ErrTransient
	}
	return Wrap(marker, provider, operation, fmt.Sprintf("unexpected status %d", status), nil)
}

// Retryable reports whether an error is worth retrying on the next cycle
// rather than flagging as a persistent configuration problem.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUpstream)
}

func buildDetail(provider, operation, message string) string {
	parts := make([]string, 0, 3)
	if provider = strings.TrimSpace(provider); provider != "" {
		parts = append(parts, provider)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
