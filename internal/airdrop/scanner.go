package airdrop

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solscreener/internal/logging"
	"solscreener/internal/services"
)

const provider = "airdrop-feed"

const maxResponseBytes = 1 << 20

// maxItems caps the merged list across all feeds.
const maxItems = 15

// Airdrop statuses the scanner keeps.
const (
	StatusActive   = "active"
	StatusUpcoming = "upcoming"
	StatusEnded    = "ended"
)

// Airdrop is one entry from a feed.
type Airdrop struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"-"`
}

// Scanner fetches and merges configured airdrop feeds.
type Scanner struct {
	client services.HTTPDoer
	log    *slog.Logger
	feeds  []string
}

// NewScanner constructs a Scanner. A nil doer falls back to a default
// http.Client with the given timeout; a nil logger discards output.
func NewScanner(feeds []string, doer services.HTTPDoer, logger *slog.Logger, timeout time.Duration) *Scanner {
	if doer == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{
		client: doer,
		log:    logging.NewComponentLogger(logger, "airdrops"),
		feeds:  feeds,
	}
}

// Scan fetches every feed and returns active and upcoming airdrops, capped
// at fifteen entries. A failing feed is logged and skipped.
func (s *Scanner) Scan(ctx context.Context) []Airdrop {
	var merged []Airdrop
	seen := make(map[string]struct{})
	for _, feed := range s.feeds {
		if ctx.Err() != nil {
			break
		}
		items, err := s.fetch(ctx, feed)
		if err != nil {
			s.log.Warn("feed fetch failed",
				logging.String("feed", feed),
				logging.Error(err))
			continue
		}
		for _, item := range items {
			if item.Name == "" {
				continue
			}
			status := strings.ToLower(strings.TrimSpace(item.Status))
			if status != StatusActive && status != StatusUpcoming {
				continue
			}
			key := strings.ToLower(item.Name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			item.Status = status
			merged = append(merged, item)
			if len(merged) >= maxItems {
				return merged
			}
		}
	}
	return merged
}

func (s *Scanner) fetch(ctx context.Context, feed string) ([]Airdrop, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, "fetch", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, "fetch", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.StatusError(provider, "fetch", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, "fetch", "read response", err)
	}

	var items []Airdrop
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "fetch", "decode response", err)
	}
	source := feed
	if parsed, err := url.Parse(feed); err == nil && parsed.Host != "" {
		source = parsed.Host
	}
	for i := range items {
		items[i].Source = source
	}
	return items, nil
}
