package dexscreener

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solscreener/internal/services"
)

const provider = "dexscreener"

const maxResponseBytes = 4 << 20

// Client calls the public DexScreener API.
type Client struct {
	baseURL   string
	client    services.HTTPDoer
	userAgent string
}

// NewClient constructs a DexScreener client. A nil doer falls back to a
// default http.Client with the given timeout.
func NewClient(baseURL string, doer services.HTTPDoer, timeout time.Duration) *Client {
	if doer == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    doer,
		userAgent: "solscreener/1.0",
	}
}

// LatestProfiles returns the newest token profiles across all chains.
// Callers filter by chain.
func (c *Client) LatestProfiles(ctx context.Context) ([]TokenProfile, error) {
	body, err := c.get(ctx, "/token-profiles/latest/v1", "latest profiles")
	if err != nil {
		return nil, err
	}
	var profiles []TokenProfile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "latest profiles", "decode response", err)
	}
	return profiles, nil
}

// TokenPairs returns all pairs trading the given token, best pair first.
func (c *Client) TokenPairs(ctx context.Context, tokenAddress string) ([]Pair, error) {
	tokenAddress = strings.TrimSpace(tokenAddress)
	if tokenAddress == "" {
		return nil, services.Wrap(services.ErrConfiguration, provider, "token pairs", "token address is required", nil)
	}
	body, err := c.get(ctx, "/latest/dex/tokens/"+url.PathEscape(tokenAddress), "token pairs")
	if err != nil {
		return nil, err
	}
	pairs, err := decodePairs(body)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "token pairs", "decode response", err)
	}
	return pairs, nil
}

// BestPair returns the most liquid pair for a token, nil when unlisted.
func (c *Client) BestPair(ctx context.Context, tokenAddress string) (*Pair, error) {
	pairs, err := c.TokenPairs(ctx, tokenAddress)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	best := pairs[0]
	for _, pair := range pairs[1:] {
		if pair.Liquidity.USD > best.Liquidity.USD {
			best = pair
		}
	}
	return &best, nil
}

// Search runs a free-text pair search.
func (c *Client) Search(ctx context.Context, query string) ([]Pair, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrConfiguration, provider, "search", "query is required", nil)
	}
	body, err := c.get(ctx, "/latest/dex/search?q="+url.QueryEscape(query), "search")
	if err != nil {
		return nil, err
	}
	pairs, err := decodePairs(body)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "search", "decode response", err)
	}
	return pairs, nil
}

func (c *Client) get(ctx context.Context, path, operation string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, operation, "build request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, operation, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.StatusError(provider, operation, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, operation, "read response", err)
	}
	return body, nil
}
