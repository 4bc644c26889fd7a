package magiceden

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

const provider = "magiceden"

const maxResponseBytes = 1 << 20

const lamportsPerSOL = 1_000_000_000

// CollectionStats is the live stats block for one collection.
type CollectionStats struct {
	Symbol        string  `json:"symbol"`
	FloorPrice    float64 `json:"floorPrice"`
	ListedCount   int     `json:"listedCount"`
	VolumeAll     float64 `json:"volumeAll"`
	AvgPrice24Hr  float64 `json:"avgPrice24hr"`
}

// FloorSOL converts the lamport-denominated floor price to SOL.
func (s CollectionStats) FloorSOL() float64 {
	return s.FloorPrice / lamportsPerSOL
}

// Client calls the public Magic Eden API.
type Client struct {
	baseURL string
	client  services.HTTPDoer
}

// NewClient constructs a Magic Eden client. A nil doer falls back to a
// default http.Client with the given timeout.
func NewClient(baseURL string, doer services.HTTPDoer, timeout time.Duration) *Client {
	if doer == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  doer,
	}
}

// Stats fetches live stats for a collection symbol.
func (c *Client) Stats(ctx context.Context, symbol string) (*CollectionStats, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, services.Wrap(services.ErrConfiguration, provider, "collection stats", "collection symbol is required", nil)
	}

	endpoint := c.baseURL + "/v2/collections/" + url.PathEscape(symbol) + "/stats"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, "collection stats", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, "collection stats", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.StatusError(provider, "collection stats", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, "collection stats", "read response", err)
	}

	var stats CollectionStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "collection stats", "decode response", err)
	}
	if stats.Symbol == "" {
		stats.Symbol = symbol
	}
	return &stats, nil
}
