package coingecko

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

const provider = "coingecko"

const maxResponseBytes = 1 << 20

// Quote is the USD price and 24h change for one coin.
type Quote struct {
	USD       float64 `json:"usd"`
	Change24h float64 `json:"usd_24h_change"`
}

// Client calls the public CoinGecko API.
type Client struct {
	baseURL string
	client  services.HTTPDoer
}

// NewClient constructs a CoinGecko client. A nil doer falls back to a
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

// SimplePrices fetches USD quotes for the given coin ids, keyed by id.
// Ids absent from the response are simply missing from the map.
func (c *Client) SimplePrices(ctx context.Context, ids []string) (map[string]Quote, error) {
	if len(ids) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, provider, "simple prices", "at least one coin id is required", nil)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")
	query.Set("include_24hr_change", "true")

	endpoint := c.baseURL + "/simple/price?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, "simple prices", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, "simple prices", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.StatusError(provider, "simple prices", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, "simple prices", "read response", err)
	}

	quotes := make(map[string]Quote)
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "simple prices", "decode response", err)
	}
	return quotes, nil
}
