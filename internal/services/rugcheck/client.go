package rugcheck

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

const provider = "rugcheck"

const maxResponseBytes = 1 << 20

// Risk is a single named risk from a token report.
type Risk struct {
	Name        string `json:"name"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// Holder is an entry from the top holders list.
type Holder struct {
	Address string  `json:"address"`
	Pct     float64 `json:"pct"`
	Insider bool    `json:"insider"`
}

// Report is the summary risk report for a token mint.
type Report struct {
	Mint       string   `json:"mint"`
	Score      float64  `json:"score"`
	Risks      []Risk   `json:"risks"`
	TopHolders []Holder `json:"topHolders"`
}

// DangerCount returns how many risks carry the "danger" level.
func (r Report) DangerCount() int {
	count := 0
	for _, risk := range r.Risks {
		if strings.EqualFold(risk.Level, "danger") {
			count++
		}
	}
	return count
}

// WarningCount returns how many risks carry the "warn" or "warning" level.
func (r Report) WarningCount() int {
	count := 0
	for _, risk := range r.Risks {
		level := strings.ToLower(risk.Level)
		if level == "warn" || level == "warning" {
			count++
		}
	}
	return count
}

// TopHolderShare sums the percentage held by the ten largest holders.
func (r Report) TopHolderShare() float64 {
	total := 0.0
	for i, holder := range r.TopHolders {
		if i >= 10 {
			break
		}
		total += holder.Pct
	}
	return total
}

// Client calls the public RugCheck API.
type Client struct {
	baseURL string
	client  services.HTTPDoer
}

// NewClient constructs a RugCheck client. A nil doer falls back to a default
// http.Client with the given timeout.
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

// TokenReport fetches the summary risk report for a mint.
func (c *Client) TokenReport(ctx context.Context, mint string) (*Report, error) {
	mint = strings.TrimSpace(mint)
	if mint == "" {
		return nil, services.Wrap(services.ErrConfiguration, provider, "token report", "mint is required", nil)
	}

	endpoint := c.baseURL + "/tokens/" + url.PathEscape(mint) + "/report/summary"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, "token report", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, "token report", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.StatusError(provider, "token report", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, "token report", "read response", err)
	}

	var report Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "token report", "decode response", err)
	}
	if report.Mint == "" {
		report.Mint = mint
	}
	return &report, nil
}
