package helius

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"solscreener/internal/services"
)

const provider = "helius"

const defaultBaseURL = "https://api.helius.xyz"

const maxResponseBytes = 8 << 20

// TokenTransfer is one token movement inside an enhanced transaction.
type TokenTransfer struct {
	FromUserAccount string  `json:"fromUserAccount"`
	ToUserAccount   string  `json:"toUserAccount"`
	Mint            string  `json:"mint"`
	TokenAmount     float64 `json:"tokenAmount"`
}

// NativeTransfer is one SOL movement inside an enhanced transaction.
type NativeTransfer struct {
	FromUserAccount string `json:"fromUserAccount"`
	ToUserAccount   string `json:"toUserAccount"`
	Amount          int64  `json:"amount"`
}

// EnhancedTransaction is a decoded transaction from the enhanced API.
type EnhancedTransaction struct {
	Signature       string           `json:"signature"`
	Type            string           `json:"type"`
	Source          string           `json:"source"`
	Description     string           `json:"description"`
	Timestamp       int64            `json:"timestamp"`
	Fee             int64            `json:"fee"`
	TokenTransfers  []TokenTransfer  `json:"tokenTransfers"`
	NativeTransfers []NativeTransfer `json:"nativeTransfers"`
}

// Time converts the transaction timestamp.
func (t EnhancedTransaction) Time() time.Time {
	if t.Timestamp <= 0 {
		return time.Time{}
	}
	return time.Unix(t.Timestamp, 0).UTC()
}

// Holder is one token account owner inside the on-chain account info.
type Holder struct {
	Owner  string  `json:"owner"`
	Amount float64 `json:"amount"`
}

// TokenMetadata is the on/off chain metadata for one mint.
type TokenMetadata struct {
	Account            string `json:"account"`
	OnChainAccountInfo struct {
		Holders []Holder `json:"holders"`
	} `json:"onChainAccountInfo"`
	OnChainMetadata struct {
		Metadata struct {
			Data struct {
				Name   string `json:"name"`
				Symbol string `json:"symbol"`
				URI    string `json:"uri"`
			} `json:"data"`
		} `json:"metadata"`
	} `json:"onChainMetadata"`
	OffChainMetadata struct {
		Metadata struct {
			Name        string `json:"name"`
			Symbol      string `json:"symbol"`
			Description string `json:"description"`
			Image       string `json:"image"`
		} `json:"metadata"`
	} `json:"offChainMetadata"`
}

// Name returns the best available token name.
func (m TokenMetadata) Name() string {
	if name := strings.TrimSpace(m.OnChainMetadata.Metadata.Data.Name); name != "" {
		return name
	}
	return strings.TrimSpace(m.OffChainMetadata.Metadata.Name)
}

// Symbol returns the best available token symbol.
func (m TokenMetadata) Symbol() string {
	if symbol := strings.TrimSpace(m.OnChainMetadata.Metadata.Data.Symbol); symbol != "" {
		return symbol
	}
	return strings.TrimSpace(m.OffChainMetadata.Metadata.Symbol)
}

// TopHolderShares computes the largest and top-five holder shares, in
// percent of what the twenty largest accounts hold together. The second
// return is false when the payload carries no usable holder data.
func (m TokenMetadata) TopHolderShares() (top1Pct, top5Pct float64, ok bool) {
	holders := make([]Holder, 0, len(m.OnChainAccountInfo.Holders))
	for _, holder := range m.OnChainAccountInfo.Holders {
		if holder.Amount > 0 {
			holders = append(holders, holder)
		}
	}
	if len(holders) == 0 {
		return 0, 0, false
	}
	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Amount > holders[j].Amount
	})
	if len(holders) > 20 {
		holders = holders[:20]
	}

	var total float64
	for _, holder := range holders {
		total += holder.Amount
	}
	if total <= 0 {
		return 0, 0, false
	}
	top1Pct = holders[0].Amount / total * 100
	for i, holder := range holders {
		if i >= 5 {
			break
		}
		top5Pct += holder.Amount / total * 100
	}
	return top1Pct, top5Pct, true
}

// Client calls the Helius v0 REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  services.HTTPDoer
}

// NewClient constructs a Helius client. An empty base URL uses the public
// endpoint; a nil doer falls back to a default http.Client with the given
// timeout.
func NewClient(baseURL, apiKey string, doer services.HTTPDoer, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if doer == nil {
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  doer,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// AddressTransactions lists recent enhanced transactions for an address,
// newest first. A non-positive limit defaults to 20.
func (c *Client) AddressTransactions(ctx context.Context, address string, limit int) ([]EnhancedTransaction, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, services.Wrap(services.ErrConfiguration, provider, "address transactions", "address is required", nil)
	}
	if !c.Configured() {
		return nil, services.Wrap(services.ErrConfiguration, provider, "address transactions", "api key is not configured", nil)
	}
	if limit <= 0 {
		limit = 20
	}

	endpoint := fmt.Sprintf("%s/v0/addresses/%s/transactions?api-key=%s&limit=%d",
		c.baseURL, url.PathEscape(address), url.QueryEscape(c.apiKey), limit)
	body, err := c.do(ctx, http.MethodGet, endpoint, nil, "address transactions")
	if err != nil {
		return nil, err
	}

	var transactions []EnhancedTransaction
	if err := json.Unmarshal(body, &transactions); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "address transactions", "decode response", err)
	}
	return transactions, nil
}

// TokenMetadataBatch fetches metadata for up to 100 mints per call.
func (c *Client) TokenMetadataBatch(ctx context.Context, mints []string) ([]TokenMetadata, error) {
	if len(mints) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, provider, "token metadata", "at least one mint is required", nil)
	}
	if !c.Configured() {
		return nil, services.Wrap(services.ErrConfiguration, provider, "token metadata", "api key is not configured", nil)
	}

	payload, err := json.Marshal(map[string]any{"mintAccounts": mints})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, "token metadata", "encode request", err)
	}

	endpoint := c.baseURL + "/v0/token-metadata?api-key=" + url.QueryEscape(c.apiKey)
	body, err := c.do(ctx, http.MethodPost, endpoint, payload, "token metadata")
	if err != nil {
		return nil, err
	}

	var metadata []TokenMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "token metadata", "decode response", err)
	}
	return metadata, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, operation string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, operation, "build request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
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
