package solanarpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"solscreener/internal/services"
)

const provider = "solana-rpc"

const maxResponseBytes = 8 << 20

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Client is a JSON-RPC client for a Solana node.
type Client struct {
	endpoint string
	client   services.HTTPDoer
	nextID   atomic.Uint64
}

// NewClient constructs a Solana RPC client. A nil doer falls back to a
// default http.Client with the given timeout.
func NewClient(endpoint string, doer services.HTTPDoer, timeout time.Duration) *Client {
	if doer == nil {
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		client:   doer,
	}
}

// GetSignaturesForAddress lists recent transaction signatures touching the
// address, newest first. A non-positive limit defaults to 20.
func (c *Client) GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]SignatureInfo, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, services.Wrap(services.ErrConfiguration, provider, "get signatures", "address is required", nil)
	}
	if limit <= 0 {
		limit = 20
	}

	result, err := c.call(ctx, "getSignaturesForAddress", []any{
		address,
		map[string]any{"limit": limit},
	})
	if err != nil {
		return nil, err
	}

	var signatures []SignatureInfo
	if err := json.Unmarshal(result, &signatures); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "get signatures", "decode response", err)
	}
	return signatures, nil
}

// GetTransaction fetches one confirmed transaction in jsonParsed encoding.
// Returns ErrNotFound when the node does not have the transaction.
func (c *Client) GetTransaction(ctx context.Context, signature string) (*Transaction, error) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return nil, services.Wrap(services.ErrConfiguration, provider, "get transaction", "signature is required", nil)
	}

	result, err := c.call(ctx, "getTransaction", []any{
		signature,
		map[string]any{
			"encoding":                       "jsonParsed",
			"maxSupportedTransactionVersion": 0,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, services.Wrap(services.ErrNotFound, provider, "get transaction", "transaction not found", nil)
	}

	var tx Transaction
	if err := json.Unmarshal(result, &tx); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, "get transaction", "decode response", err)
	}
	return &tx, nil
}

func (c *Client) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if c.endpoint == "" {
		return nil, services.Wrap(services.ErrConfiguration, provider, method, "rpc endpoint is not configured", nil)
	}

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, method, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, provider, method, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, method, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.StatusError(provider, method, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, provider, method, "read response", err)
	}

	var rpc rpcResponse
	if err := json.Unmarshal(body, &rpc); err != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, method, "decode response", err)
	}
	if rpc.Error != nil {
		return nil, services.Wrap(services.ErrUpstream, provider, method,
			fmt.Sprintf("rpc error %d: %s", rpc.Error.Code, rpc.Error.Message), nil)
	}
	return rpc.Result, nil
}
