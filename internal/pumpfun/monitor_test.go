package pumpfun_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"solscreener/internal/pumpfun"
	"solscreener/internal/services/solanarpc"
)

type rpcHandler struct {
	polls        atomic.Int64
	transactions map[string]string
}

func (h *rpcHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
		Params []any  `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch req.Method {
	case "getSignaturesForAddress":
		var result string
		if h.polls.Add(1) == 1 {
			result = `[{"signature": "OLD1", "slot": 90, "blockTime": 1699999000, "err": null}]`
		} else {
			result = `[
				{"signature": "NEW2", "slot": 102, "blockTime": 1700000200, "err": null},
				{"signature": "FAILED", "slot": 101, "blockTime": 1700000100, "err": {"InstructionError": [0, "Custom"]}},
				{"signature": "NEW1", "slot": 100, "blockTime": 1700000000, "err": null},
				{"signature": "OLD1", "slot": 90, "blockTime": 1699999000, "err": null}
			]`
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":%s}`, result)
	case "getTransaction":
		signature, _ := req.Params[0].(string)
		body, ok := h.transactions[signature]
		if !ok {
			body = "null"
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":%s}`, body)
	default:
		http.Error(w, "unexpected method "+req.Method, http.StatusBadRequest)
	}
}

func migrationTx(mint, program string) string {
	return fmt.Sprintf(`{
		"slot": 100,
		"blockTime": 1700000000,
		"meta": {
			"err": null,
			"postTokenBalances": [
				{"accountIndex": 1, "mint": "So11111111111111111111111111111111111111112", "uiTokenAmount": {"uiAmount": 80}},
				{"accountIndex": 2, "mint": %q, "uiTokenAmount": {"uiAmount": 200000000}}
			],
			"innerInstructions": [{"index": 0, "instructions": [{"programId": %q}]}]
		},
		"transaction": {
			"signatures": ["x"],
			"message": {"accountKeys": [], "instructions": [{"programId": "ComputeBudget111111111111111111111111111111"}]}
		}
	}`, mint, program)
}

func TestPollDetectsGraduations(t *testing.T) {
	handler := &rpcHandler{transactions: map[string]string{
		"NEW1": migrationTx("MINTA", pumpfun.RaydiumProgram),
		"NEW2": migrationTx("MINTB", pumpfun.PumpFunProgram),
	}}
	server := httptest.NewServer(handler)
	defer server.Close()

	rpc := solanarpc.NewClient(server.URL, server.Client(), time.Second)
	monitor := pumpfun.NewMonitor(rpc, nil, pumpfun.Options{})

	// First poll only sets the cursor.
	graduations, err := monitor.Poll(context.Background())
	if err != nil {
		t.Fatalf("first poll: %v", err)
	}
	if len(graduations) != 0 {
		t.Fatalf("first poll should not replay history, got %v", graduations)
	}

	graduations, err = monitor.Poll(context.Background())
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if len(graduations) != 2 {
		t.Fatalf("expected 2 graduations, got %d", len(graduations))
	}

	// Chronological order, oldest first, failed transaction skipped.
	if graduations[0].Mint != "MINTA" || graduations[0].Destination != pumpfun.DestinationRaydium {
		t.Fatalf("unexpected first graduation %+v", graduations[0])
	}
	if graduations[1].Mint != "MINTB" || graduations[1].Destination != pumpfun.DestinationPumpSwap {
		t.Fatalf("unexpected second graduation %+v", graduations[1])
	}
}

func TestPollSkipsTransactionsWithoutAMMProgram(t *testing.T) {
	// The migration account sees unrelated traffic (compute-budget-only
	// transactions and the like); those carry token balances but invoke no
	// AMM program and must not surface as graduations.
	handler := &rpcHandler{transactions: map[string]string{
		"NEW1": migrationTx("MINTA", "ComputeBudget111111111111111111111111111111"),
		"NEW2": migrationTx("MINTB", pumpfun.RaydiumProgram),
	}}
	server := httptest.NewServer(handler)
	defer server.Close()

	rpc := solanarpc.NewClient(server.URL, server.Client(), time.Second)
	monitor := pumpfun.NewMonitor(rpc, nil, pumpfun.Options{})

	if _, err := monitor.Poll(context.Background()); err != nil {
		t.Fatalf("first poll: %v", err)
	}
	graduations, err := monitor.Poll(context.Background())
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if len(graduations) != 1 {
		t.Fatalf("expected only the Raydium migration, got %v", graduations)
	}
	if graduations[0].Mint != "MINTB" {
		t.Fatalf("unexpected graduation %+v", graduations[0])
	}
}

func TestPollStopsAtCursor(t *testing.T) {
	handler := &rpcHandler{transactions: map[string]string{
		"NEW1": migrationTx("MINTA", pumpfun.RaydiumProgram),
		"NEW2": migrationTx("MINTB", pumpfun.RaydiumProgram),
	}}
	server := httptest.NewServer(handler)
	defer server.Close()

	rpc := solanarpc.NewClient(server.URL, server.Client(), time.Second)
	monitor := pumpfun.NewMonitor(rpc, nil, pumpfun.Options{})

	if _, err := monitor.Poll(context.Background()); err != nil {
		t.Fatalf("first poll: %v", err)
	}
	if _, err := monitor.Poll(context.Background()); err != nil {
		t.Fatalf("second poll: %v", err)
	}

	// Third poll sees the same newest signature and must report nothing.
	graduations, err := monitor.Poll(context.Background())
	if err != nil {
		t.Fatalf("third poll: %v", err)
	}
	if len(graduations) != 0 {
		t.Fatalf("expected no new graduations, got %v", graduations)
	}
}
