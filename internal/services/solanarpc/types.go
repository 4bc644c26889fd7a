package solanarpc

import (
	"encoding/json"
	"time"
)

// SignatureInfo is one entry from getSignaturesForAddress.
type SignatureInfo struct {
	Signature string          `json:"signature"`
	Slot      uint64          `json:"slot"`
	BlockTime *int64          `json:"blockTime"`
	Err       json.RawMessage `json:"err"`
	Memo      string          `json:"memo"`
}

// Failed reports whether the transaction errored on chain.
func (s SignatureInfo) Failed() bool {
	return len(s.Err) > 0 && string(s.Err) != "null"
}

// Time converts the block time, zero time when the node omitted it.
func (s SignatureInfo) Time() time.Time {
	if s.BlockTime == nil || *s.BlockTime <= 0 {
		return time.Time{}
	}
	return time.Unix(*s.BlockTime, 0).UTC()
}

// Instruction is a jsonParsed instruction, outer or inner.
type Instruction struct {
	ProgramID string          `json:"programId"`
	Program   string          `json:"program"`
	Parsed    json.RawMessage `json:"parsed"`
}

// InnerInstructionSet groups the inner instructions of one outer instruction.
type InnerInstructionSet struct {
	Index        int           `json:"index"`
	Instructions []Instruction `json:"instructions"`
}

// TokenAmount is the ui-normalized amount inside a token balance.
type TokenAmount struct {
	Amount   string  `json:"amount"`
	Decimals int     `json:"decimals"`
	UIAmount float64 `json:"uiAmount"`
}

// TokenBalance is a pre- or post-transaction token balance entry.
type TokenBalance struct {
	AccountIndex int         `json:"accountIndex"`
	Mint         string      `json:"mint"`
	Owner        string      `json:"owner"`
	UIAmount     TokenAmount `json:"uiTokenAmount"`
}

// TransactionMeta is the status metadata of a confirmed transaction.
type TransactionMeta struct {
	Err               json.RawMessage       `json:"err"`
	Fee               uint64                `json:"fee"`
	PreTokenBalances  []TokenBalance        `json:"preTokenBalances"`
	PostTokenBalances []TokenBalance        `json:"postTokenBalances"`
	InnerInstructions []InnerInstructionSet `json:"innerInstructions"`
}

// Message is the parsed transaction message.
type Message struct {
	AccountKeys []struct {
		Pubkey   string `json:"pubkey"`
		Signer   bool   `json:"signer"`
		Writable bool   `json:"writable"`
	} `json:"accountKeys"`
	Instructions []Instruction `json:"instructions"`
}

// Transaction is a confirmed transaction in jsonParsed encoding.
type Transaction struct {
	Slot        int64            `json:"slot"`
	BlockTime   *int64           `json:"blockTime"`
	Meta        *TransactionMeta `json:"meta"`
	Transaction struct {
		Signatures []string `json:"signatures"`
		Message    Message  `json:"message"`
	} `json:"transaction"`
}

// ProgramIDs collects every program id the transaction invoked, outer
// instructions first, then inner.
func (t *Transaction) ProgramIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, inst := range t.Transaction.Message.Instructions {
		add(inst.ProgramID)
	}
	if t.Meta != nil {
		for _, set := range t.Meta.InnerInstructions {
			for _, inst := range set.Instructions {
				add(inst.ProgramID)
			}
		}
	}
	return ids
}

// InvokedProgram reports whether the transaction touched the given program,
// in either an outer or an inner instruction.
func (t *Transaction) InvokedProgram(programID string) bool {
	for _, id := range t.ProgramIDs() {
		if id == programID {
			return true
		}
	}
	return false
}

// PostMints returns the distinct mints present in postTokenBalances,
// skipping any listed in exclude.
func (t *Transaction) PostMints(exclude ...string) []string {
	if t.Meta == nil {
		return nil
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, mint := range exclude {
		skip[mint] = struct{}{}
	}
	seen := make(map[string]struct{})
	var mints []string
	for _, balance := range t.Meta.PostTokenBalances {
		if balance.Mint == "" {
			continue
		}
		if _, ok := skip[balance.Mint]; ok {
			continue
		}
		if _, ok := seen[balance.Mint]; ok {
			continue
		}
		seen[balance.Mint] = struct{}{}
		mints = append(mints, balance.Mint)
	}
	return mints
}

// Time converts the block time, zero time when the node omitted it.
func (t *Transaction) Time() time.Time {
	if t.BlockTime == nil || *t.BlockTime <= 0 {
		return time.Time{}
	}
	return time.Unix(*t.BlockTime, 0).UTC()
}
