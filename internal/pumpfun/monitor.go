package pumpfun

import (
	"context"
	"log/slog"
	"time"

	"solscreener/internal/logging"
	"solscreener/internal/services"
	"solscreener/internal/services/solanarpc"
)

// On-chain addresses involved in Pump.fun graduations.
const (
	// MigrationAccount signs the transaction that moves a bonded token's
	// liquidity onto an AMM.
	MigrationAccount = "39azUYFWPz3VHgKCf3VChUwbpURdCHRxjWVowf5jUJjg"

	// RaydiumProgram is the Raydium AMM v4 program.
	RaydiumProgram = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"

	// PumpFunProgram is the Pump.fun bonding curve program; its presence
	// without Raydium means the token graduated to PumpSwap.
	PumpFunProgram = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"

	// WrappedSOL shows up in every migration's balances and is never the
	// graduated token.
	WrappedSOL = "So11111111111111111111111111111111111111112"
)

// Graduation destinations.
const (
	DestinationRaydium  = "raydium"
	DestinationPumpSwap = "pumpswap"
)

const defaultSignatureLimit = 25

// Graduation is one token observed leaving the bonding curve.
type Graduation struct {
	Mint        string
	Signature   string
	Destination string
	Time        time.Time
}

// Options configure a Monitor.
type Options struct {
	// SignatureLimit caps how many signatures one poll inspects.
	SignatureLimit int
	// LookupPause spaces out transaction lookups to stay under RPC rate
	// limits. Zero disables the pause.
	LookupPause time.Duration
}

// Monitor polls the migration account and reports new graduations.
// Not safe for concurrent use; each cycle owns one Monitor.
type Monitor struct {
	rpc           *solanarpc.Client
	log           *slog.Logger
	limit         int
	pause         time.Duration
	lastSignature string
}

// NewMonitor constructs a Monitor. A nil logger discards output.
func NewMonitor(rpc *solanarpc.Client, logger *slog.Logger, opts Options) *Monitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	limit := opts.SignatureLimit
	if limit <= 0 {
		limit = defaultSignatureLimit
	}
	return &Monitor{
		rpc:   rpc,
		log:   logging.NewComponentLogger(logger, "pumpfun"),
		limit: limit,
		pause: opts.LookupPause,
	}
}

// Poll returns graduations that happened since the previous call. The first
// call only establishes the cursor so historical migrations are not
// replayed as fresh.
func (m *Monitor) Poll(ctx context.Context) ([]Graduation, error) {
	signatures, err := m.rpc.GetSignaturesForAddress(ctx, MigrationAccount, m.limit)
	if err != nil {
		return nil, err
	}
	if len(signatures) == 0 {
		return nil, nil
	}

	if m.lastSignature == "" {
		m.lastSignature = signatures[0].Signature
		m.log.Debug("cursor established",
			logging.String("signature", m.lastSignature))
		return nil, nil
	}

	fresh := m.newSignatures(signatures)
	if len(fresh) == 0 {
		return nil, nil
	}
	m.lastSignature = signatures[0].Signature

	var graduations []Graduation
	// Oldest first so downstream consumers see chronological order.
	for i := len(fresh) - 1; i >= 0; i-- {
		info := fresh[i]
		if info.Failed() {
			continue
		}
		if err := m.sleep(ctx); err != nil {
			return graduations, err
		}

		tx, err := m.rpc.GetTransaction(ctx, info.Signature)
		if err != nil {
			if ctx.Err() != nil {
				return graduations, err
			}
			m.log.Warn("transaction lookup failed",
				logging.String("signature", info.Signature),
				logging.Error(err))
			continue
		}

		graduation, ok := classify(tx, info.Signature)
		if !ok {
			continue
		}
		m.log.Info("graduation detected",
			logging.String(logging.FieldMint, graduation.Mint),
			logging.String("destination", graduation.Destination))
		graduations = append(graduations, graduation)
	}
	return graduations, nil
}

func (m *Monitor) newSignatures(signatures []solanarpc.SignatureInfo) []solanarpc.SignatureInfo {
	for i, info := range signatures {
		if info.Signature == m.lastSignature {
			return signatures[:i]
		}
	}
	return signatures
}

func (m *Monitor) sleep(ctx context.Context) error {
	if m.pause <= 0 {
		return nil
	}
	timer := time.NewTimer(m.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return services.Wrap(services.ErrTransient, "pumpfun", "poll", "cancelled", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// classify extracts a graduation from a migration-account transaction.
// The account sees unrelated traffic too; a transaction that invokes
// neither AMM program is not a graduation.
func classify(tx *solanarpc.Transaction, signature string) (Graduation, bool) {
	mints := tx.PostMints(WrappedSOL)
	if len(mints) == 0 {
		return Graduation{}, false
	}

	var destination string
	switch {
	case tx.InvokedProgram(RaydiumProgram):
		destination = DestinationRaydium
	case tx.InvokedProgram(PumpFunProgram):
		destination = DestinationPumpSwap
	default:
		return Graduation{}, false
	}

	return Graduation{
		Mint:        mints[0],
		Signature:   signature,
		Destination: destination,
		Time:        tx.Time(),
	}, true
}
