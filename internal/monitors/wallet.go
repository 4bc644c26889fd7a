package monitors

import (
	"context"
	"fmt"
	"log/slog"

	"solscreener/internal/config"
	"solscreener/internal/logging"
	"solscreener/internal/services/helius"
	"solscreener/internal/services/solanarpc"
)

const walletSignatureLimit = 10

// WalletTracker watches a set of wallets for new activity. With a Helius
// key configured it reports human-readable transaction descriptions;
// otherwise it falls back to raw signature counts from Solana RPC.
type WalletTracker struct {
	rpc      *solanarpc.Client
	enhanced *helius.Client
	log      *slog.Logger
	wallets  []config.WalletWatch
	lastSeen map[string]string
}

// NewWalletTracker constructs a WalletTracker. A nil logger discards
// output; a nil enhanced client disables the Helius path.
func NewWalletTracker(rpc *solanarpc.Client, enhanced *helius.Client, logger *slog.Logger, wallets []config.WalletWatch) *WalletTracker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &WalletTracker{
		rpc:      rpc,
		enhanced: enhanced,
		log:      logging.NewComponentLogger(logger, "wallets"),
		wallets:  wallets,
		lastSeen: make(map[string]string),
	}
}

// Check returns alerts for wallet activity since the previous call. The
// first call per wallet only establishes the cursor.
func (t *WalletTracker) Check(ctx context.Context) []Alert {
	var alerts []Alert
	for _, wallet := range t.wallets {
		if ctx.Err() != nil {
			break
		}
		walletAlerts, err := t.checkWallet(ctx, wallet)
		if err != nil {
			t.log.Warn("wallet check failed",
				logging.String("wallet", wallet.Address),
				logging.Error(err))
			continue
		}
		alerts = append(alerts, walletAlerts...)
	}
	return alerts
}

func (t *WalletTracker) checkWallet(ctx context.Context, wallet config.WalletWatch) ([]Alert, error) {
	signatures, err := t.rpc.GetSignaturesForAddress(ctx, wallet.Address, walletSignatureLimit)
	if err != nil {
		return nil, err
	}
	if len(signatures) == 0 {
		return nil, nil
	}

	cursor, seen := t.lastSeen[wallet.Address]
	t.lastSeen[wallet.Address] = signatures[0].Signature
	if !seen {
		return nil, nil
	}

	fresh := 0
	for _, info := range signatures {
		if info.Signature == cursor {
			break
		}
		if !info.Failed() {
			fresh++
		}
	}
	if fresh == 0 {
		return nil, nil
	}

	if t.enhanced != nil && t.enhanced.Configured() {
		return t.describe(ctx, wallet, fresh)
	}
	return []Alert{{
		Kind:   KindWallet,
		Title:  fmt.Sprintf("%s active", wallet.Label),
		Detail: fmt.Sprintf("%d new transaction(s) on %s", fresh, wallet.Address),
	}}, nil
}

func (t *WalletTracker) describe(ctx context.Context, wallet config.WalletWatch, fresh int) ([]Alert, error) {
	transactions, err := t.enhanced.AddressTransactions(ctx, wallet.Address, fresh)
	if err != nil {
		// Enhanced lookup is best effort; fall back to the plain alert.
		t.log.Warn("enhanced lookup failed",
			logging.String("wallet", wallet.Address),
			logging.Error(err))
		return []Alert{{
			Kind:   KindWallet,
			Title:  fmt.Sprintf("%s active", wallet.Label),
			Detail: fmt.Sprintf("%d new transaction(s) on %s", fresh, wallet.Address),
		}}, nil
	}

	var alerts []Alert
	for i, tx := range transactions {
		if i >= fresh {
			break
		}
		detail := tx.Description
		if detail == "" {
			detail = fmt.Sprintf("%s transaction %s", tx.Type, tx.Signature)
		}
		alerts = append(alerts, Alert{
			Kind:   KindWallet,
			Title:  fmt.Sprintf("%s: %s", wallet.Label, tx.Type),
			Detail: detail,
		})
	}
	return alerts, nil
}
