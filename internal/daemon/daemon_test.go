package daemon_test

import (
	"context"
	"path/filepath"
	"testing"

	"solscreener/internal/config"
	"solscreener/internal/daemon"
	"solscreener/internal/logging"
	"solscreener/internal/store"
	"solscreener/internal/workflow"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = base
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Screener.EnablePumpfun = false
	cfg.Notifications.Errors = false

	// Keep cycles offline; they fail fast and the daemon shrugs it off.
	unreachable := "http://127.0.0.1:1"
	cfg.Services.DexScreenerBaseURL = unreachable
	cfg.Services.RugCheckBaseURL = unreachable
	cfg.Services.CoinGeckoBaseURL = unreachable
	cfg.Services.MagicEdenBaseURL = unreachable
	cfg.Services.SolanaRPCURL = unreachable
	return &cfg
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	logger := logging.NewNop()
	mgr := workflow.NewManager(cfg, st, logger, nil)
	d, err := daemon.New(cfg, st, logger, mgr)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	status := d.Status()
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if status.LockFilePath == "" || status.DatabasePath == "" {
		t.Fatalf("incomplete status: %+v", status)
	}

	// Second start should fail
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestDaemonLockExcludesSecondInstance(t *testing.T) {
	cfg := testConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	logger := logging.NewNop()

	first, err := daemon.New(cfg, st, logger, workflow.NewManager(cfg, st, logger, nil))
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { first.Close() })

	ctx := context.Background()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("first start: %v", err)
	}

	second, err := daemon.New(cfg, st, logger, workflow.NewManager(cfg, st, logger, nil))
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("expected second instance to be rejected by the lock")
	}

	first.Stop()
}

func TestTestNotificationUnconfigured(t *testing.T) {
	cfg := testConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	logger := logging.NewNop()

	d, err := daemon.New(cfg, st, logger, workflow.NewManager(cfg, st, logger, nil))
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	sent, detail, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if sent {
		t.Fatal("nothing configured, nothing should be sent")
	}
	if detail == "" {
		t.Fatal("expected an explanatory detail")
	}
}
