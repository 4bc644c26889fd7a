package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"solscreener/internal/config"
)

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("SOLSCREENER_DATA_DIR", t.TempDir())

	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Screener.ScanIntervalMinutes != 60 {
		t.Fatalf("expected default scan interval 60, got %d", cfg.Screener.ScanIntervalMinutes)
	}
	if cfg.Services.DexScreenerBaseURL != "https://api.dexscreener.com" {
		t.Fatalf("unexpected dexscreener base url %q", cfg.Services.DexScreenerBaseURL)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"

[screener]
scan_interval_minutes = 30
top_n = 5

[notifications]
discord_webhook_url = "https://discord.com/api/webhooks/1/abc"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Screener.ScanIntervalMinutes != 30 {
		t.Fatalf("expected scan interval 30, got %d", cfg.Screener.ScanIntervalMinutes)
	}
	if cfg.Screener.TopN != 5 {
		t.Fatalf("expected top_n 5, got %d", cfg.Screener.TopN)
	}
	if cfg.Notifications.DiscordWebhookURL != "https://discord.com/api/webhooks/1/abc" {
		t.Fatalf("unexpected webhook %q", cfg.Notifications.DiscordWebhookURL)
	}
	if cfg.Paths.LogDir != filepath.Join(dir, "data", "logs") {
		t.Fatalf("expected log dir under data dir, got %q", cfg.Paths.LogDir)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SOLSCREENER_DATA_DIR", t.TempDir())
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/2/xyz")
	t.Setenv("HELIUS_API_KEY", "helius-key")
	t.Setenv("WATCH_WALLETS", "abc123:Smart Money A, def456")
	t.Setenv("SOL_RANGE_LOW", "150")
	t.Setenv("SOL_RANGE_HIGH", "220")
	t.Setenv("REALTIME_INTERVAL_MINUTES", "3")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Notifications.DiscordWebhookURL != "https://discord.com/api/webhooks/2/xyz" {
		t.Fatalf("webhook override not applied: %q", cfg.Notifications.DiscordWebhookURL)
	}
	if cfg.Services.HeliusAPIKey != "helius-key" {
		t.Fatalf("helius override not applied: %q", cfg.Services.HeliusAPIKey)
	}
	if !strings.Contains(cfg.SolanaRPC(), "helius-rpc.com") {
		t.Fatalf("expected helius rpc endpoint, got %q", cfg.SolanaRPC())
	}
	if cfg.Realtime.IntervalMinutes != 3 {
		t.Fatalf("expected realtime interval 3, got %d", cfg.Realtime.IntervalMinutes)
	}

	wallets := cfg.WatchWallets()
	if len(wallets) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(wallets))
	}
	if wallets[0].Label != "Smart Money A" {
		t.Fatalf("unexpected first label %q", wallets[0].Label)
	}
	if wallets[1].Label != "Wallet 2" {
		t.Fatalf("expected generated label, got %q", wallets[1].Label)
	}

	ranges := cfg.PriceRanges()
	if len(ranges) != 1 || ranges[0].Symbol != "SOL" {
		t.Fatalf("expected a single SOL range, got %+v", ranges)
	}
	if ranges[0].Low != 150 || ranges[0].High != 220 {
		t.Fatalf("unexpected range bounds %+v", ranges[0])
	}
}

func TestEnvironmentBeatsFileValues(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q

[notifications]
discord_webhook_url = "https://discord.com/api/webhooks/1/stale"

[services]
helius_api_key = "stale-key"
`, dir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/2/fresh")
	t.Setenv("HELIUS_API_KEY", "fresh-key")
	t.Setenv("SCAN_INTERVAL_MINUTES", "7")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Notifications.DiscordWebhookURL != "https://discord.com/api/webhooks/2/fresh" {
		t.Fatalf("env should beat file webhook, got %q", cfg.Notifications.DiscordWebhookURL)
	}
	if cfg.Services.HeliusAPIKey != "fresh-key" {
		t.Fatalf("env should beat file api key, got %q", cfg.Services.HeliusAPIKey)
	}
	if cfg.Screener.ScanIntervalMinutes != 7 {
		t.Fatalf("env should beat file interval, got %d", cfg.Screener.ScanIntervalMinutes)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"report hour out of range", func(c *config.Config) { c.Report.Hour = 24 }},
		{"scan interval too small", func(c *config.Config) { c.Screener.ScanIntervalMinutes = 1 }},
		{"telegram token without chat id", func(c *config.Config) {
			c.Notifications.TelegramBotToken = "token"
			c.Notifications.TelegramChatID = ""
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.DataDir = t.TempDir()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleWritesParsableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load cleanly, exists=%v err=%v", exists, err)
	}
}
