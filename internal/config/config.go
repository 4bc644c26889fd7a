package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration. DataDir is expected to sit on a
// persistent volume when deployed; the SQLite state database and logs live
// beneath it.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Screener contains settings for the main screening cycle.
type Screener struct {
	ScanIntervalMinutes int     `toml:"scan_interval_minutes"`
	MorningScanHour     int     `toml:"morning_scan_hour"`
	LookbackHours       int     `toml:"lookback_hours"`
	TopN                int     `toml:"top_n"`
	MinLiquidityUSD     float64 `toml:"min_liquidity_usd"`
	EnablePumpfun       bool    `toml:"enable_pumpfun"`
	EnableManiaScoring  bool    `toml:"enable_mania_scoring"`
}

// Realtime contains settings for the realtime monitoring cycle.
//
// WatchWallets entries use "address:label" form; a bare address gets a
// generated label. Range bounds of zero disable the corresponding asset.
type Realtime struct {
	IntervalMinutes int      `toml:"interval_minutes"`
	WatchWallets    []string `toml:"watch_wallets"`
	WatchTokens     []string `toml:"watch_tokens"`
	NFTCollections  []string `toml:"nft_collections"`
	SOLRangeLow     float64  `toml:"sol_range_low"`
	SOLRangeHigh    float64  `toml:"sol_range_high"`
	BTCRangeLow     float64  `toml:"btc_range_low"`
	BTCRangeHigh    float64  `toml:"btc_range_high"`
	ETHRangeLow     float64  `toml:"eth_range_low"`
	ETHRangeHigh    float64  `toml:"eth_range_high"`
}

// Report contains settings for the daily report cycle.
type Report struct {
	Hour int `toml:"hour"`
}

// Notifications contains configuration for the notification sinks. A sink
// with no credentials configured is skipped silently.
type Notifications struct {
	DiscordWebhookURL string `toml:"discord_webhook_url"`
	TelegramBotToken  string `toml:"telegram_bot_token"`
	TelegramChatID    string `toml:"telegram_chat_id"`
	NtfyTopic         string `toml:"ntfy_topic"`
	RequestTimeout    int    `toml:"request_timeout"`
	Errors            bool   `toml:"errors"`
}

// Services contains endpoints and credentials for the external data sources.
type Services struct {
	HeliusAPIKey       string   `toml:"helius_api_key"`
	SolanaRPCURL       string   `toml:"solana_rpc_url"`
	DexScreenerBaseURL string   `toml:"dexscreener_base_url"`
	RugCheckBaseURL    string   `toml:"rugcheck_base_url"`
	CoinGeckoBaseURL   string   `toml:"coingecko_base_url"`
	MagicEdenBaseURL   string   `toml:"magiceden_base_url"`
	AirdropFeeds       []string `toml:"airdrop_feeds"`
	RequestTimeout     int      `toml:"request_timeout"`
}

// Workflow contains daemon timing internals.
type Workflow struct {
	ErrorRetryInterval int `toml:"error_retry_interval"`
	CycleTimeout       int `toml:"cycle_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for solscreener.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories (persistent volume layout)
//   - Screener: main screening cycle cadence and thresholds
//   - Realtime: watch lists and price range bands
//   - Report: daily report hour
//   - Notifications: Discord webhook, Telegram bot, ntfy topic
//   - Services: external API endpoints and credentials
//   - Workflow: daemon retry/timeout internals
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Screener      Screener      `toml:"screener"`
	Realtime      Realtime      `toml:"realtime"`
	Report        Report        `toml:"report"`
	Notifications Notifications `toml:"notifications"`
	Services      Services      `toml:"services"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/solscreener/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and environment overrides applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("solscreener.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the SQLite state database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "screener.db")
}

// SolanaRPC returns the RPC endpoint to use, preferring Helius when an API
// key is configured.
func (c *Config) SolanaRPC() string {
	if key := strings.TrimSpace(c.Services.HeliusAPIKey); key != "" {
		return "https://mainnet.helius-rpc.com/?api-key=" + key
	}
	return c.Services.SolanaRPCURL
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// WalletWatch is a parsed watch_wallets entry.
type WalletWatch struct {
	Address string
	Label   string
}

// WatchWallets returns the parsed wallet watch list.
func (c *Config) WatchWallets() []WalletWatch {
	out := make([]WalletWatch, 0, len(c.Realtime.WatchWallets))
	for _, entry := range c.Realtime.WatchWallets {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		addr, label, found := strings.Cut(entry, ":")
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if !found || strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("Wallet %d", len(out)+1)
		}
		out = append(out, WalletWatch{Address: addr, Label: strings.TrimSpace(label)})
	}
	return out
}

// PriceRange is a configured alert band for one asset.
type PriceRange struct {
	CoinID string // CoinGecko identifier, e.g. "solana"
	Symbol string
	Low    float64
	High   float64
}

// PriceRanges returns the enabled price range bands. A band is enabled when
// both bounds are positive.
func (c *Config) PriceRanges() []PriceRange {
	bands := []PriceRange{
		{CoinID: "solana", Symbol: "SOL", Low: c.Realtime.SOLRangeLow, High: c.Realtime.SOLRangeHigh},
		{CoinID: "bitcoin", Symbol: "BTC", Low: c.Realtime.BTCRangeLow, High: c.Realtime.BTCRangeHigh},
		{CoinID: "ethereum", Symbol: "ETH", Low: c.Realtime.ETHRangeLow, High: c.Realtime.ETHRangeHigh},
	}
	out := bands[:0]
	for _, band := range bands {
		if band.Low > 0 && band.High > 0 {
			out = append(out, band)
		}
	}
	return out
}
