package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScreener()
	c.normalizeRealtime()
	c.normalizeReport()
	c.normalizeNotifications()
	c.normalizeServices()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value := strings.TrimSpace(os.Getenv("SOLSCREENER_DATA_DIR")); value != "" {
		c.Paths.DataDir = value
		c.Paths.LogDir = ""
	}

	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = c.Paths.DataDir + "/logs"
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScreener() {
	envInt("SCAN_INTERVAL_MINUTES", &c.Screener.ScanIntervalMinutes)
	envInt("MORNING_SCAN_HOUR", &c.Screener.MorningScanHour)
	if c.Screener.ScanIntervalMinutes <= 0 {
		c.Screener.ScanIntervalMinutes = defaultScanIntervalMinutes
	}
	if c.Screener.LookbackHours <= 0 {
		c.Screener.LookbackHours = defaultLookbackHours
	}
	if c.Screener.TopN <= 0 {
		c.Screener.TopN = defaultTopN
	}
	if c.Screener.MinLiquidityUSD < 0 {
		c.Screener.MinLiquidityUSD = 0
	}
}

func (c *Config) normalizeRealtime() {
	envInt("REALTIME_INTERVAL_MINUTES", &c.Realtime.IntervalMinutes)
	if c.Realtime.IntervalMinutes <= 0 {
		c.Realtime.IntervalMinutes = defaultRealtimeInterval
	}
	if raw := strings.TrimSpace(os.Getenv("WATCH_WALLETS")); raw != "" {
		c.Realtime.WatchWallets = splitList(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("WATCH_TOKENS")); raw != "" {
		c.Realtime.WatchTokens = splitList(raw)
	}
	envFloat("SOL_RANGE_LOW", &c.Realtime.SOLRangeLow)
	envFloat("SOL_RANGE_HIGH", &c.Realtime.SOLRangeHigh)
	envFloat("BTC_RANGE_LOW", &c.Realtime.BTCRangeLow)
	envFloat("BTC_RANGE_HIGH", &c.Realtime.BTCRangeHigh)
	envFloat("ETH_RANGE_LOW", &c.Realtime.ETHRangeLow)
	envFloat("ETH_RANGE_HIGH", &c.Realtime.ETHRangeHigh)

	c.Realtime.WatchTokens = trimList(c.Realtime.WatchTokens)
	c.Realtime.WatchWallets = trimList(c.Realtime.WatchWallets)
	c.Realtime.NFTCollections = trimList(c.Realtime.NFTCollections)
}

func (c *Config) normalizeReport() {
	envInt("DAILY_REPORT_HOUR", &c.Report.Hour)
	if c.Report.Hour < 0 || c.Report.Hour > 23 {
		c.Report.Hour = defaultReportHour
	}
}

func (c *Config) normalizeNotifications() {
	envString("DISCORD_WEBHOOK_URL", &c.Notifications.DiscordWebhookURL)
	envString("TELEGRAM_BOT_TOKEN", &c.Notifications.TelegramBotToken)
	envString("TELEGRAM_CHAT_ID", &c.Notifications.TelegramChatID)
	envString("NTFY_TOPIC", &c.Notifications.NtfyTopic)

	c.Notifications.DiscordWebhookURL = strings.TrimSpace(c.Notifications.DiscordWebhookURL)
	c.Notifications.TelegramBotToken = strings.TrimSpace(c.Notifications.TelegramBotToken)
	c.Notifications.TelegramChatID = strings.TrimSpace(c.Notifications.TelegramChatID)
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeServices() {
	envString("HELIUS_API_KEY", &c.Services.HeliusAPIKey)

	c.Services.HeliusAPIKey = strings.TrimSpace(c.Services.HeliusAPIKey)
	c.Services.SolanaRPCURL = defaultIfBlank(c.Services.SolanaRPCURL, defaultSolanaRPCURL)
	c.Services.DexScreenerBaseURL = trimBaseURL(c.Services.DexScreenerBaseURL, defaultDexScreenerBaseURL)
	c.Services.RugCheckBaseURL = trimBaseURL(c.Services.RugCheckBaseURL, defaultRugCheckBaseURL)
	c.Services.CoinGeckoBaseURL = trimBaseURL(c.Services.CoinGeckoBaseURL, defaultCoinGeckoBaseURL)
	c.Services.MagicEdenBaseURL = trimBaseURL(c.Services.MagicEdenBaseURL, defaultMagicEdenBaseURL)
	c.Services.AirdropFeeds = trimList(c.Services.AirdropFeeds)
	if c.Services.RequestTimeout <= 0 {
		c.Services.RequestTimeout = defaultServiceTimeout
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.ErrorRetryInterval <= 0 {
		c.Workflow.ErrorRetryInterval = defaultErrorRetryInterval
	}
	if c.Workflow.CycleTimeout <= 0 {
		c.Workflow.CycleTimeout = defaultCycleTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// Environment always wins over the config file; deployments inject
// credentials this way and a stale file value must not survive.
func envString(name string, target *string) {
	if value, ok := os.LookupEnv(name); ok {
		*target = value
	}
}

func envInt(name string, target *int) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		*target = parsed
	}
}

func envFloat(name string, target *float64) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return
	}
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		*target = parsed
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func trimList(values []string) []string {
	out := values[:0]
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultIfBlank(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func trimBaseURL(value, fallback string) string {
	return strings.TrimRight(defaultIfBlank(value, fallback), "/")
}
