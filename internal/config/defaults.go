package config

const (
	defaultDataDir             = "~/.local/share/solscreener"
	defaultLogDir              = "~/.local/share/solscreener/logs"
	defaultScanIntervalMinutes = 60
	defaultMorningScanHour     = 8
	defaultLookbackHours       = 24
	defaultTopN                = 10
	defaultMinLiquidityUSD     = 10_000
	defaultRealtimeInterval    = 5
	defaultReportHour          = 9
	defaultNotifyTimeout       = 10
	defaultServiceTimeout      = 15
	defaultErrorRetryInterval  = 10
	defaultCycleTimeout        = 180
	defaultSolanaRPCURL        = "https://api.mainnet-beta.solana.com"
	defaultDexScreenerBaseURL  = "https://api.dexscreener.com"
	defaultRugCheckBaseURL     = "https://api.rugcheck.xyz/v1"
	defaultCoinGeckoBaseURL    = "https://api.coingecko.com/api/v3"
	defaultMagicEdenBaseURL    = "https://api-mainnet.magiceden.dev/v2"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Screener: Screener{
			ScanIntervalMinutes: defaultScanIntervalMinutes,
			MorningScanHour:     defaultMorningScanHour,
			LookbackHours:       defaultLookbackHours,
			TopN:                defaultTopN,
			MinLiquidityUSD:     defaultMinLiquidityUSD,
			EnablePumpfun:       true,
			EnableManiaScoring:  true,
		},
		Realtime: Realtime{
			IntervalMinutes: defaultRealtimeInterval,
		},
		Report: Report{
			Hour: defaultReportHour,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Errors:         true,
		},
		Services: Services{
			SolanaRPCURL:       defaultSolanaRPCURL,
			DexScreenerBaseURL: defaultDexScreenerBaseURL,
			RugCheckBaseURL:    defaultRugCheckBaseURL,
			CoinGeckoBaseURL:   defaultCoinGeckoBaseURL,
			MagicEdenBaseURL:   defaultMagicEdenBaseURL,
			RequestTimeout:     defaultServiceTimeout,
		},
		Workflow: Workflow{
			ErrorRetryInterval: defaultErrorRetryInterval,
			CycleTimeout:       defaultCycleTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
