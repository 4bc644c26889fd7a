package workflow

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"solscreener/internal/airdrop"
	"solscreener/internal/config"
	"solscreener/internal/logging"
	"solscreener/internal/market"
	"solscreener/internal/monitors"
	"solscreener/internal/notifications"
	"solscreener/internal/pumpfun"
	"solscreener/internal/safety"
	"solscreener/internal/scan"
	"solscreener/internal/services"
	"solscreener/internal/services/coingecko"
	"solscreener/internal/services/dexscreener"
	"solscreener/internal/services/helius"
	"solscreener/internal/services/magiceden"
	"solscreener/internal/services/rugcheck"
	"solscreener/internal/services/solanarpc"
	"solscreener/internal/store"
)

// Manager runs the screening, realtime, and daily report cycles on their
// schedules.
type Manager struct {
	cfg      *config.Config
	store    *store.Store
	notifier notifications.Service
	log      *slog.Logger

	screening *ScreeningCycle
	realtime  *RealtimeCycle
	report    *ReportCycle

	mu      sync.RWMutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	lastErr error

	lastScreening time.Time
	lastRealtime  time.Time
	lastReport    time.Time
}

// Status is a snapshot of the manager's state.
type Status struct {
	Running       bool
	LastError     string
	LastScreening time.Time
	LastRealtime  time.Time
	LastReport    time.Time
}

// NewManager wires all cycles from configuration.
func NewManager(cfg *config.Config, st *store.Store, logger *slog.Logger, notifier notifications.Service) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	timeout := time.Duration(cfg.Services.RequestTimeout) * time.Second
	dex := dexscreener.NewClient(cfg.Services.DexScreenerBaseURL, nil, timeout)
	rug := rugcheck.NewClient(cfg.Services.RugCheckBaseURL, nil, timeout)
	gecko := coingecko.NewClient(cfg.Services.CoinGeckoBaseURL, nil, timeout)
	eden := magiceden.NewClient(cfg.Services.MagicEdenBaseURL, nil, timeout)
	rpc := solanarpc.NewClient(cfg.SolanaRPC(), nil, timeout)
	enhanced := helius.NewClient("", cfg.Services.HeliusAPIKey, nil, timeout)

	scanner := scan.NewScanner(dex, logger, scan.Options{
		MinLiquidityUSD: cfg.Screener.MinLiquidityUSD,
		Lookback:        time.Duration(cfg.Screener.LookbackHours) * time.Hour,
		Prober:          &http.Client{Timeout: timeout},
	})
	checker := safety.NewChecker(rug, logger)

	var pump *pumpfun.Monitor
	if cfg.Screener.EnablePumpfun {
		pump = pumpfun.NewMonitor(rpc, logger, pumpfun.Options{
			LookupPause: 200 * time.Millisecond,
		})
	}

	var wallets *monitors.WalletTracker
	if watch := cfg.WatchWallets(); len(watch) > 0 {
		wallets = monitors.NewWalletTracker(rpc, enhanced, logger, watch)
	}
	var liquidity *monitors.LiquidityMonitor
	if len(cfg.Realtime.WatchTokens) > 0 {
		liquidity = monitors.NewLiquidityMonitor(dex, logger, cfg.Realtime.WatchTokens)
	}
	var ranges *monitors.RangeMonitor
	if bands := cfg.PriceRanges(); len(bands) > 0 {
		ranges = monitors.NewRangeMonitor(gecko, logger, bands)
	}
	var nftFloor *market.NFTFloorMonitor
	if len(cfg.Realtime.NFTCollections) > 0 {
		nftFloor = market.NewNFTFloorMonitor(eden, logger, cfg.Realtime.NFTCollections)
	}

	meme := market.NewMemeChartMonitor(dex, logger)
	tge := market.NewTGEMonitor(dex, logger)
	var airdrops *airdrop.Scanner
	if len(cfg.Services.AirdropFeeds) > 0 {
		airdrops = airdrop.NewScanner(cfg.Services.AirdropFeeds, nil, logger, timeout)
	}

	return &Manager{
		cfg:      cfg,
		store:    st,
		notifier: notifier,
		log:      logging.NewComponentLogger(logger, "workflow"),
		screening: NewScreeningCycle(cfg, scanner, pump, dex, gecko, enhanced,
			checker, st, notifier, logger),
		realtime: NewRealtimeCycle(wallets, liquidity, ranges, meme, nftFloor,
			notifier, logger),
		report: NewReportCycle(airdrops, tge, st,
			notifier, logger),
	}
}

// Start launches the cycle loops. The screening and realtime cycles run
// once immediately; the daily report waits for its hour.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow manager already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.mu.Unlock()

	m.wg.Add(3)
	go m.screeningLoop(runCtx)
	go m.realtimeLoop(runCtx)
	go m.reportLoop(runCtx)

	m.log.Info("workflow started",
		logging.Int("scan_interval_minutes", m.cfg.Screener.ScanIntervalMinutes),
		logging.Int("realtime_interval_minutes", m.cfg.Realtime.IntervalMinutes),
		logging.Int("report_hour", m.cfg.Report.Hour))
	return nil
}

// Stop cancels the loops and waits for them to drain.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	m.wg.Wait()

	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
	m.log.Info("workflow stopped")
}

// Status reports the manager's current state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status := Status{
		Running:       m.running,
		LastScreening: m.lastScreening,
		LastRealtime:  m.lastRealtime,
		LastReport:    m.lastReport,
	}
	if m.lastErr != nil {
		status.LastError = m.lastErr.Error()
	}
	return status
}

// RunScreeningOnce executes a single screening pass (the `scan` command).
func (m *Manager) RunScreeningOnce(ctx context.Context) error {
	return m.runCycle(ctx, "screening", m.screening.Run, &m.lastScreening)
}

// RunRealtimeOnce executes a single monitoring pass (the `monitor` command).
func (m *Manager) RunRealtimeOnce(ctx context.Context) error {
	return m.runCycle(ctx, "realtime", m.realtime.Run, &m.lastRealtime)
}

// RunReportOnce executes a single daily report (the `report` command).
func (m *Manager) RunReportOnce(ctx context.Context) error {
	return m.runCycle(ctx, "daily report", m.report.Run, &m.lastReport)
}

func (m *Manager) screeningLoop(ctx context.Context) {
	defer m.wg.Done()

	interval := time.Duration(m.cfg.Screener.ScanIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	morning := time.NewTimer(untilNextHour(time.Now(), m.cfg.Screener.MorningScanHour))
	defer morning.Stop()

	var retry <-chan time.Time
	run := func() {
		retry = nil
		if delay := m.retryDelay(m.RunScreeningOnce(ctx)); delay > 0 {
			retry = time.After(delay)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		case <-retry:
			run()
		case <-morning.C:
			run()
			morning.Reset(untilNextHour(time.Now(), m.cfg.Screener.MorningScanHour))
		}
	}
}

func (m *Manager) realtimeLoop(ctx context.Context) {
	defer m.wg.Done()

	interval := time.Duration(m.cfg.Realtime.IntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var retry <-chan time.Time
	run := func() {
		retry = nil
		if delay := m.retryDelay(m.RunRealtimeOnce(ctx)); delay > 0 {
			retry = time.After(delay)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		case <-retry:
			run()
		}
	}
}

// retryDelay maps a cycle failure to the early-retry interval. Only
// transient upstream failures earn a retry ahead of the next tick;
// everything else waits for the regular schedule.
func (m *Manager) retryDelay(err error) time.Duration {
	if err == nil || !services.Retryable(err) {
		return 0
	}
	return time.Duration(m.cfg.Workflow.ErrorRetryInterval) * time.Second
}

func (m *Manager) reportLoop(ctx context.Context) {
	defer m.wg.Done()

	timer := time.NewTimer(untilNextHour(time.Now(), m.cfg.Report.Hour))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			_ = m.RunReportOnce(ctx)
			timer.Reset(untilNextHour(time.Now(), m.cfg.Report.Hour))
		}
	}
}

// runCycle executes one cycle with the configured timeout. Failures are
// logged and alerted, never propagated to the daemon loop.
func (m *Manager) runCycle(ctx context.Context, name string, run func(context.Context) error, last *time.Time) error {
	cycleCtx := ctx
	if timeout := time.Duration(m.cfg.Workflow.CycleTimeout) * time.Second; timeout > 0 {
		var cancel context.CancelFunc
		cycleCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	err := run(cycleCtx)

	m.mu.Lock()
	*last = started
	m.lastErr = err
	m.mu.Unlock()

	if err != nil {
		m.log.Error("cycle failed",
			logging.String(logging.FieldCycle, name),
			logging.Error(err))
		if m.cfg.Notifications.Errors {
			if notifyErr := m.notifier.NotifyError(ctx, err, name); notifyErr != nil {
				m.log.Warn("error notification failed", logging.Error(notifyErr))
			}
		}
		return err
	}

	m.log.Debug("cycle complete",
		logging.String(logging.FieldCycle, name),
		logging.Duration("elapsed", time.Since(started)))
	return nil
}

// untilNextHour returns the duration until the next occurrence of the given
// local wall-clock hour.
func untilNextHour(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
