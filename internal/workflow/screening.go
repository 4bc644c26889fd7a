package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"solscreener/internal/config"
	"solscreener/internal/logging"
	"solscreener/internal/notifications"
	"solscreener/internal/pumpfun"
	"solscreener/internal/safety"
	"solscreener/internal/scan"
	"solscreener/internal/scoring"
	"solscreener/internal/services/coingecko"
	"solscreener/internal/services/dexscreener"
	"solscreener/internal/services/helius"
	"solscreener/internal/store"
)

// Market trend thresholds on SOL's 24h move.
const (
	trendBullishPct = 5.0
	trendBearishPct = -5.0
)

// ScreeningCycle runs one full discovery-to-notification pass.
type ScreeningCycle struct {
	cfg      *config.Config
	scanner  *scan.Scanner
	pump     *pumpfun.Monitor
	dex      *dexscreener.Client
	gecko    *coingecko.Client
	holders  *helius.Client
	engine   *scoring.Engine
	checker  *safety.Checker
	store    *store.Store
	notifier notifications.Service
	log      *slog.Logger
}

// NewScreeningCycle wires a screening cycle from its parts. The pump
// monitor, gecko client, and holders client may be nil.
func NewScreeningCycle(
	cfg *config.Config,
	scanner *scan.Scanner,
	pump *pumpfun.Monitor,
	dex *dexscreener.Client,
	gecko *coingecko.Client,
	holders *helius.Client,
	checker *safety.Checker,
	st *store.Store,
	notifier notifications.Service,
	logger *slog.Logger,
) *ScreeningCycle {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ScreeningCycle{
		cfg:      cfg,
		scanner:  scanner,
		pump:     pump,
		dex:      dex,
		gecko:    gecko,
		holders:  holders,
		engine:   scoring.NewEngine(),
		checker:  checker,
		store:    st,
		notifier: notifier,
		log:      logging.NewComponentLogger(logger, "screening"),
	}
}

// Run executes one screening pass.
func (c *ScreeningCycle) Run(ctx context.Context) error {
	sessionID := uuid.NewString()
	startedAt := time.Now().UTC()
	log := c.log.With(logging.String(logging.FieldSessionID, sessionID))

	projects, err := c.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	scanned := len(projects)

	projects = c.mergeGraduations(ctx, log, projects)

	ranked := c.engine.Rank(projects)
	if topN := c.cfg.Screener.TopN; topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	fresh, err := c.store.FilterNew(ctx, ranked)
	if err != nil {
		return fmt.Errorf("filter notified: %w", err)
	}
	log.Info("screening pass",
		logging.Int("scanned", scanned),
		logging.Int("ranked", len(ranked)),
		logging.Int("fresh", len(fresh)))

	if len(fresh) == 0 {
		return c.store.SaveScan(ctx, sessionID, startedAt, ranked)
	}

	mints := make([]string, 0, len(fresh))
	for _, project := range fresh {
		mints = append(mints, project.Mint)
	}
	safetyReports := c.checker.CheckAll(ctx, mints)
	holderStats := c.holderDistribution(ctx, log, mints)
	trend := c.marketTrend(ctx)
	previous, err := c.store.ScoreChanges(ctx, fresh)
	if err != nil {
		return fmt.Errorf("score changes: %w", err)
	}

	candidates := make([]notifications.Candidate, 0, len(fresh))
	for i, project := range fresh {
		report := safetyReports[project.Mint]

		holders, ok := holderStats[project.Mint]
		if !ok {
			// RugCheck top-holder shares stand in when Helius has nothing.
			holders = scoring.HolderStats{
				Top1Pct: report.Top1Pct,
				Top5Pct: report.Top5Pct,
				Known:   report.Level != safety.LevelUnknown,
			}
		}
		mania := scoring.ManiaScore(holders, scoring.SocialStats{})
		if c.cfg.Screener.EnableManiaScoring {
			project = scoring.ApplyMania(project, mania.Total)
			fresh[i] = project
		}

		expectation := scoring.CalculateExpectation(scoring.ExpectationInputs{
			TotalScore:  project.TotalScore,
			SafetyLevel: report.Level,
			ManiaScore:  mania.Total,
			ManiaKnown:  c.cfg.Screener.EnableManiaScoring,
			HighBotRisk: mania.HighBotRisk(),
			TrustScore:  scoring.TrustUnknown,
			MarketTrend: trend,
		})

		candidate := notifications.Candidate{
			Project:     project,
			Safety:      report,
			Expectation: expectation,
		}
		if prev, ok := previous[project.Mint]; ok {
			score := prev
			candidate.PreviousScore = &score
		}
		candidates = append(candidates, candidate)
	}

	err = c.notifier.NotifyScreeningResults(ctx, notifications.ScreeningReport{
		SessionID:  sessionID,
		StartedAt:  startedAt,
		Scanned:    scanned,
		Candidates: candidates,
	})
	if err != nil {
		// Notification failure never fails the cycle.
		log.Warn("screening notification failed", logging.Error(err))
	}

	if err := c.store.MarkNotified(ctx, fresh); err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	return c.store.SaveScan(ctx, sessionID, startedAt, ranked)
}

// holderDistribution fetches holder concentration for the fresh mints
// from the Helius metadata API. Lookup failures degrade to an empty map;
// the caller falls back to RugCheck figures per mint.
func (c *ScreeningCycle) holderDistribution(ctx context.Context, log *slog.Logger, mints []string) map[string]scoring.HolderStats {
	if c.holders == nil || !c.holders.Configured() || len(mints) == 0 {
		return nil
	}

	metadata, err := c.holders.TokenMetadataBatch(ctx, mints)
	if err != nil {
		log.Warn("holder lookup failed", logging.Error(err))
		return nil
	}

	stats := make(map[string]scoring.HolderStats, len(metadata))
	for _, entry := range metadata {
		top1, top5, ok := entry.TopHolderShares()
		if !ok {
			continue
		}
		stats[entry.Account] = scoring.HolderStats{
			Top1Pct: top1,
			Top5Pct: top5,
			Known:   true,
		}
	}
	return stats
}

// mergeGraduations folds freshly graduated Pump.fun tokens into the
// discovery set, deduplicated by mint.
func (c *ScreeningCycle) mergeGraduations(ctx context.Context, log *slog.Logger, projects []scan.Project) []scan.Project {
	if !c.cfg.Screener.EnablePumpfun || c.pump == nil {
		return projects
	}

	graduations, err := c.pump.Poll(ctx)
	if err != nil {
		log.Warn("pumpfun poll failed", logging.Error(err))
		return projects
	}
	if len(graduations) == 0 {
		return projects
	}

	known := make(map[string]struct{}, len(projects))
	for _, project := range projects {
		known[project.Mint] = struct{}{}
	}
	for _, graduation := range graduations {
		if _, ok := known[graduation.Mint]; ok {
			continue
		}
		pair, err := c.dex.BestPair(ctx, graduation.Mint)
		if err != nil || pair == nil {
			continue
		}
		project := scan.ProjectFromPair(*pair)
		project.Source = scan.SourcePumpfun
		known[project.Mint] = struct{}{}
		projects = append(projects, project)
		log.Info("graduated token merged",
			logging.String(logging.FieldMint, graduation.Mint),
			logging.String("destination", graduation.Destination))
	}
	return projects
}

// marketTrend labels the tape from SOL's 24h move, neutral when unknown.
func (c *ScreeningCycle) marketTrend(ctx context.Context) string {
	if c.gecko == nil {
		return scoring.TrendNeutral
	}
	quotes, err := c.gecko.SimplePrices(ctx, []string{"solana"})
	if err != nil {
		return scoring.TrendNeutral
	}
	quote, ok := quotes["solana"]
	if !ok {
		return scoring.TrendNeutral
	}
	switch {
	case quote.Change24h >= trendBullishPct:
		return scoring.TrendBullish
	case quote.Change24h <= trendBearishPct:
		return scoring.TrendBearish
	default:
		return scoring.TrendNeutral
	}
}
