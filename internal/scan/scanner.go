package scan

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"solscreener/internal/logging"
	"solscreener/internal/services"
	"solscreener/internal/services/dexscreener"
)

const (
	// Profiles feed returns tokens across all chains; cap the number of
	// per-token pair lookups done in a single pass.
	maxCandidates = 30

	solanaChainID = "solana"
)

// Options configure a Scanner.
type Options struct {
	MinLiquidityUSD float64
	Lookback        time.Duration
	Prober          services.HTTPDoer
}

// Scanner discovers fresh Solana tokens via the DexScreener profiles feed.
type Scanner struct {
	dex          *dexscreener.Client
	prober       services.HTTPDoer
	log          *slog.Logger
	minLiquidity float64
	lookback     time.Duration
}

// NewScanner constructs a Scanner. A nil logger discards output; a nil
// prober disables the GitHub reachability probe.
func NewScanner(dex *dexscreener.Client, logger *slog.Logger, opts Options) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	return &Scanner{
		dex:          dex,
		prober:       opts.Prober,
		log:          logging.NewComponentLogger(logger, "scanner"),
		minLiquidity: opts.MinLiquidityUSD,
		lookback:     lookback,
	}
}

// Scan returns fresh Solana projects that pass the age and liquidity
// filters, deduplicated by mint.
func (s *Scanner) Scan(ctx context.Context) ([]Project, error) {
	profiles, err := s.dex.LatestProfiles(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seen := make(map[string]struct{})
	var projects []Project

	candidates := 0
	for _, profile := range profiles {
		if profile.ChainID != solanaChainID || profile.TokenAddress == "" {
			continue
		}
		if _, ok := seen[profile.TokenAddress]; ok {
			continue
		}
		seen[profile.TokenAddress] = struct{}{}
		if candidates++; candidates > maxCandidates {
			break
		}

		pair, err := s.dex.BestPair(ctx, profile.TokenAddress)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			s.log.Warn("pair lookup failed",
				logging.String(logging.FieldMint, profile.TokenAddress),
				logging.Error(err))
			continue
		}
		if pair == nil {
			continue
		}

		project := ProjectFromPair(*pair)
		if !s.accept(project, now) {
			continue
		}
		if project.GitHubRepo != "" && !s.probeGitHub(ctx, project.GitHubRepo) {
			project.GitHubRepo = ""
		}
		projects = append(projects, project)
	}

	s.log.Info("scan complete",
		logging.Int("profiles", len(profiles)),
		logging.Int("projects", len(projects)))
	return projects, nil
}

func (s *Scanner) accept(project Project, now time.Time) bool {
	if project.Mint == "" {
		return false
	}
	if project.LiquidityUSD < s.minLiquidity {
		return false
	}
	if age := project.Age(now); age <= 0 || age > s.lookback {
		return false
	}
	return true
}

// probeGitHub verifies a repo link actually resolves before it earns score.
func (s *Scanner) probeGitHub(ctx context.Context, repoURL string) bool {
	if s.prober == nil {
		return true
	}
	if !strings.HasPrefix(repoURL, "http") {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, repoURL, nil)
	if err != nil {
		return false
	}
	resp, err := s.prober.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}
