package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/observability"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DomainTeams       = "teams"
	DomainPlayers     = "players"
	DomainVenues      = "venues"
	DomainCoaches     = "coaches"
	DomainFixtures    = "fixtures"
	DomainEvents      = "events"
	DomainLineups     = "lineups"
	DomainStatistics  = "statistics"
	DomainPlayerStats = "player-stats"
	DomainInjuries    = "injuries"
)

// LeagueSeasonFunc updates one domain for one league season.
type LeagueSeasonFunc func(ctx context.Context, leagueID int64, season int, maxPages int) (Counts, error)

type SweepService struct {
	leagues league.Repository
	domains map[string]LeagueSeasonFunc
	logger  *logging.Logger
}

func NewSweepService(leagues league.Repository, domains map[string]LeagueSeasonFunc, logger *logging.Logger) *SweepService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SweepService{leagues: leagues, domains: domains, logger: logger}
}

// Domains lists the supported league season domains in a stable order.
func (s *SweepService) Domains() []string {
	out := make([]string, 0, len(s.domains))
	for name := range s.domains {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (s *SweepService) lookup(domain string) (LeagueSeasonFunc, error) {
	fn, ok := s.domains[strings.ToLower(strings.TrimSpace(domain))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown domain %q", ErrInvalidInput, domain)
	}
	return fn, nil
}

func (s *SweepService) UpdateByLeagueSeason(ctx context.Context, domain string, leagueID int64, season int, maxPages int) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.UpdateByLeagueSeason",
		attribute.String("football_stats.domain", domain),
		attribute.Int64("football_stats.league_id", leagueID),
		attribute.Int("football_stats.season", season),
	)
	defer span.End()

	fn, err := s.lookup(domain)
	if err != nil {
		return Counts{}, err
	}
	if !(league.Key{LeagueID: leagueID, Season: season}).Valid() {
		return Counts{}, fmt.Errorf("%w: league id and season are required", ErrInvalidInput)
	}
	if maxPages < 0 {
		return Counts{}, fmt.Errorf("%w: max pages must be >= 0", ErrInvalidInput)
	}
	counts, err := fn(ctx, leagueID, season, maxPages)
	observability.AddIngestCounts(domain, counts.Success, counts.Errors)
	setCountsAttributes(span, counts)
	return counts, err
}

// UpdateBySeason runs domain for every stored league of season.
func (s *SweepService) UpdateBySeason(ctx context.Context, domain string, season int) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.UpdateBySeason",
		attribute.String("football_stats.domain", domain),
		attribute.Int("football_stats.season", season),
	)
	defer span.End()

	fn, err := s.lookup(domain)
	if err != nil {
		return SweepResult{}, err
	}
	if season <= 0 {
		return SweepResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	units, err := s.leagues.ListBySeason(ctx, season)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list league seasons season=%d: %w", season, err)
	}
	return s.sweep(ctx, domain, fn, units), nil
}

// UpdateByLeague runs domain for every stored season of leagueID.
func (s *SweepService) UpdateByLeague(ctx context.Context, domain string, leagueID int64) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.UpdateByLeague",
		attribute.String("football_stats.domain", domain),
		attribute.Int64("football_stats.league_id", leagueID),
	)
	defer span.End()

	fn, err := s.lookup(domain)
	if err != nil {
		return SweepResult{}, err
	}
	if leagueID <= 0 {
		return SweepResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	units, err := s.leagues.ListByLeague(ctx, leagueID)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list league seasons league=%d: %w", leagueID, err)
	}
	return s.sweep(ctx, domain, fn, units), nil
}

// sweep runs units one after another. A failed unit is recorded and the
// sweep continues.
func (s *SweepService) sweep(ctx context.Context, domain string, fn LeagueSeasonFunc, units []league.Season) SweepResult {
	result := SweepResult{Domain: domain, Units: make([]UnitOutcome, 0, len(units))}
	for _, unit := range units {
		counts, err := fn(ctx, unit.LeagueID, unit.Season, 0)
		outcome := UnitOutcome{
			LeagueID: unit.LeagueID,
			Season:   unit.Season,
			Success:  counts.Success,
			Errors:   counts.Errors,
		}
		if err != nil {
			outcome.Error = err.Error()
			s.logger.WarnContext(ctx, "sweep unit failed",
				"domain", domain, "league_id", unit.LeagueID, "season", unit.Season, "error", err)
		}
		observability.AddIngestCounts(domain, counts.Success, counts.Errors)
		result.Success += counts.Success
		result.Errors += counts.Errors
		result.Units = append(result.Units, outcome)
	}

	s.logger.InfoContext(ctx, "sweep finished",
		"domain", domain, "units", len(units), "success", result.Success, "errors", result.Errors)
	return result
}
