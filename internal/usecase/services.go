package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-stats/internal/domain/coach"
	"github.com/riskibarqy/football-stats/internal/domain/country"
	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/injury"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/player"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/timezone"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
	"github.com/riskibarqy/football-stats/internal/normalizer"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type Repositories struct {
	Countries    country.Repository
	Leagues      league.Repository
	Venues       venue.Repository
	Teams        team.Repository
	Players      player.Repository
	Coaches      coach.Repository
	Fixtures     fixture.Repository
	Events       fixture.EventRepository
	Lineups      fixture.LineupRepository
	Statistics   fixture.StatisticRepository
	FixtureStats playerstats.FixtureRepository
	SeasonStats  playerstats.SeasonRepository
	Injuries     injury.Repository
	Timezones    timezone.Repository
}

// deps is what every orchestrator shares.
type deps struct {
	source   Source
	repos    Repositories
	registry *Registry
	logger   *logging.Logger
}

func (d deps) session() *Resolver {
	return d.registry.NewResolver(d.logger)
}

func (d deps) ensureCountry(ctx context.Context, r *Resolver, entry feed.CountryEntry) bool {
	fragment, ok := normalizer.CountryFromFragment(entry)
	return r.EnsureExists(ctx, Ref{Kind: KindCountry, Code: fragment.Code}, upsertOne(d.repos.Countries.BulkUpsert, fragment, ok))
}

func (d deps) ensureLeagueSeason(ctx context.Context, r *Resolver, leagueID int64, season int) bool {
	return r.EnsureExists(ctx, Ref{Kind: KindLeagueSeason, ID: leagueID, Season: season}, nil)
}

func (d deps) ensureVenue(ctx context.Context, r *Resolver, id int64, fragment venue.Venue, usable bool) bool {
	return r.EnsureExists(ctx, Ref{Kind: KindVenue, ID: id}, upsertOne(d.repos.Venues.BulkUpsert, fragment, usable))
}

func (d deps) ensureTeam(ctx context.Context, r *Resolver, ref feed.TeamRef) bool {
	fragment, ok := normalizer.TeamFromFragment(ref)
	return r.EnsureExists(ctx, Ref{Kind: KindTeam, ID: idValue(ref.ID)}, upsertOne(d.repos.Teams.BulkUpsert, fragment, ok))
}

func (d deps) ensurePlayer(ctx context.Context, r *Resolver, ref feed.PersonRef) bool {
	fragment, ok := normalizer.PlayerFromFragment(ref)
	return r.EnsureExists(ctx, Ref{Kind: KindPlayer, ID: idValue(ref.ID)}, upsertOne(d.repos.Players.BulkUpsert, fragment, ok))
}

func (d deps) ensureFixture(ctx context.Context, r *Resolver, id int64) bool {
	return r.EnsureExists(ctx, Ref{Kind: KindFixture, ID: id}, nil)
}

func idValue(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// Services is the wired set of orchestrators sharing one dependency
// registry.
type Services struct {
	Registry   *Registry
	Countries  *CountryService
	Leagues    *LeagueService
	Venues     *VenueService
	Teams      *TeamService
	Players    *PlayerService
	Coaches    *CoachService
	Fixtures   *FixtureService
	Injuries   *InjuryService
	Timezones  *TimezoneService
	Sweeps     *SweepService
	ChunkTasks map[string]ChunkDomain
}

func NewServices(source Source, repos Repositories, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}
	d := deps{source: source, repos: repos, registry: NewRegistry(), logger: logger}

	s := &Services{
		Registry:  d.registry,
		Countries: &CountryService{deps: d},
		Leagues:   &LeagueService{deps: d},
		Venues:    &VenueService{deps: d},
		Teams:     &TeamService{deps: d},
		Players:   &PlayerService{deps: d},
		Coaches:   &CoachService{deps: d},
		Fixtures:  &FixtureService{deps: d},
		Injuries:  &InjuryService{deps: d},
		Timezones: &TimezoneService{deps: d},
	}

	d.registry.Register(KindCountry,
		func(ctx context.Context, ref Ref) (bool, error) { return repos.Countries.Exists(ctx, ref.Code) },
		func(ctx context.Context, ref Ref) (bool, error) { return s.Countries.UpdateByCode(ctx, ref.Code) })
	d.registry.Register(KindLeagueSeason,
		func(ctx context.Context, ref Ref) (bool, error) { return repos.Leagues.Exists(ctx, ref.ID, ref.Season) },
		func(ctx context.Context, ref Ref) (bool, error) { return s.Leagues.UpdateByID(ctx, ref.ID, ref.Season) })
	d.registry.Register(KindVenue,
		func(ctx context.Context, ref Ref) (bool, error) { return repos.Venues.Exists(ctx, ref.ID) },
		func(ctx context.Context, ref Ref) (bool, error) { return s.Venues.UpdateByID(ctx, ref.ID) })
	d.registry.Register(KindTeam,
		func(ctx context.Context, ref Ref) (bool, error) { return repos.Teams.Exists(ctx, ref.ID) },
		func(ctx context.Context, ref Ref) (bool, error) { return s.Teams.UpdateByID(ctx, ref.ID) })
	d.registry.Register(KindPlayer,
		func(ctx context.Context, ref Ref) (bool, error) { return repos.Players.Exists(ctx, ref.ID) },
		func(ctx context.Context, ref Ref) (bool, error) { return s.Players.UpdateByID(ctx, ref.ID) })
	d.registry.Register(KindCoach,
		func(ctx context.Context, ref Ref) (bool, error) { return repos.Coaches.Exists(ctx, ref.ID) },
		func(ctx context.Context, ref Ref) (bool, error) { return s.Coaches.UpdateByID(ctx, ref.ID) })
	d.registry.Register(KindFixture,
		func(ctx context.Context, ref Ref) (bool, error) { return repos.Fixtures.Exists(ctx, ref.ID) },
		func(ctx context.Context, ref Ref) (bool, error) { return s.Fixtures.UpdateByID(ctx, ref.ID) })

	s.Sweeps = NewSweepService(repos.Leagues, map[string]LeagueSeasonFunc{
		DomainTeams:       s.Teams.UpdateByLeagueSeason,
		DomainPlayers:     s.Players.UpdateByLeagueSeason,
		DomainFixtures:    s.Fixtures.UpdateByLeagueSeason,
		DomainEvents:      s.Fixtures.UpdateEventsByLeagueSeason,
		DomainLineups:     s.Fixtures.UpdateLineupsByLeagueSeason,
		DomainStatistics:  s.Fixtures.UpdateStatisticsByLeagueSeason,
		DomainPlayerStats: s.Fixtures.UpdatePlayerStatsByLeagueSeason,
		DomainInjuries:    s.Injuries.UpdateByLeagueSeason,
	}, logger)

	s.ChunkTasks = map[string]ChunkDomain{
		DomainPlayers:  {List: repos.Players.ListIDs, Update: found(s.Players.UpdateByID)},
		DomainTeams:    {List: repos.Teams.ListIDs, Update: found(s.Teams.UpdateByID)},
		DomainVenues:   {List: repos.Venues.ListIDs, Update: found(s.Venues.UpdateByID)},
		DomainCoaches:  {List: repos.Coaches.ListIDs, Update: found(s.Coaches.UpdateByID)},
		DomainFixtures: {List: repos.Fixtures.ListIDs, Update: found(s.Fixtures.UpdateByID)},
	}
	return s
}

// found turns a "not returned by the source" answer into ErrNotFound.
func found(update func(context.Context, int64) (bool, error)) func(context.Context, int64) error {
	return func(ctx context.Context, id int64) error {
		ok, err := update(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil
	}
}
