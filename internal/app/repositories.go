package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

// BuildRepositories returns the storage set for cfg.StorageDriver. The
// returned close func releases the DB pool when one was opened.
func BuildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.Repositories, func() error, error) {
	var (
		repos   usecase.Repositories
		closeFn = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		repos = memoryRepositories(memory.NewStore(), logger)
	case config.DriverPostgres:
		if cfg.DBAutoMigrate {
			if err := Migrate(ctx, cfg.DBURL, "", logger); err != nil {
				return usecase.Repositories{}, nil, err
			}
		}
		db, err := OpenDB(ctx, cfg, logger)
		if err != nil {
			return usecase.Repositories{}, nil, err
		}
		repos = postgresRepositories(db, logger)
		closeFn = db.Close
	default:
		return usecase.Repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		repos.Teams = cache.NewTeamRepository(repos.Teams, cfg.CacheTTL)
		repos.Fixtures = cache.NewFixtureRepository(repos.Fixtures, cfg.CacheTTL)
	}
	return repos, closeFn, nil
}

func memoryRepositories(store *memory.Store, logger *logging.Logger) usecase.Repositories {
	return usecase.Repositories{
		Countries:    memory.NewCountryRepository(store, logger),
		Leagues:      memory.NewLeagueRepository(store, logger),
		Venues:       memory.NewVenueRepository(store, logger),
		Teams:        memory.NewTeamRepository(store, logger),
		Players:      memory.NewPlayerRepository(store, logger),
		Coaches:      memory.NewCoachRepository(store, logger),
		Fixtures:     memory.NewFixtureRepository(store, logger),
		Events:       memory.NewFixtureEventRepository(store, logger),
		Lineups:      memory.NewFixtureLineupRepository(store, logger),
		Statistics:   memory.NewFixtureStatisticRepository(store, logger),
		FixtureStats: memory.NewPlayerFixtureStatRepository(store, logger),
		SeasonStats:  memory.NewPlayerSeasonStatRepository(store, logger),
		Injuries:     memory.NewInjuryRepository(store, logger),
		Timezones:    memory.NewTimezoneRepository(store, logger),
	}
}

func postgresRepositories(db *sqlx.DB, logger *logging.Logger) usecase.Repositories {
	return usecase.Repositories{
		Countries:    postgres.NewCountryRepository(db, logger),
		Leagues:      postgres.NewLeagueRepository(db, logger),
		Venues:       postgres.NewVenueRepository(db, logger),
		Teams:        postgres.NewTeamRepository(db, logger),
		Players:      postgres.NewPlayerRepository(db, logger),
		Coaches:      postgres.NewCoachRepository(db, logger),
		Fixtures:     postgres.NewFixtureRepository(db, logger),
		Events:       postgres.NewFixtureEventRepository(db, logger),
		Lineups:      postgres.NewFixtureLineupRepository(db, logger),
		Statistics:   postgres.NewFixtureStatisticRepository(db, logger),
		FixtureStats: postgres.NewPlayerFixtureStatRepository(db, logger),
		SeasonStats:  postgres.NewPlayerSeasonStatRepository(db, logger),
		Injuries:     postgres.NewInjuryRepository(db, logger),
		Timezones:    postgres.NewTimezoneRepository(db, logger),
	}
}
