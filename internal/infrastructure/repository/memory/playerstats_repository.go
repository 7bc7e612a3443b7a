package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/football-stats/internal/domain/injury"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type PlayerFixtureStatRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewPlayerFixtureStatRepository(store *Store, logger *logging.Logger) *PlayerFixtureStatRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerFixtureStatRepository{store: store, logger: logger}
}

func (r *PlayerFixtureStatRepository) BulkUpsert(ctx context.Context, items []playerstats.FixtureStat) (int64, error) {
	s := r.store
	return upsertAll(ctx, s, r.logger, "player_fixture_stats", s.playerFixtures, items,
		func(st playerstats.FixtureStat) (playerFixtureKey, bool) {
			k := playerFixtureKey{PlayerID: st.PlayerID, FixtureID: st.FixtureID, TeamID: st.TeamID}
			return k, k.PlayerID > 0 && k.FixtureID > 0 && k.TeamID > 0
		},
		func(st playerstats.FixtureStat) error {
			if !s.players.has(st.PlayerID) {
				return missing("player", st.PlayerID)
			}
			return s.fixtureTeamParents(st.FixtureID, st.TeamID)
		})
}

func (r *PlayerFixtureStatRepository) ListByFixture(_ context.Context, fixtureID int64) ([]playerstats.FixtureStat, error) {
	r.store.mu.RLock()
	out := r.store.playerFixtures.filter(func(st playerstats.FixtureStat) bool { return st.FixtureID == fixtureID })
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b playerstats.FixtureStat) int {
		if a.TeamID != b.TeamID {
			return cmpInt64(a.TeamID, b.TeamID)
		}
		return cmpInt64(a.PlayerID, b.PlayerID)
	})
	return out, nil
}

type PlayerSeasonStatRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewPlayerSeasonStatRepository(store *Store, logger *logging.Logger) *PlayerSeasonStatRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerSeasonStatRepository{store: store, logger: logger}
}

func (r *PlayerSeasonStatRepository) BulkUpsert(ctx context.Context, items []playerstats.SeasonStat) (int64, error) {
	s := r.store
	return upsertAll(ctx, s, r.logger, "player_season_stats", s.playerSeasons, items,
		func(st playerstats.SeasonStat) (playerSeasonKey, bool) {
			k := playerSeasonKey{PlayerID: st.PlayerID, TeamID: st.TeamID, LeagueID: st.LeagueID, Season: st.Season}
			return k, k.PlayerID > 0 && k.TeamID > 0 && k.LeagueID > 0 && k.Season > 0
		},
		func(st playerstats.SeasonStat) error {
			if !s.players.has(st.PlayerID) {
				return missing("player", st.PlayerID)
			}
			if !s.teams.has(st.TeamID) {
				return missing("team", st.TeamID)
			}
			key := league.Key{LeagueID: st.LeagueID, Season: st.Season}
			if !s.leagueSeasons.has(key) {
				return missing("league season", key)
			}
			return nil
		})
}

type InjuryRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewInjuryRepository(store *Store, logger *logging.Logger) *InjuryRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &InjuryRepository{store: store, logger: logger}
}

func (r *InjuryRepository) BulkUpsert(ctx context.Context, items []injury.Injury) (int64, error) {
	s := r.store
	return upsertAll(ctx, s, r.logger, "injuries", s.injuries, items,
		func(in injury.Injury) (injuryKey, bool) {
			k := injuryKey{PlayerID: in.PlayerID, FixtureID: in.FixtureID}
			return k, k.PlayerID > 0 && k.FixtureID > 0
		},
		func(in injury.Injury) error {
			if !s.players.has(in.PlayerID) {
				return missing("player", in.PlayerID)
			}
			return s.fixtureTeamParents(in.FixtureID, in.TeamID)
		})
}
