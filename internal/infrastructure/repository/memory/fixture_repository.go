package memory

import (
	"context"
	"fmt"
	"slices"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type FixtureRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewFixtureRepository(store *Store, logger *logging.Logger) *FixtureRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureRepository{store: store, logger: logger}
}

func (r *FixtureRepository) BulkUpsert(ctx context.Context, items []fixture.Fixture) (int64, error) {
	s := r.store
	return upsertAll(ctx, s, r.logger, "fixtures", s.fixtures, items,
		func(f fixture.Fixture) (int64, bool) { return f.ID, f.ID > 0 },
		func(f fixture.Fixture) error {
			if _, ok := fixture.ParseStatus(string(f.StatusShort)); !ok {
				return crerr.Mark(fmt.Errorf("fixture %d has status %q outside the status check", f.ID, f.StatusShort), ErrConstraintViolation)
			}
			if f.VenueID != nil && !s.venues.has(*f.VenueID) {
				return missing("venue", *f.VenueID)
			}
			if !s.teams.has(f.HomeTeamID) {
				return missing("team", f.HomeTeamID)
			}
			if !s.teams.has(f.AwayTeamID) {
				return missing("team", f.AwayTeamID)
			}
			return nil
		})
}

func (r *FixtureRepository) Exists(_ context.Context, id int64) (bool, error) {
	return r.store.exists(func() bool { return r.store.fixtures.has(id) }), nil
}

func (r *FixtureRepository) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.fixtures.get(id)
	return item, ok, nil
}

func (r *FixtureRepository) ListIDs(_ context.Context) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedKeys(r.store.fixtures), nil
}

func (r *FixtureRepository) ListIDsByLeagueSeason(_ context.Context, leagueID int64, season int) ([]int64, error) {
	r.store.mu.RLock()
	items := r.store.fixtures.filter(func(f fixture.Fixture) bool {
		return f.LeagueID == leagueID && f.Season == season
	})
	r.store.mu.RUnlock()

	ids := make([]int64, 0, len(items))
	for _, f := range items {
		ids = append(ids, f.ID)
	}
	slices.Sort(ids)
	return ids, nil
}

// fixtureTeamParents checks the parents shared by every per-fixture table.
func (s *Store) fixtureTeamParents(fixtureID, teamID int64) error {
	if !s.fixtures.has(fixtureID) {
		return missing("fixture", fixtureID)
	}
	if !s.teams.has(teamID) {
		return missing("team", teamID)
	}
	return nil
}

type FixtureEventRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewFixtureEventRepository(store *Store, logger *logging.Logger) *FixtureEventRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureEventRepository{store: store, logger: logger}
}

func (r *FixtureEventRepository) BulkUpsert(ctx context.Context, items []fixture.Event) (int64, error) {
	s := r.store
	return upsertAll(ctx, s, r.logger, "fixture_events", s.events, items,
		func(e fixture.Event) (int64, bool) { return e.ID, e.ID > 0 },
		func(e fixture.Event) error {
			if err := s.fixtureTeamParents(e.FixtureID, e.TeamID); err != nil {
				return err
			}
			if e.PlayerID != nil && !s.players.has(*e.PlayerID) {
				return missing("player", *e.PlayerID)
			}
			return nil
		})
}

func (r *FixtureEventRepository) ListByFixture(_ context.Context, fixtureID int64) ([]fixture.Event, error) {
	r.store.mu.RLock()
	out := r.store.events.filter(func(e fixture.Event) bool { return e.FixtureID == fixtureID })
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b fixture.Event) int {
		if a.Sequence != b.Sequence {
			return a.Sequence - b.Sequence
		}
		return cmpInt64(a.ID, b.ID)
	})
	return out, nil
}

type FixtureLineupRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewFixtureLineupRepository(store *Store, logger *logging.Logger) *FixtureLineupRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureLineupRepository{store: store, logger: logger}
}

func (r *FixtureLineupRepository) BulkUpsert(ctx context.Context, items []fixture.Lineup) (int64, error) {
	s := r.store
	return upsertAll(ctx, s, r.logger, "fixture_lineups", s.lineups, items,
		func(l fixture.Lineup) (fixtureTeamKey, bool) {
			return fixtureTeamKey{FixtureID: l.FixtureID, TeamID: l.TeamID}, l.FixtureID > 0 && l.TeamID > 0
		},
		func(l fixture.Lineup) error { return s.fixtureTeamParents(l.FixtureID, l.TeamID) })
}

func (r *FixtureLineupRepository) ListByFixture(_ context.Context, fixtureID int64) ([]fixture.Lineup, error) {
	r.store.mu.RLock()
	out := r.store.lineups.filter(func(l fixture.Lineup) bool { return l.FixtureID == fixtureID })
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b fixture.Lineup) int { return cmpInt64(a.TeamID, b.TeamID) })
	return out, nil
}

type FixtureStatisticRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewFixtureStatisticRepository(store *Store, logger *logging.Logger) *FixtureStatisticRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureStatisticRepository{store: store, logger: logger}
}

func (r *FixtureStatisticRepository) BulkUpsert(ctx context.Context, items []fixture.TeamStatistic) (int64, error) {
	s := r.store
	items = slices.Clone(items)
	for i := range items {
		if items[i].Raw == nil {
			items[i].Raw = []fixture.RawStat{}
		}
	}
	return upsertAll(ctx, s, r.logger, "fixture_team_statistics", s.statistics, items,
		func(st fixture.TeamStatistic) (fixtureTeamKey, bool) {
			return fixtureTeamKey{FixtureID: st.FixtureID, TeamID: st.TeamID}, st.FixtureID > 0 && st.TeamID > 0
		},
		func(st fixture.TeamStatistic) error { return s.fixtureTeamParents(st.FixtureID, st.TeamID) })
}

func (r *FixtureStatisticRepository) ListByFixture(_ context.Context, fixtureID int64) ([]fixture.TeamStatistic, error) {
	r.store.mu.RLock()
	out := r.store.statistics.filter(func(st fixture.TeamStatistic) bool { return st.FixtureID == fixtureID })
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b fixture.TeamStatistic) int { return cmpInt64(a.TeamID, b.TeamID) })
	return out, nil
}
