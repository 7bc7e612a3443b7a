package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/riskibarqy/football-stats/internal/domain/country"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type CountryRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewCountryRepository(store *Store, logger *logging.Logger) *CountryRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &CountryRepository{store: store, logger: logger}
}

func (r *CountryRepository) BulkUpsert(ctx context.Context, items []country.Country) (int64, error) {
	return upsertAll(ctx, r.store, r.logger, "countries", r.store.countries, items,
		func(c country.Country) (string, bool) {
			code := strings.TrimSpace(c.Code)
			return code, code != ""
		}, nil)
}

func (r *CountryRepository) Exists(_ context.Context, code string) (bool, error) {
	return r.store.exists(func() bool { return r.store.countries.has(strings.TrimSpace(code)) }), nil
}

type LeagueRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewLeagueRepository(store *Store, logger *logging.Logger) *LeagueRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueRepository{store: store, logger: logger}
}

func (r *LeagueRepository) BulkUpsert(ctx context.Context, items []league.Season) (int64, error) {
	s := r.store
	return upsertAll(ctx, s, r.logger, "league_seasons", s.leagueSeasons, items,
		func(item league.Season) (league.Key, bool) {
			k := item.Key()
			return k, k.Valid()
		},
		func(item league.Season) error {
			if item.CountryCode != nil && !s.countries.has(*item.CountryCode) {
				return missing("country", *item.CountryCode)
			}
			return nil
		})
}

func (r *LeagueRepository) Exists(_ context.Context, leagueID int64, season int) (bool, error) {
	key := league.Key{LeagueID: leagueID, Season: season}
	return r.store.exists(func() bool { return r.store.leagueSeasons.has(key) }), nil
}

func (r *LeagueRepository) ListBySeason(_ context.Context, season int) ([]league.Season, error) {
	return r.list(func(item league.Season) bool { return item.Season == season }), nil
}

func (r *LeagueRepository) ListByLeague(_ context.Context, leagueID int64) ([]league.Season, error) {
	return r.list(func(item league.Season) bool { return item.LeagueID == leagueID }), nil
}

func (r *LeagueRepository) list(keep func(league.Season) bool) []league.Season {
	r.store.mu.RLock()
	out := r.store.leagueSeasons.filter(keep)
	r.store.mu.RUnlock()

	slices.SortFunc(out, func(a, b league.Season) int {
		if a.LeagueID != b.LeagueID {
			return cmpInt64(a.LeagueID, b.LeagueID)
		}
		return a.Season - b.Season
	})
	return out
}

type VenueRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewVenueRepository(store *Store, logger *logging.Logger) *VenueRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &VenueRepository{store: store, logger: logger}
}

func (r *VenueRepository) BulkUpsert(ctx context.Context, items []venue.Venue) (int64, error) {
	return upsertAll(ctx, r.store, r.logger, "venues", r.store.venues, items,
		func(v venue.Venue) (int64, bool) { return v.ID, v.ID > 0 }, nil)
}

func (r *VenueRepository) Exists(_ context.Context, id int64) (bool, error) {
	return r.store.exists(func() bool { return r.store.venues.has(id) }), nil
}

func (r *VenueRepository) ListIDs(_ context.Context) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedKeys(r.store.venues), nil
}

type TeamRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewTeamRepository(store *Store, logger *logging.Logger) *TeamRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamRepository{store: store, logger: logger}
}

// BulkUpsert does not check venue_id; the column carries no foreign key.
func (r *TeamRepository) BulkUpsert(ctx context.Context, items []team.Team) (int64, error) {
	return upsertAll(ctx, r.store, r.logger, "teams", r.store.teams, items,
		func(t team.Team) (int64, bool) { return t.ID, t.ID > 0 }, nil)
}

func (r *TeamRepository) Exists(_ context.Context, id int64) (bool, error) {
	return r.store.exists(func() bool { return r.store.teams.has(id) }), nil
}

func (r *TeamRepository) ListIDs(_ context.Context) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedKeys(r.store.teams), nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.teams.get(id)
	return item, ok, nil
}

func sortedKeys[V any](t *table[int64, V]) []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
