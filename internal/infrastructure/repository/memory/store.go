// Package memory keeps every table in process. It enforces the same keys,
// foreign keys and timestamp rules as the postgres schema so the ingestion
// pipeline behaves identically against either store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-stats/internal/domain/coach"
	"github.com/riskibarqy/football-stats/internal/domain/country"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/injury"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/player"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
	"github.com/riskibarqy/football-stats/internal/platform/batch"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

var ErrConstraintViolation = crerr.New("memory store constraint violation")

type fixtureTeamKey struct {
	FixtureID int64
	TeamID    int64
}

type playerFixtureKey struct {
	PlayerID  int64
	FixtureID int64
	TeamID    int64
}

type playerSeasonKey struct {
	PlayerID int64
	TeamID   int64
	LeagueID int64
	Season   int
}

type injuryKey struct {
	PlayerID  int64
	FixtureID int64
}

type row[V any] struct {
	value     V
	createdAt time.Time
	updatedAt time.Time
}

type table[K comparable, V any] struct {
	rows map[K]*row[V]
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{rows: make(map[K]*row[V])}
}

func (t *table[K, V]) put(key K, value V, now time.Time) {
	if existing, ok := t.rows[key]; ok {
		existing.value = value
		existing.updatedAt = now
		return
	}
	t.rows[key] = &row[V]{value: value, createdAt: now, updatedAt: now}
}

func (t *table[K, V]) has(key K) bool {
	_, ok := t.rows[key]
	return ok
}

func (t *table[K, V]) get(key K) (V, bool) {
	r, ok := t.rows[key]
	if !ok {
		var zero V
		return zero, false
	}
	return r.value, true
}

func (t *table[K, V]) filter(keep func(V) bool) []V {
	out := make([]V, 0)
	for _, r := range t.rows {
		if keep == nil || keep(r.value) {
			out = append(out, r.value)
		}
	}
	return out
}

// Store owns every table behind one lock so foreign key checks see a
// consistent view of the parents.
type Store struct {
	mu   sync.RWMutex
	now  func() time.Time
	last time.Time

	countries      *table[string, country.Country]
	leagueSeasons  *table[league.Key, league.Season]
	venues         *table[int64, venue.Venue]
	teams          *table[int64, team.Team]
	players        *table[int64, player.Player]
	coaches        *table[int64, coach.Coach]
	fixtures       *table[int64, fixture.Fixture]
	events         *table[int64, fixture.Event]
	lineups        *table[fixtureTeamKey, fixture.Lineup]
	statistics     *table[fixtureTeamKey, fixture.TeamStatistic]
	playerFixtures *table[playerFixtureKey, playerstats.FixtureStat]
	playerSeasons  *table[playerSeasonKey, playerstats.SeasonStat]
	injuries       *table[injuryKey, injury.Injury]
	timezones      []string
}

func NewStore() *Store {
	return &Store{
		now:            time.Now,
		countries:      newTable[string, country.Country](),
		leagueSeasons:  newTable[league.Key, league.Season](),
		venues:         newTable[int64, venue.Venue](),
		teams:          newTable[int64, team.Team](),
		players:        newTable[int64, player.Player](),
		coaches:        newTable[int64, coach.Coach](),
		fixtures:       newTable[int64, fixture.Fixture](),
		events:         newTable[int64, fixture.Event](),
		lineups:        newTable[fixtureTeamKey, fixture.Lineup](),
		statistics:     newTable[fixtureTeamKey, fixture.TeamStatistic](),
		playerFixtures: newTable[playerFixtureKey, playerstats.FixtureStat](),
		playerSeasons:  newTable[playerSeasonKey, playerstats.SeasonStat](),
		injuries:       newTable[injuryKey, injury.Injury](),
	}
}

// tick returns a timestamp strictly after the previous one. Callers hold mu.
func (s *Store) tick() time.Time {
	now := s.now().UTC().Truncate(time.Microsecond)
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

func missing(relation string, key any) error {
	return crerr.Mark(fmt.Errorf("%s %v does not exist", relation, key), ErrConstraintViolation)
}

// upsertAll mirrors the postgres upsert: keyless records are dropped,
// duplicates collapse last-write-wins, and the whole batch is rejected when
// any record fails check.
func upsertAll[K comparable, V any](
	ctx context.Context,
	s *Store,
	logger *logging.Logger,
	name string,
	t *table[K, V],
	items []V,
	key func(V) (K, bool),
	check func(V) error,
) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	items = batch.DedupeLast(items, key)
	if len(items) == 0 {
		logger.WarnContext(ctx, "upsert skipped: no records with a key", "table", name)
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if check != nil {
		for _, item := range items {
			if err := check(item); err != nil {
				return 0, fmt.Errorf("upsert %s: %w", name, err)
			}
		}
	}

	now := s.tick()
	for _, item := range items {
		k, _ := key(item)
		t.put(k, item, now)
	}
	return int64(len(items)), nil
}

func (s *Store) exists(fn func() bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}
