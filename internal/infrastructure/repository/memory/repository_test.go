package memory

import (
	"context"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/player"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	s := NewStore()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func TestTeamRepository_UpsertIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()
	repo := NewTeamRepository(store, logging.NewNop())
	items := []team.Team{{ID: 33, Name: "Manchester United"}, {ID: 34, Name: "Newcastle"}}

	n, err := repo.BulkUpsert(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	first := *store.teams.rows[33]

	n, err = repo.BulkUpsert(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	second := *store.teams.rows[33]

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{33, 34}, ids)

	assert.Equal(t, first.value, second.value)
	assert.Equal(t, first.createdAt, second.createdAt)
	assert.True(t, second.updatedAt.After(first.updatedAt), "updated_at must advance on every touch")
}

func TestTeamRepository_DuplicatesCollapseLastWriteWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository(newTestStore(), logging.NewNop())

	n, err := repo.BulkUpsert(ctx, []team.Team{
		{ID: 40, Name: "Liverpool FC"},
		{ID: 0, Name: "keyless"},
		{ID: 40, Name: "Liverpool"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, ok, err := repo.GetByID(ctx, 40)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Liverpool", got.Name)
}

func TestTeamRepository_EmptyAndKeylessBatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository(newTestStore(), logging.NewNop())

	n, err := repo.BulkUpsert(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.BulkUpsert(ctx, []team.Team{{Name: "no id"}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFixtureRepository_RejectsMissingParents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()
	teams := NewTeamRepository(store, logging.NewNop())
	fixtures := NewFixtureRepository(store, logging.NewNop())

	_, err := teams.BulkUpsert(ctx, []team.Team{{ID: 1, Name: "Home"}, {ID: 2, Name: "Away"}})
	require.NoError(t, err)

	venueID := int64(99)
	batch := []fixture.Fixture{
		{ID: 10, HomeTeamID: 1, AwayTeamID: 2, StatusShort: fixture.StatusNotStarted},
		{ID: 11, HomeTeamID: 1, AwayTeamID: 2, StatusShort: fixture.StatusFinished, VenueID: &venueID},
	}
	_, err = fixtures.BulkUpsert(ctx, batch)
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrConstraintViolation))

	ok, err := fixtures.Exists(ctx, 10)
	require.NoError(t, err)
	assert.False(t, ok, "a rejected batch must not be partially applied")

	_, err = NewVenueRepository(store, logging.NewNop()).BulkUpsert(ctx, []venue.Venue{{ID: 99, Name: "Old Trafford"}})
	require.NoError(t, err)

	n, err := fixtures.BulkUpsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestFixtureRepository_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()
	_, err := NewTeamRepository(store, logging.NewNop()).BulkUpsert(ctx, []team.Team{{ID: 1}, {ID: 2}})
	require.NoError(t, err)

	_, err = NewFixtureRepository(store, logging.NewNop()).BulkUpsert(ctx, []fixture.Fixture{
		{ID: 10, HomeTeamID: 1, AwayTeamID: 2, StatusShort: "XX"},
	})
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrConstraintViolation))
}

func TestPlayerSeasonStatRepository_RequiresLeagueSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()
	store.players.put(7, player.Player{ID: 7}, store.tick())
	store.teams.put(33, team.Team{ID: 33}, store.tick())

	repo := NewPlayerSeasonStatRepository(store, logging.NewNop())
	stat := playerstats.SeasonStat{PlayerID: 7, TeamID: 33, LeagueID: 39, Season: 2024}

	_, err := repo.BulkUpsert(ctx, []playerstats.SeasonStat{stat})
	require.Error(t, err)

	_, err = NewLeagueRepository(store, logging.NewNop()).BulkUpsert(ctx, []league.Season{{LeagueID: 39, Season: 2024, Name: "Premier League"}})
	require.NoError(t, err)

	n, err := repo.BulkUpsert(ctx, []playerstats.SeasonStat{stat})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFixtureStatisticRepository_AlwaysKeepsRawList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore()
	store.teams.put(33, team.Team{ID: 33}, store.tick())
	store.fixtures.put(10, fixture.Fixture{ID: 10}, store.tick())

	repo := NewFixtureStatisticRepository(store, logging.NewNop())
	input := []fixture.TeamStatistic{{FixtureID: 10, TeamID: 33}}
	_, err := repo.BulkUpsert(ctx, input)
	require.NoError(t, err)
	assert.Nil(t, input[0].Raw, "input slice must not be modified")

	got, err := repo.ListByFixture(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Raw)
}

func TestTimezoneRepository_ReplaceAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTimezoneRepository(newTestStore(), logging.NewNop())

	_, err := repo.ReplaceAll(ctx, []string{"UTC", "Europe/London"})
	require.NoError(t, err)
	n, err := repo.ReplaceAll(ctx, []string{"Asia/Jakarta", " UTC ", "UTC"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Asia/Jakarta", "UTC"}, got)

	n, err = repo.ReplaceAll(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2, "an empty refresh keeps the previous list")
}
