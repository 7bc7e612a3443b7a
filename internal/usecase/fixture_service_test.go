package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/memory"
	fixturemock "github.com/riskibarqy/football-stats/internal/mocks/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedTeams(t *testing.T, repos Repositories, ids ...int64) {
	t.Helper()
	items := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		items = append(items, team.Team{ID: id, Name: "Team"})
	}
	if _, err := repos.Teams.BulkUpsert(context.Background(), items); err != nil {
		t.Fatalf("seed teams: %v", err)
	}
}

func TestFixtureService_UpdateByLeagueSeason_UnknownVenueWithoutFragment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	svcs, repos := newTestServices(source)

	_, err := repos.Venues.BulkUpsert(ctx, []venue.Venue{{ID: 556, Name: "Old Trafford"}})
	require.NoError(t, err)
	seedTeams(t, repos, 33, 34, 40, 50)

	source.fixturePages = [][]feed.FixtureEntry{{
		fixtureEntry(1001, 33, 34, 556, "Old Trafford"),
		fixtureEntry(1002, 40, 50, 0, ""),
		fixtureEntry(1003, 33, 50, 999, ""),
	}}

	counts, err := svcs.Fixtures.UpdateByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{Success: 2, Errors: 1}, counts)

	venueIDs, err := repos.Venues.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{556}, venueIDs)

	exists, err := repos.Fixtures.Exists(ctx, 1003)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 1, source.callCount("venues"))
}

func TestFixtureService_UpdateByLeagueSeason_FetchesMissingTeam(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	svcs, repos := newTestServices(source)
	seedTeams(t, repos, 33)

	source.teams[77] = teamEntry(77, "Fetched FC")
	source.fixturePages = [][]feed.FixtureEntry{{fixtureEntry(2001, 33, 77, 0, "")}}

	counts, err := svcs.Fixtures.UpdateByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{Success: 1}, counts)

	got, ok, err := repos.Teams.GetByID(ctx, 77)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Fetched FC", got.Name)
}

func TestFixtureService_UpdateByLeagueSeason_FallsBackToTeamFragment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	source.fails["teams"] = errSourceDown
	svcs, repos := newTestServices(source)
	seedTeams(t, repos, 33)

	source.fixturePages = [][]feed.FixtureEntry{{
		fixtureEntry(2001, 33, 88, 0, ""),
		fixtureEntry(2002, 88, 33, 0, ""),
	}}

	counts, err := svcs.Fixtures.UpdateByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{Success: 2}, counts)

	got, ok, err := repos.Teams.GetByID(ctx, 88)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Away 88", got.Name)
	assert.Equal(t, 1, source.callCount("teams"), "resolved team should not be fetched twice in one run")
}

func TestFixtureService_UpdateByLeagueSeason_WriteFailureCountsEveryRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	repos := memoryRepositories(memory.NewStore())
	fixtures := fixturemock.NewRepository(t)
	repos.Fixtures = fixtures
	seedTeams(t, repos, 1, 2)
	svcs := NewServices(source, repos, logging.NewNop())

	page := make([]feed.FixtureEntry, 0, 10)
	for i := int64(1); i <= 10; i++ {
		page = append(page, fixtureEntry(3000+i, 1, 2, 0, ""))
	}
	source.fixturePages = [][]feed.FixtureEntry{page}

	fixtures.
		On("BulkUpsert", mock.Anything, mock.MatchedBy(func(items []fixture.Fixture) bool { return len(items) == 10 })).
		Return(int64(0), errors.New("connection reset")).
		Once()

	counts, err := svcs.Fixtures.UpdateByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{Success: 0, Errors: 10}, counts)
}

func TestFixtureService_UpdateByLeagueSeason_PageRules(t *testing.T) {
	t.Parallel()

	pages := [][]feed.FixtureEntry{
		{fixtureEntry(1, 10, 20, 0, "")},
		{fixtureEntry(2, 10, 20, 0, "")},
		{fixtureEntry(3, 10, 20, 0, ""), fixtureEntry(3, 10, 20, 0, "")},
	}

	cases := []struct {
		name      string
		fails     map[string]error
		maxPages  int
		want      Counts
		wantErr   bool
		wantCalls int
	}{
		{name: "all pages", want: Counts{Success: 3}, wantCalls: 3},
		{name: "later page failure continues", fails: map[string]error{"fixtures:2": errSourceDown}, want: Counts{Success: 2, Errors: 1}, wantCalls: 3},
		{name: "first page failure aborts", fails: map[string]error{"fixtures:1": errSourceDown}, want: Counts{Errors: 1}, wantErr: true, wantCalls: 1},
		{name: "max pages", maxPages: 1, want: Counts{Success: 1}, wantCalls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			source := newFakeSource()
			for k, v := range tc.fails {
				source.fails[k] = v
			}
			source.fixturePages = pages
			svcs, repos := newTestServices(source)
			seedTeams(t, repos, 10, 20)

			counts, err := svcs.Fixtures.UpdateByLeagueSeason(context.Background(), 39, 2024, tc.maxPages)
			if tc.wantErr {
				require.ErrorIs(t, err, errSourceDown)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, counts)
			assert.Equal(t, tc.wantCalls, source.callCount("fixtures"))
		})
	}
}

func TestFixtureService_UpdateByID_StoresEmbeddedDetails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	svcs, repos := newTestServices(source)
	seedTeams(t, repos, 33, 34)

	entry := fixtureEntry(4001, 33, 34, 0, "")
	var goal feed.EventEntry
	goal.Time.Elapsed = intPtr(23)
	goal.Team = teamRef(33, "Manchester United")
	goal.Player = feed.PersonRef{ID: int64Ptr(500)}
	goal.Type = "Goal"
	goal.Detail = "Normal Goal"
	entry.Events = []feed.EventEntry{goal}
	entry.Statistics = []feed.TeamStatisticsEntry{{
		Team: teamRef(33, "Manchester United"),
		Statistics: []feed.StatisticEntry{
			{Type: "Ball Possession", Value: feed.Scalar(`"61%"`)},
			{Type: "expected_goals", Value: feed.Scalar(`1.84`)},
		},
	}}
	source.fixtures[4001] = entry

	ok, err := svcs.Fixtures.UpdateByID(ctx, 4001)
	require.NoError(t, err)
	require.True(t, ok)

	events, err := repos.Events.ListByFixture(ctx, 4001)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].PlayerID, "unresolvable player link is dropped")
	assert.Equal(t, int64(500), events[0].Player.ID)

	stats, err := repos.Statistics.ListByFixture(ctx, 4001)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.NotNil(t, stats[0].BallPossession)
	assert.Equal(t, 61, *stats[0].BallPossession)
	assert.Len(t, stats[0].Raw, 2)
	assert.Equal(t, "expected_goals", stats[0].Raw[1].Type)
}

func TestFixtureService_UpdateEventsByLeagueSeason_PrependedEventKeepsRowsUnique(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	svcs, repos := newTestServices(source)
	seedTeams(t, repos, 33, 34)
	_, err := repos.Fixtures.BulkUpsert(ctx, []fixture.Fixture{
		{ID: 10, LeagueID: 39, Season: 2024, StatusShort: fixture.StatusFinished, HomeTeamID: 33, AwayTeamID: 34},
	})
	require.NoError(t, err)

	event := func(team int64, elapsed int, kind, detail string) feed.EventEntry {
		var e feed.EventEntry
		e.Time.Elapsed = intPtr(elapsed)
		e.Team = teamRef(team, "Team")
		e.Type = kind
		e.Detail = detail
		return e
	}
	goal := event(33, 30, "Goal", "Normal Goal")
	card := event(34, 60, "Card", "Yellow Card")

	source.events[10] = []feed.EventEntry{goal, card}
	counts, err := svcs.Fixtures.UpdateEventsByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{Success: 2}, counts)

	source.events[10] = []feed.EventEntry{event(33, 5, "Card", "Yellow Card"), goal, card}
	counts, err = svcs.Fixtures.UpdateEventsByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{Success: 3}, counts)

	stored, err := repos.Events.ListByFixture(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "Card", stored[0].Type)
	assert.Equal(t, 5, stored[0].Elapsed)
}

func TestFixtureService_UpdateByID_NotReturned(t *testing.T) {
	t.Parallel()

	svcs, _ := newTestServices(newFakeSource())
	ok, err := svcs.Fixtures.UpdateByID(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svcs.Fixtures.UpdateByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFixtureService_UpdateByID_StoreFailureIsDependencyError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	repos := memoryRepositories(memory.NewStore())
	fixtures := fixturemock.NewRepository(t)
	repos.Fixtures = fixtures
	seedTeams(t, repos, 33, 34)
	svcs := NewServices(source, repos, logging.NewNop())
	source.fixtures[4002] = fixtureEntry(4002, 33, 34, 0, "")

	fixtures.
		On("BulkUpsert", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("connection reset")).
		Once()

	ok, err := svcs.Fixtures.UpdateByID(ctx, 4002)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.False(t, ok)
}

func TestFixtureService_UpdateEventsByLeagueSeason_FailedFixtureCountsOneError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	svcs, repos := newTestServices(source)
	seedTeams(t, repos, 33, 34)
	_, err := repos.Fixtures.BulkUpsert(ctx, []fixture.Fixture{
		{ID: 1, LeagueID: 39, Season: 2024, StatusShort: fixture.StatusFinished, HomeTeamID: 33, AwayTeamID: 34},
		{ID: 2, LeagueID: 39, Season: 2024, StatusShort: fixture.StatusFinished, HomeTeamID: 34, AwayTeamID: 33},
	})
	require.NoError(t, err)
	source.fails["fixtures/events"] = errSourceDown

	counts, err := svcs.Fixtures.UpdateEventsByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{Errors: 2}, counts)
	assert.Equal(t, 2, source.callCount("fixtures/events"))
}
