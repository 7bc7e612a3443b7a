package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seasonBlock(teamID, leagueID int64, season int) feed.SeasonStatEntry {
	var s feed.SeasonStatEntry
	s.Team = teamRef(teamID, "Team")
	s.League.ID = int64Ptr(leagueID)
	s.League.Season = intPtr(season)
	s.Games.Appearences = feed.Scalar(`30`)
	s.Games.Rating = feed.Scalar(`"7.120000"`)
	return s
}

func TestPlayerService_UpdateByLeagueSeason_WritesPlayersAndSeasonStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	svcs, repos := newTestServices(source)
	seedTeams(t, repos, 33)
	_, err := repos.Leagues.BulkUpsert(ctx, []league.Season{{LeagueID: 39, Season: 2024, Name: "Premier League"}})
	require.NoError(t, err)

	source.playerPages = [][]feed.PlayerEntry{
		{
			{Player: feed.PlayerInfo{ID: 276, Name: "Neymar"}, Statistics: []feed.SeasonStatEntry{
				seasonBlock(33, 39, 2024),
				seasonBlock(33, 2, 2024),
			}},
			{Player: feed.PlayerInfo{Name: "No Id"}},
		},
		{
			{Player: feed.PlayerInfo{ID: 277, Name: "Rashford"}, Statistics: []feed.SeasonStatEntry{seasonBlock(33, 39, 2024)}},
		},
	}

	counts, err := svcs.Players.UpdateByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Success)
	assert.Equal(t, 2, counts.Errors, "one rejected player plus one season stat without a stored league season")

	ids, err := repos.Players.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{276, 277}, ids)
}

func TestPlayerService_UpdateByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	source.profiles[276] = feed.PlayerInfo{ID: 276, Name: "Neymar", Height: feed.Scalar(`"175 cm"`)}
	svcs, repos := newTestServices(source)

	ok, err := svcs.Players.UpdateByID(ctx, 276)
	require.NoError(t, err)
	assert.True(t, ok)
	exists, err := repos.Players.Exists(ctx, 276)
	require.NoError(t, err)
	assert.True(t, exists)

	ok, err = svcs.Players.UpdateByID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCoachService_UpdateByID_RejectsUnresolvableTeam(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	source.coaches[40] = feed.CoachEntry{ID: 40, Name: "E. ten Hag", Team: feed.TeamRef{ID: int64Ptr(999)}}
	source.coaches[41] = feed.CoachEntry{ID: 41, Name: "R. Amorim", Team: teamRef(33, "Manchester United")}
	svcs, repos := newTestServices(source)

	ok, err := svcs.Coaches.UpdateByID(ctx, 40)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svcs.Coaches.UpdateByID(ctx, 41)
	require.NoError(t, err)
	assert.True(t, ok)
	exists, err := repos.Teams.Exists(ctx, 33)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInjuryService_UpdateByLeagueSeason_RequiresStoredFixture(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newFakeSource()
	svcs, repos := newTestServices(source)
	seedTeams(t, repos, 33, 34)
	_, err := repos.Players.BulkUpsert(ctx, []player.Player{{ID: 276, Name: "Neymar"}})
	require.NoError(t, err)
	_, err = repos.Fixtures.BulkUpsert(ctx, []fixture.Fixture{
		{ID: 1001, LeagueID: 39, Season: 2024, StatusShort: fixture.StatusNotStarted, HomeTeamID: 33, AwayTeamID: 34},
	})
	require.NoError(t, err)

	injuryFor := func(fixtureID int64) feed.InjuryEntry {
		var e feed.InjuryEntry
		e.Player.ID = int64Ptr(276)
		e.Player.Name = "Neymar"
		e.Player.Type = "Missing Fixture"
		e.Team = teamRef(33, "Manchester United")
		e.Fixture.ID = int64Ptr(fixtureID)
		e.League.ID = 39
		e.League.Season = 2024
		return e
	}
	source.injuryPages = [][]feed.InjuryEntry{{injuryFor(1001), injuryFor(5555)}}

	counts, err := svcs.Injuries.UpdateByLeagueSeason(ctx, 39, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{Success: 1, Errors: 1}, counts)
	assert.Equal(t, 1, source.callCount("fixtures"), "the missing fixture is looked up once")
}
