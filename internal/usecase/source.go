package usecase

import (
	"context"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
)

// Source is the provider surface the orchestrators consume. Every listing
// method returns one decoded page.
type Source interface {
	Countries(ctx context.Context, q feed.Query) (feed.Page[feed.CountryEntry], error)
	Leagues(ctx context.Context, q feed.Query) (feed.Page[feed.LeagueEntry], error)
	Venues(ctx context.Context, q feed.Query) (feed.Page[feed.VenueEntry], error)
	Teams(ctx context.Context, q feed.Query) (feed.Page[feed.TeamEntry], error)
	Players(ctx context.Context, q feed.Query) (feed.Page[feed.PlayerEntry], error)
	PlayerProfiles(ctx context.Context, q feed.Query) (feed.Page[feed.PlayerProfileEntry], error)
	Coaches(ctx context.Context, q feed.Query) (feed.Page[feed.CoachEntry], error)
	Fixtures(ctx context.Context, q feed.Query) (feed.Page[feed.FixtureEntry], error)
	FixtureEvents(ctx context.Context, fixtureID int64) (feed.Page[feed.EventEntry], error)
	FixtureLineups(ctx context.Context, fixtureID int64) (feed.Page[feed.LineupEntry], error)
	FixtureStatistics(ctx context.Context, fixtureID int64) (feed.Page[feed.TeamStatisticsEntry], error)
	FixturePlayers(ctx context.Context, fixtureID int64) (feed.Page[feed.FixturePlayersTeamEntry], error)
	Injuries(ctx context.Context, q feed.Query) (feed.Page[feed.InjuryEntry], error)
	Timezones(ctx context.Context) ([]string, error)
}
