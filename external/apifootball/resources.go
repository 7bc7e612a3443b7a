package apifootball

import (
	"context"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-stats/internal/domain/feed"
)

func fetchPage[T any](ctx context.Context, c *Client, resource string, q feed.Query) (feed.Page[T], error) {
	raw, err := c.Fetch(ctx, resource, q.Params())
	if err != nil {
		return feed.Page[T]{}, err
	}
	var env feed.Envelope[T]
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return feed.Page[T]{}, &FetchError{Kind: KindMalformedResponse, Resource: resource, Err: err}
	}
	return feed.PageOf(env), nil
}

func (c *Client) Countries(ctx context.Context, q feed.Query) (feed.Page[feed.CountryEntry], error) {
	return fetchPage[feed.CountryEntry](ctx, c, "/countries", q)
}

func (c *Client) Leagues(ctx context.Context, q feed.Query) (feed.Page[feed.LeagueEntry], error) {
	return fetchPage[feed.LeagueEntry](ctx, c, "/leagues", q)
}

func (c *Client) Venues(ctx context.Context, q feed.Query) (feed.Page[feed.VenueEntry], error) {
	return fetchPage[feed.VenueEntry](ctx, c, "/venues", q)
}

func (c *Client) Teams(ctx context.Context, q feed.Query) (feed.Page[feed.TeamEntry], error) {
	return fetchPage[feed.TeamEntry](ctx, c, "/teams", q)
}

func (c *Client) Players(ctx context.Context, q feed.Query) (feed.Page[feed.PlayerEntry], error) {
	return fetchPage[feed.PlayerEntry](ctx, c, "/players", q)
}

func (c *Client) PlayerProfiles(ctx context.Context, q feed.Query) (feed.Page[feed.PlayerProfileEntry], error) {
	return fetchPage[feed.PlayerProfileEntry](ctx, c, "/players/profiles", q)
}

func (c *Client) Coaches(ctx context.Context, q feed.Query) (feed.Page[feed.CoachEntry], error) {
	return fetchPage[feed.CoachEntry](ctx, c, "/coachs", q)
}

func (c *Client) Fixtures(ctx context.Context, q feed.Query) (feed.Page[feed.FixtureEntry], error) {
	return fetchPage[feed.FixtureEntry](ctx, c, "/fixtures", q)
}

func (c *Client) FixtureEvents(ctx context.Context, fixtureID int64) (feed.Page[feed.EventEntry], error) {
	return fetchPage[feed.EventEntry](ctx, c, "/fixtures/events", feed.Query{Fixture: fixtureID})
}

func (c *Client) FixtureLineups(ctx context.Context, fixtureID int64) (feed.Page[feed.LineupEntry], error) {
	return fetchPage[feed.LineupEntry](ctx, c, "/fixtures/lineups", feed.Query{Fixture: fixtureID})
}

func (c *Client) FixtureStatistics(ctx context.Context, fixtureID int64) (feed.Page[feed.TeamStatisticsEntry], error) {
	return fetchPage[feed.TeamStatisticsEntry](ctx, c, "/fixtures/statistics", feed.Query{Fixture: fixtureID})
}

func (c *Client) FixturePlayers(ctx context.Context, fixtureID int64) (feed.Page[feed.FixturePlayersTeamEntry], error) {
	return fetchPage[feed.FixturePlayersTeamEntry](ctx, c, "/fixtures/players", feed.Query{Fixture: fixtureID})
}

func (c *Client) Injuries(ctx context.Context, q feed.Query) (feed.Page[feed.InjuryEntry], error) {
	return fetchPage[feed.InjuryEntry](ctx, c, "/injuries", q)
}

func (c *Client) Timezones(ctx context.Context) ([]string, error) {
	page, err := fetchPage[string](ctx, c, "/timezone", feed.Query{})
	if err != nil {
		return nil, err
	}
	return page.Entries, nil
}
