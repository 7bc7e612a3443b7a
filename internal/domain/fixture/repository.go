package fixture

import "context"

type Repository interface {
	BulkUpsert(ctx context.Context, items []Fixture) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (Fixture, bool, error)
	ListIDs(ctx context.Context) ([]int64, error)
	ListIDsByLeagueSeason(ctx context.Context, leagueID int64, season int) ([]int64, error)
}

type EventRepository interface {
	BulkUpsert(ctx context.Context, items []Event) (int64, error)
	ListByFixture(ctx context.Context, fixtureID int64) ([]Event, error)
}

type LineupRepository interface {
	BulkUpsert(ctx context.Context, items []Lineup) (int64, error)
	ListByFixture(ctx context.Context, fixtureID int64) ([]Lineup, error)
}

type StatisticRepository interface {
	BulkUpsert(ctx context.Context, items []TeamStatistic) (int64, error)
	ListByFixture(ctx context.Context, fixtureID int64) ([]TeamStatistic, error)
}
