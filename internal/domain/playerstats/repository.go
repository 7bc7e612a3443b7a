package playerstats

import "context"

type FixtureRepository interface {
	BulkUpsert(ctx context.Context, items []FixtureStat) (int64, error)
	ListByFixture(ctx context.Context, fixtureID int64) ([]FixtureStat, error)
}

type SeasonRepository interface {
	BulkUpsert(ctx context.Context, items []SeasonStat) (int64, error)
}
