package league

import "context"

type Repository interface {
	BulkUpsert(ctx context.Context, items []Season) (int64, error)
	Exists(ctx context.Context, leagueID int64, season int) (bool, error)
	ListBySeason(ctx context.Context, season int) ([]Season, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Season, error)
}
