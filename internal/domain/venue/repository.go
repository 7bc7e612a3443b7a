package venue

import "context"

type Repository interface {
	BulkUpsert(ctx context.Context, items []Venue) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListIDs(ctx context.Context) ([]int64, error)
}
