package team

import "context"

type Repository interface {
	BulkUpsert(ctx context.Context, items []Team) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListIDs(ctx context.Context) ([]int64, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
}
