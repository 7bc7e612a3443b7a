package country

import "context"

type Repository interface {
	BulkUpsert(ctx context.Context, items []Country) (int64, error)
	Exists(ctx context.Context, code string) (bool, error)
}
