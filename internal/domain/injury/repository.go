package injury

import "context"

type Repository interface {
	BulkUpsert(ctx context.Context, items []Injury) (int64, error)
}
