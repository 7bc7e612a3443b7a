// Package timezone stores the provider's timezone reference list. The table
// is replaced wholesale on every refresh.
package timezone

import "context"

type Repository interface {
	ReplaceAll(ctx context.Context, names []string) (int64, error)
	List(ctx context.Context) ([]string, error)
}
