package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type pageFetcher[T any] func(ctx context.Context, page int) (feed.Page[T], error)

type pageHandler[T any] func(ctx context.Context, entries []T) Counts

// walkPages drives one paginated listing. Pages are written before the next
// one is fetched. A failed first page aborts the unit; later failures cost
// one error each and the walk moves on.
func walkPages[T any](ctx context.Context, logger *logging.Logger, name string, maxPages int, fetch pageFetcher[T], handle pageHandler[T]) (Counts, error) {
	var counts Counts
	lastPage := 1
	for page := 1; page <= lastPage; page++ {
		if maxPages > 0 && page > maxPages {
			break
		}

		p, err := fetch(ctx, page)
		if err != nil {
			counts.Errors++
			logger.WarnContext(ctx, "fetch page failed", "listing", name, "page", page, "error", err)
			if page == 1 {
				return counts, fmt.Errorf("fetch %s page 1: %w", name, err)
			}
			continue
		}

		counts.Add(handle(ctx, p.Entries))
		if p.IsLast() {
			break
		}
		if p.Total > lastPage {
			lastPage = p.Total
		}
	}
	return counts, nil
}

// writeBatch upserts records accepted from one page. On failure every
// record counted for the page becomes an error.
func writeBatch[T any](ctx context.Context, logger *logging.Logger, table string, counts *Counts, records []T, write func(context.Context, []T) (int64, error)) bool {
	if len(records) == 0 {
		return true
	}
	if _, err := write(ctx, records); err != nil {
		logger.WarnContext(ctx, "batch write failed", "table", table, "records", len(records), "error", err)
		counts.failWrite()
		return false
	}
	return true
}
