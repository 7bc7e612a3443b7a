package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/riskibarqy/football-stats/internal/platform/batch"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type TimezoneRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewTimezoneRepository(store *Store, logger *logging.Logger) *TimezoneRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &TimezoneRepository{store: store, logger: logger}
}

func (r *TimezoneRepository) ReplaceAll(ctx context.Context, names []string) (int64, error) {
	names = batch.DedupeLast(names, func(name string) (string, bool) {
		name = strings.TrimSpace(name)
		return name, name != ""
	})
	if len(names) == 0 {
		r.logger.WarnContext(ctx, "timezone replace skipped: empty list")
		return 0, nil
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, strings.TrimSpace(name))
	}

	r.store.mu.Lock()
	r.store.timezones = out
	r.store.mu.Unlock()
	return int64(len(out)), nil
}

func (r *TimezoneRepository) List(_ context.Context) ([]string, error) {
	r.store.mu.RLock()
	out := slices.Clone(r.store.timezones)
	r.store.mu.RUnlock()

	slices.Sort(out)
	return out, nil
}
