package memory

import (
	"context"

	"github.com/riskibarqy/football-stats/internal/domain/coach"
	"github.com/riskibarqy/football-stats/internal/domain/player"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type PlayerRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewPlayerRepository(store *Store, logger *logging.Logger) *PlayerRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerRepository{store: store, logger: logger}
}

func (r *PlayerRepository) BulkUpsert(ctx context.Context, items []player.Player) (int64, error) {
	return upsertAll(ctx, r.store, r.logger, "players", r.store.players, items,
		func(p player.Player) (int64, bool) { return p.ID, p.ID > 0 }, nil)
}

func (r *PlayerRepository) Exists(_ context.Context, id int64) (bool, error) {
	return r.store.exists(func() bool { return r.store.players.has(id) }), nil
}

func (r *PlayerRepository) ListIDs(_ context.Context) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedKeys(r.store.players), nil
}

type CoachRepository struct {
	store  *Store
	logger *logging.Logger
}

func NewCoachRepository(store *Store, logger *logging.Logger) *CoachRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &CoachRepository{store: store, logger: logger}
}

func (r *CoachRepository) BulkUpsert(ctx context.Context, items []coach.Coach) (int64, error) {
	s := r.store
	return upsertAll(ctx, s, r.logger, "coaches", s.coaches, items,
		func(c coach.Coach) (int64, bool) { return c.ID, c.ID > 0 },
		func(c coach.Coach) error {
			if c.TeamID != nil && !s.teams.has(*c.TeamID) {
				return missing("team", *c.TeamID)
			}
			return nil
		})
}

func (r *CoachRepository) Exists(_ context.Context, id int64) (bool, error) {
	return r.store.exists(func() bool { return r.store.coaches.has(id) }), nil
}

func (r *CoachRepository) ListIDs(_ context.Context) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedKeys(r.store.coaches), nil
}
