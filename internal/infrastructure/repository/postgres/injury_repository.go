package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-stats/internal/domain/injury"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type InjuryRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewInjuryRepository(db *sqlx.DB, logger *logging.Logger) *InjuryRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &InjuryRepository{db: db, logger: logger}
}

type injuryKey struct {
	PlayerID, FixtureID int64
}

func (r *InjuryRepository) BulkUpsert(ctx context.Context, items []injury.Injury) (int64, error) {
	items = prepareBatch(ctx, r.logger, "injuries", items, func(i injury.Injury) (injuryKey, bool) {
		return injuryKey{i.PlayerID, i.FixtureID}, i.PlayerID > 0 && i.FixtureID > 0
	})
	rows := make([]injuryRow, 0, len(items))
	for _, i := range items {
		playerSnap, err := snapshotJSON(i.Player)
		if err != nil {
			return 0, err
		}
		teamSnap, err := snapshotJSON(i.Team)
		if err != nil {
			return 0, err
		}
		rows = append(rows, injuryRow{
			PlayerID:       i.PlayerID,
			FixtureID:      i.FixtureID,
			TeamID:         i.TeamID,
			LeagueID:       i.LeagueID,
			Season:         i.Season,
			Type:           i.Type,
			Reason:         i.Reason,
			PlayerSnapshot: playerSnap,
			TeamSnapshot:   teamSnap,
		})
	}
	return upsertRows(ctx, r.db, "injuries", rows, "player_id", "fixture_id")
}
