package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-stats/internal/domain/coach"
	"github.com/riskibarqy/football-stats/internal/domain/player"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewPlayerRepository(db *sqlx.DB, logger *logging.Logger) *PlayerRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerRepository{db: db, logger: logger}
}

func (r *PlayerRepository) BulkUpsert(ctx context.Context, items []player.Player) (int64, error) {
	items = prepareBatch(ctx, r.logger, "players", items, func(p player.Player) (int64, bool) {
		return p.ID, p.ID > 0
	})
	rows := make([]playerRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, playerRow{
			ID:           p.ID,
			Name:         p.Name,
			Firstname:    p.Firstname,
			Lastname:     p.Lastname,
			Age:          p.Age,
			BirthDate:    p.BirthDate,
			BirthPlace:   p.BirthPlace,
			BirthCountry: p.BirthCountry,
			Nationality:  p.Nationality,
			HeightCM:     p.HeightCM,
			WeightKG:     p.WeightKG,
			Injured:      p.Injured,
			Photo:        p.Photo,
			Position:     p.Position,
		})
	}
	return upsertRows(ctx, r.db, "players", rows, "id")
}

func (r *PlayerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsBy(ctx, r.db, "players", qb.Eq("id", id))
}

func (r *PlayerRepository) ListIDs(ctx context.Context) ([]int64, error) {
	return listIDs(ctx, r.db, "players")
}

type CoachRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewCoachRepository(db *sqlx.DB, logger *logging.Logger) *CoachRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &CoachRepository{db: db, logger: logger}
}

func (r *CoachRepository) BulkUpsert(ctx context.Context, items []coach.Coach) (int64, error) {
	items = prepareBatch(ctx, r.logger, "coaches", items, func(c coach.Coach) (int64, bool) {
		return c.ID, c.ID > 0
	})
	rows := make([]coachRow, 0, len(items))
	for _, c := range items {
		career, err := toJSONB(c.Career)
		if err != nil {
			return 0, err
		}
		rows = append(rows, coachRow{
			ID:           c.ID,
			Name:         c.Name,
			Firstname:    c.Firstname,
			Lastname:     c.Lastname,
			Age:          c.Age,
			BirthDate:    c.BirthDate,
			BirthPlace:   c.BirthPlace,
			BirthCountry: c.BirthCountry,
			Nationality:  c.Nationality,
			HeightCM:     c.HeightCM,
			WeightKG:     c.WeightKG,
			Photo:        c.Photo,
			TeamID:       c.TeamID,
			Career:       career,
		})
	}
	return upsertRows(ctx, r.db, "coaches", rows, "id")
}

func (r *CoachRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsBy(ctx, r.db, "coaches", qb.Eq("id", id))
}

func (r *CoachRepository) ListIDs(ctx context.Context) ([]int64, error) {
	return listIDs(ctx, r.db, "coaches")
}
