package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type PlayerFixtureStatRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewPlayerFixtureStatRepository(db *sqlx.DB, logger *logging.Logger) *PlayerFixtureStatRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerFixtureStatRepository{db: db, logger: logger}
}

type playerFixtureKey struct {
	PlayerID, FixtureID, TeamID int64
}

func (r *PlayerFixtureStatRepository) BulkUpsert(ctx context.Context, items []playerstats.FixtureStat) (int64, error) {
	items = prepareBatch(ctx, r.logger, "player_fixture_stats", items, func(s playerstats.FixtureStat) (playerFixtureKey, bool) {
		return playerFixtureKey{s.PlayerID, s.FixtureID, s.TeamID}, s.PlayerID > 0 && s.FixtureID > 0 && s.TeamID > 0
	})
	rows := make([]playerFixtureStatRow, 0, len(items))
	for _, s := range items {
		playerSnap, err := snapshotJSON(s.Player)
		if err != nil {
			return 0, err
		}
		teamSnap, err := snapshotJSON(s.Team)
		if err != nil {
			return 0, err
		}
		rows = append(rows, playerFixtureStatRow{
			PlayerID:       s.PlayerID,
			FixtureID:      s.FixtureID,
			TeamID:         s.TeamID,
			Number:         s.Number,
			Position:       s.Position,
			MetricColumns:  metricColumnsOf(s.Metrics),
			PlayerSnapshot: playerSnap,
			TeamSnapshot:   teamSnap,
		})
	}
	return upsertRows(ctx, r.db, "player_fixture_stats", rows, "player_id", "fixture_id", "team_id")
}

func (r *PlayerFixtureStatRepository) ListByFixture(ctx context.Context, fixtureID int64) ([]playerstats.FixtureStat, error) {
	query, args, err := qb.Select(modelColumns(playerFixtureStatRow{})...).From("player_fixture_stats").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("team_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player fixture stats query: %w", err)
	}

	var rows []playerFixtureStatRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list player fixture stats", err)
	}

	out := make([]playerstats.FixtureStat, 0, len(rows))
	for _, row := range rows {
		s := playerstats.FixtureStat{
			PlayerID:  row.PlayerID,
			FixtureID: row.FixtureID,
			TeamID:    row.TeamID,
			Number:    row.Number,
			Position:  row.Position,
			Metrics:   row.MetricColumns.metrics(),
		}
		if err := decodeAll(
			jsonTarget{row.PlayerSnapshot, &s.Player},
			jsonTarget{row.TeamSnapshot, &s.Team},
		); err != nil {
			return nil, fmt.Errorf("decode player fixture stat %d/%d: %w", row.PlayerID, row.FixtureID, err)
		}
		out = append(out, s)
	}
	return out, nil
}

type PlayerSeasonStatRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewPlayerSeasonStatRepository(db *sqlx.DB, logger *logging.Logger) *PlayerSeasonStatRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerSeasonStatRepository{db: db, logger: logger}
}

type playerSeasonKey struct {
	PlayerID, TeamID, LeagueID int64
	Season                     int
}

func (r *PlayerSeasonStatRepository) BulkUpsert(ctx context.Context, items []playerstats.SeasonStat) (int64, error) {
	items = prepareBatch(ctx, r.logger, "player_season_stats", items, func(s playerstats.SeasonStat) (playerSeasonKey, bool) {
		return playerSeasonKey{s.PlayerID, s.TeamID, s.LeagueID, s.Season},
			s.PlayerID > 0 && s.TeamID > 0 && s.LeagueID > 0 && s.Season > 0
	})
	rows := make([]playerSeasonStatRow, 0, len(items))
	for _, s := range items {
		teamSnap, err := snapshotJSON(s.Team)
		if err != nil {
			return 0, err
		}
		rows = append(rows, playerSeasonStatRow{
			PlayerID:      s.PlayerID,
			TeamID:        s.TeamID,
			LeagueID:      s.LeagueID,
			Season:        s.Season,
			Appearances:   s.Appearances,
			Lineups:       s.Lineups,
			SubIn:         s.SubIn,
			SubOut:        s.SubOut,
			Bench:         s.Bench,
			Position:      s.Position,
			MetricColumns: metricColumnsOf(s.Metrics),
			TeamSnapshot:  teamSnap,
		})
	}
	return upsertRows(ctx, r.db, "player_season_stats", rows, "player_id", "team_id", "league_id", "season")
}

func metricColumnsOf(m playerstats.Metrics) MetricColumns {
	return MetricColumns{
		Minutes:              m.Minutes,
		Rating:               m.Rating,
		Captain:              m.Captain,
		Substitute:           m.Substitute,
		ShotsTotal:           m.ShotsTotal,
		ShotsOn:              m.ShotsOn,
		GoalsTotal:           m.GoalsTotal,
		GoalsConceded:        m.GoalsConceded,
		GoalsAssists:         m.GoalsAssists,
		GoalsSaves:           m.GoalsSaves,
		PassesTotal:          m.PassesTotal,
		PassesKey:            m.PassesKey,
		PassesAccuracy:       m.PassesAccuracy,
		TacklesTotal:         m.TacklesTotal,
		TacklesBlocks:        m.TacklesBlocks,
		TacklesInterceptions: m.TacklesInterceptions,
		DuelsTotal:           m.DuelsTotal,
		DuelsWon:             m.DuelsWon,
		DribblesAttempts:     m.DribblesAttempts,
		DribblesSuccess:      m.DribblesSuccess,
		DribblesPast:         m.DribblesPast,
		FoulsDrawn:           m.FoulsDrawn,
		FoulsCommitted:       m.FoulsCommitted,
		CardsYellow:          m.CardsYellow,
		CardsYellowRed:       m.CardsYellowRed,
		CardsRed:             m.CardsRed,
		PenaltyWon:           m.PenaltyWon,
		PenaltyCommitted:     m.PenaltyCommitted,
		PenaltyScored:        m.PenaltyScored,
		PenaltyMissed:        m.PenaltyMissed,
		PenaltySaved:         m.PenaltySaved,
		Offsides:             m.Offsides,
	}
}

func (c MetricColumns) metrics() playerstats.Metrics {
	return playerstats.Metrics{
		Minutes:              c.Minutes,
		Rating:               c.Rating,
		Captain:              c.Captain,
		Substitute:           c.Substitute,
		ShotsTotal:           c.ShotsTotal,
		ShotsOn:              c.ShotsOn,
		GoalsTotal:           c.GoalsTotal,
		GoalsConceded:        c.GoalsConceded,
		GoalsAssists:         c.GoalsAssists,
		GoalsSaves:           c.GoalsSaves,
		PassesTotal:          c.PassesTotal,
		PassesKey:            c.PassesKey,
		PassesAccuracy:       c.PassesAccuracy,
		TacklesTotal:         c.TacklesTotal,
		TacklesBlocks:        c.TacklesBlocks,
		TacklesInterceptions: c.TacklesInterceptions,
		DuelsTotal:           c.DuelsTotal,
		DuelsWon:             c.DuelsWon,
		DribblesAttempts:     c.DribblesAttempts,
		DribblesSuccess:      c.DribblesSuccess,
		DribblesPast:         c.DribblesPast,
		FoulsDrawn:           c.FoulsDrawn,
		FoulsCommitted:       c.FoulsCommitted,
		CardsYellow:          c.CardsYellow,
		CardsYellowRed:       c.CardsYellowRed,
		CardsRed:             c.CardsRed,
		PenaltyWon:           c.PenaltyWon,
		PenaltyCommitted:     c.PenaltyCommitted,
		PenaltyScored:        c.PenaltyScored,
		PenaltyMissed:        c.PenaltyMissed,
		PenaltySaved:         c.PenaltySaved,
		Offsides:             c.Offsides,
	}
}
