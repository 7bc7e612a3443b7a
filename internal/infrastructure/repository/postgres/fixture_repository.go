package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/snapshot"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type fixtureKey struct {
	FixtureID int64
	TeamID    int64
}

type FixtureRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewFixtureRepository(db *sqlx.DB, logger *logging.Logger) *FixtureRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureRepository{db: db, logger: logger}
}

func (r *FixtureRepository) BulkUpsert(ctx context.Context, items []fixture.Fixture) (int64, error) {
	items = prepareBatch(ctx, r.logger, "fixtures", items, func(f fixture.Fixture) (int64, bool) {
		return f.ID, f.ID > 0
	})
	rows := make([]fixtureRow, 0, len(items))
	for _, f := range items {
		rows = append(rows, fixtureRow{
			ID:            f.ID,
			LeagueID:      f.LeagueID,
			Season:        f.Season,
			Round:         f.Round,
			Referee:       f.Referee,
			Timezone:      f.Timezone,
			KickoffAt:     f.KickoffAt,
			StatusShort:   string(f.StatusShort),
			StatusLong:    f.StatusLong,
			Elapsed:       f.Elapsed,
			VenueID:       f.VenueID,
			HomeTeamID:    f.HomeTeamID,
			AwayTeamID:    f.AwayTeamID,
			HomeGoals:     f.HomeGoals,
			AwayGoals:     f.AwayGoals,
			HalftimeHome:  f.Score.HalftimeHome,
			HalftimeAway:  f.Score.HalftimeAway,
			FulltimeHome:  f.Score.FulltimeHome,
			FulltimeAway:  f.Score.FulltimeAway,
			ExtratimeHome: f.Score.ExtratimeHome,
			ExtratimeAway: f.Score.ExtratimeAway,
			PenaltyHome:   f.Score.PenaltyHome,
			PenaltyAway:   f.Score.PenaltyAway,
		})
	}
	return upsertRows(ctx, r.db, "fixtures", rows, "id")
}

func (r *FixtureRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsBy(ctx, r.db, "fixtures", qb.Eq("id", id))
}

func (r *FixtureRepository) ListIDs(ctx context.Context) ([]int64, error) {
	return listIDs(ctx, r.db, "fixtures")
}

func (r *FixtureRepository) ListIDsByLeagueSeason(ctx context.Context, leagueID int64, season int) ([]int64, error) {
	return listIDs(ctx, r.db, "fixtures", qb.Eq("league_id", leagueID), qb.Eq("season", season))
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(modelColumns(fixtureRow{})...).From("fixtures").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture by id query: %w", err)
	}

	var row fixtureRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, classifyError("get fixture by id", err)
	}

	return fixture.Fixture{
		ID:          row.ID,
		LeagueID:    row.LeagueID,
		Season:      row.Season,
		Round:       row.Round,
		Referee:     row.Referee,
		Timezone:    row.Timezone,
		KickoffAt:   row.KickoffAt,
		StatusShort: fixture.Status(row.StatusShort),
		StatusLong:  row.StatusLong,
		Elapsed:     row.Elapsed,
		VenueID:     row.VenueID,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		HomeGoals:   row.HomeGoals,
		AwayGoals:   row.AwayGoals,
		Score: fixture.Score{
			HalftimeHome:  row.HalftimeHome,
			HalftimeAway:  row.HalftimeAway,
			FulltimeHome:  row.FulltimeHome,
			FulltimeAway:  row.FulltimeAway,
			ExtratimeHome: row.ExtratimeHome,
			ExtratimeAway: row.ExtratimeAway,
			PenaltyHome:   row.PenaltyHome,
			PenaltyAway:   row.PenaltyAway,
		},
	}, true, nil
}

type FixtureEventRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewFixtureEventRepository(db *sqlx.DB, logger *logging.Logger) *FixtureEventRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureEventRepository{db: db, logger: logger}
}

func (r *FixtureEventRepository) BulkUpsert(ctx context.Context, items []fixture.Event) (int64, error) {
	items = prepareBatch(ctx, r.logger, "fixture_events", items, func(e fixture.Event) (int64, bool) {
		return e.ID, e.ID > 0 && e.FixtureID > 0
	})
	rows := make([]fixtureEventRow, 0, len(items))
	for _, e := range items {
		teamSnap, err := snapshotJSON(e.Team)
		if err != nil {
			return 0, err
		}
		playerSnap, err := snapshotJSON(e.Player)
		if err != nil {
			return 0, err
		}
		assistSnap, err := snapshotJSON(e.Assist)
		if err != nil {
			return 0, err
		}
		rows = append(rows, fixtureEventRow{
			ID:             e.ID,
			FixtureID:      e.FixtureID,
			TeamID:         e.TeamID,
			PlayerID:       e.PlayerID,
			AssistID:       e.AssistID,
			Elapsed:        e.Elapsed,
			Extra:          e.Extra,
			Type:           e.Type,
			Detail:         e.Detail,
			Comments:       e.Comments,
			Sequence:       e.Sequence,
			TeamSnapshot:   teamSnap,
			PlayerSnapshot: playerSnap,
			AssistSnapshot: assistSnap,
		})
	}
	return upsertRows(ctx, r.db, "fixture_events", rows, "id")
}

func (r *FixtureEventRepository) ListByFixture(ctx context.Context, fixtureID int64) ([]fixture.Event, error) {
	query, args, err := qb.Select(modelColumns(fixtureEventRow{})...).From("fixture_events").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("sequence", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixture events query: %w", err)
	}

	var rows []fixtureEventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list fixture events", err)
	}

	out := make([]fixture.Event, 0, len(rows))
	for _, row := range rows {
		ev := fixture.Event{
			ID:        row.ID,
			FixtureID: row.FixtureID,
			TeamID:    row.TeamID,
			PlayerID:  row.PlayerID,
			AssistID:  row.AssistID,
			Elapsed:   row.Elapsed,
			Extra:     row.Extra,
			Type:      row.Type,
			Detail:    row.Detail,
			Comments:  row.Comments,
			Sequence:  row.Sequence,
		}
		if err := decodeAll(
			jsonTarget{row.TeamSnapshot, &ev.Team},
			jsonTarget{row.PlayerSnapshot, &ev.Player},
			jsonTarget{row.AssistSnapshot, &ev.Assist},
		); err != nil {
			return nil, fmt.Errorf("decode fixture event %d: %w", row.ID, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

type FixtureLineupRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewFixtureLineupRepository(db *sqlx.DB, logger *logging.Logger) *FixtureLineupRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureLineupRepository{db: db, logger: logger}
}

func (r *FixtureLineupRepository) BulkUpsert(ctx context.Context, items []fixture.Lineup) (int64, error) {
	items = prepareBatch(ctx, r.logger, "fixture_lineups", items, func(l fixture.Lineup) (fixtureKey, bool) {
		return fixtureKey{l.FixtureID, l.TeamID}, l.FixtureID > 0 && l.TeamID > 0
	})
	rows := make([]fixtureLineupRow, 0, len(items))
	for _, l := range items {
		row := fixtureLineupRow{FixtureID: l.FixtureID, TeamID: l.TeamID, Formation: l.Formation}
		var err error
		if row.StartXI, err = toJSONB(l.StartXI); err != nil {
			return 0, err
		}
		if row.Substitutes, err = toJSONB(l.Substitutes); err != nil {
			return 0, err
		}
		if row.Coach, err = snapshotJSON(l.Coach); err != nil {
			return 0, err
		}
		if row.TeamSnapshot, err = snapshotJSON(l.Team); err != nil {
			return 0, err
		}
		if l.Colors != nil {
			if row.TeamColors, err = toJSONB(l.Colors); err != nil {
				return 0, err
			}
		}
		rows = append(rows, row)
	}
	return upsertRows(ctx, r.db, "fixture_lineups", rows, "fixture_id", "team_id")
}

func (r *FixtureLineupRepository) ListByFixture(ctx context.Context, fixtureID int64) ([]fixture.Lineup, error) {
	query, args, err := qb.Select(modelColumns(fixtureLineupRow{})...).From("fixture_lineups").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixture lineups query: %w", err)
	}

	var rows []fixtureLineupRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list fixture lineups", err)
	}

	out := make([]fixture.Lineup, 0, len(rows))
	for _, row := range rows {
		l := fixture.Lineup{FixtureID: row.FixtureID, TeamID: row.TeamID, Formation: row.Formation}
		if len(row.TeamColors) > 0 {
			l.Colors = &fixture.KitColors{}
		}
		if err := decodeAll(
			jsonTarget{row.StartXI, &l.StartXI},
			jsonTarget{row.Substitutes, &l.Substitutes},
			jsonTarget{row.Coach, &l.Coach},
			jsonTarget{row.TeamSnapshot, &l.Team},
			jsonTarget{row.TeamColors, l.Colors},
		); err != nil {
			return nil, fmt.Errorf("decode fixture lineup %d/%d: %w", row.FixtureID, row.TeamID, err)
		}
		out = append(out, l)
	}
	return out, nil
}

type FixtureStatisticRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewFixtureStatisticRepository(db *sqlx.DB, logger *logging.Logger) *FixtureStatisticRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureStatisticRepository{db: db, logger: logger}
}

func (r *FixtureStatisticRepository) BulkUpsert(ctx context.Context, items []fixture.TeamStatistic) (int64, error) {
	items = prepareBatch(ctx, r.logger, "fixture_team_statistics", items, func(s fixture.TeamStatistic) (fixtureKey, bool) {
		return fixtureKey{s.FixtureID, s.TeamID}, s.FixtureID > 0 && s.TeamID > 0
	})
	rows := make([]fixtureTeamStatisticRow, 0, len(items))
	for _, s := range items {
		raw := s.Raw
		if raw == nil {
			raw = []fixture.RawStat{}
		}
		rawJSON, err := toJSONB(raw)
		if err != nil {
			return 0, err
		}
		teamSnap, err := snapshotJSON(s.Team)
		if err != nil {
			return 0, err
		}
		rows = append(rows, fixtureTeamStatisticRow{
			FixtureID:        s.FixtureID,
			TeamID:           s.TeamID,
			ShotsOnGoal:      s.ShotsOnGoal,
			ShotsOffGoal:     s.ShotsOffGoal,
			TotalShots:       s.TotalShots,
			BlockedShots:     s.BlockedShots,
			ShotsInsideBox:   s.ShotsInsideBox,
			ShotsOutsideBox:  s.ShotsOutsideBox,
			Fouls:            s.Fouls,
			CornerKicks:      s.CornerKicks,
			Offsides:         s.Offsides,
			BallPossession:   s.BallPossession,
			YellowCards:      s.YellowCards,
			RedCards:         s.RedCards,
			GoalkeeperSaves:  s.GoalkeeperSaves,
			TotalPasses:      s.TotalPasses,
			PassesAccurate:   s.PassesAccurate,
			PassesPercentage: s.PassesPercentage,
			RawStatistics:    rawJSON,
			TeamSnapshot:     teamSnap,
		})
	}
	return upsertRows(ctx, r.db, "fixture_team_statistics", rows, "fixture_id", "team_id")
}

func (r *FixtureStatisticRepository) ListByFixture(ctx context.Context, fixtureID int64) ([]fixture.TeamStatistic, error) {
	query, args, err := qb.Select(modelColumns(fixtureTeamStatisticRow{})...).From("fixture_team_statistics").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixture statistics query: %w", err)
	}

	var rows []fixtureTeamStatisticRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list fixture statistics", err)
	}

	out := make([]fixture.TeamStatistic, 0, len(rows))
	for _, row := range rows {
		s := fixture.TeamStatistic{
			FixtureID:        row.FixtureID,
			TeamID:           row.TeamID,
			ShotsOnGoal:      row.ShotsOnGoal,
			ShotsOffGoal:     row.ShotsOffGoal,
			TotalShots:       row.TotalShots,
			BlockedShots:     row.BlockedShots,
			ShotsInsideBox:   row.ShotsInsideBox,
			ShotsOutsideBox:  row.ShotsOutsideBox,
			Fouls:            row.Fouls,
			CornerKicks:      row.CornerKicks,
			Offsides:         row.Offsides,
			BallPossession:   row.BallPossession,
			YellowCards:      row.YellowCards,
			RedCards:         row.RedCards,
			GoalkeeperSaves:  row.GoalkeeperSaves,
			TotalPasses:      row.TotalPasses,
			PassesAccurate:   row.PassesAccurate,
			PassesPercentage: row.PassesPercentage,
		}
		if err := decodeAll(
			jsonTarget{row.RawStatistics, &s.Raw},
			jsonTarget{row.TeamSnapshot, &s.Team},
		); err != nil {
			return nil, fmt.Errorf("decode fixture statistics %d/%d: %w", row.FixtureID, row.TeamID, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// snapshotJSON stores an empty snapshot as NULL.
func snapshotJSON(ref snapshot.Ref) (jsonb, error) {
	if ref.IsZero() {
		return nil, nil
	}
	return toJSONB(ref)
}

type jsonTarget struct {
	raw    jsonb
	target any
}

func decodeAll(targets ...jsonTarget) error {
	for _, t := range targets {
		if t.target == nil {
			continue
		}
		if err := fromJSONB(t.raw, t.target); err != nil {
			return err
		}
	}
	return nil
}
