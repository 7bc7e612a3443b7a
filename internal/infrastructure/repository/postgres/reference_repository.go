package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-stats/internal/domain/country"
	"github.com/riskibarqy/football-stats/internal/domain/league"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type CountryRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewCountryRepository(db *sqlx.DB, logger *logging.Logger) *CountryRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &CountryRepository{db: db, logger: logger}
}

func (r *CountryRepository) BulkUpsert(ctx context.Context, items []country.Country) (int64, error) {
	items = prepareBatch(ctx, r.logger, "countries", items, func(c country.Country) (string, bool) {
		return c.Code, c.Code != ""
	})
	rows := make([]countryRow, 0, len(items))
	for _, c := range items {
		rows = append(rows, countryRow{Code: c.Code, Name: c.Name, Flag: c.Flag})
	}
	return upsertRows(ctx, r.db, "countries", rows, "code")
}

func (r *CountryRepository) Exists(ctx context.Context, code string) (bool, error) {
	return existsBy(ctx, r.db, "countries", qb.Eq("code", code))
}

type LeagueRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewLeagueRepository(db *sqlx.DB, logger *logging.Logger) *LeagueRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueRepository{db: db, logger: logger}
}

func (r *LeagueRepository) BulkUpsert(ctx context.Context, items []league.Season) (int64, error) {
	items = prepareBatch(ctx, r.logger, "league_seasons", items, func(s league.Season) (league.Key, bool) {
		return s.Key(), s.Key().Valid()
	})
	rows := make([]leagueSeasonRow, 0, len(items))
	for _, s := range items {
		rows = append(rows, leagueSeasonRow{
			LeagueID:                  s.LeagueID,
			Season:                    s.Season,
			Name:                      s.Name,
			Type:                      s.Type,
			Logo:                      s.Logo,
			CountryName:               s.CountryName,
			CountryCode:               s.CountryCode,
			StartDate:                 s.StartDate,
			EndDate:                   s.EndDate,
			IsCurrent:                 s.Current,
			CoverageEvents:            s.Coverage.Events,
			CoverageLineups:           s.Coverage.Lineups,
			CoverageFixtureStatistics: s.Coverage.FixtureStatistics,
			CoveragePlayerStatistics:  s.Coverage.PlayerStatistics,
			CoverageStandings:         s.Coverage.Standings,
			CoveragePlayers:           s.Coverage.Players,
			CoverageInjuries:          s.Coverage.Injuries,
		})
	}
	return upsertRows(ctx, r.db, "league_seasons", rows, "league_id", "season")
}

func (r *LeagueRepository) Exists(ctx context.Context, leagueID int64, season int) (bool, error) {
	return existsBy(ctx, r.db, "league_seasons", qb.Eq("league_id", leagueID), qb.Eq("season", season))
}

func (r *LeagueRepository) ListBySeason(ctx context.Context, season int) ([]league.Season, error) {
	return r.list(ctx, "list league seasons by season", qb.Eq("season", season))
}

func (r *LeagueRepository) ListByLeague(ctx context.Context, leagueID int64) ([]league.Season, error) {
	return r.list(ctx, "list league seasons by league", qb.Eq("league_id", leagueID))
}

func (r *LeagueRepository) list(ctx context.Context, op string, cond qb.Condition) ([]league.Season, error) {
	query, args, err := qb.Select(modelColumns(leagueSeasonRow{})...).From("league_seasons").
		Where(cond).
		OrderBy("league_id", "season").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []leagueSeasonRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError(op, err)
	}

	out := make([]league.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Season{
			LeagueID:    row.LeagueID,
			Season:      row.Season,
			Name:        row.Name,
			Type:        row.Type,
			Logo:        row.Logo,
			CountryName: row.CountryName,
			CountryCode: row.CountryCode,
			StartDate:   row.StartDate,
			EndDate:     row.EndDate,
			Current:     row.IsCurrent,
			Coverage: league.Coverage{
				Events:            row.CoverageEvents,
				Lineups:           row.CoverageLineups,
				FixtureStatistics: row.CoverageFixtureStatistics,
				PlayerStatistics:  row.CoveragePlayerStatistics,
				Standings:         row.CoverageStandings,
				Players:           row.CoveragePlayers,
				Injuries:          row.CoverageInjuries,
			},
		})
	}
	return out, nil
}

type VenueRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewVenueRepository(db *sqlx.DB, logger *logging.Logger) *VenueRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &VenueRepository{db: db, logger: logger}
}

func (r *VenueRepository) BulkUpsert(ctx context.Context, items []venue.Venue) (int64, error) {
	items = prepareBatch(ctx, r.logger, "venues", items, func(v venue.Venue) (int64, bool) {
		return v.ID, v.ID > 0
	})
	rows := make([]venueRow, 0, len(items))
	for _, v := range items {
		rows = append(rows, venueRow{
			ID:       v.ID,
			Name:     v.Name,
			Address:  v.Address,
			City:     v.City,
			Country:  v.Country,
			Capacity: v.Capacity,
			Surface:  v.Surface,
			Image:    v.Image,
		})
	}
	return upsertRows(ctx, r.db, "venues", rows, "id")
}

func (r *VenueRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsBy(ctx, r.db, "venues", qb.Eq("id", id))
}

func (r *VenueRepository) ListIDs(ctx context.Context) ([]int64, error) {
	return listIDs(ctx, r.db, "venues")
}

type TeamRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewTeamRepository(db *sqlx.DB, logger *logging.Logger) *TeamRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamRepository{db: db, logger: logger}
}

func (r *TeamRepository) BulkUpsert(ctx context.Context, items []team.Team) (int64, error) {
	items = prepareBatch(ctx, r.logger, "teams", items, func(t team.Team) (int64, bool) {
		return t.ID, t.ID > 0
	})
	rows := make([]teamRow, 0, len(items))
	for _, t := range items {
		rows = append(rows, teamRow{
			ID:       t.ID,
			Name:     t.Name,
			Code:     t.Code,
			Country:  t.Country,
			Founded:  t.Founded,
			National: t.National,
			Logo:     t.Logo,
			VenueID:  t.VenueID,
		})
	}
	return upsertRows(ctx, r.db, "teams", rows, "id")
}

func (r *TeamRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsBy(ctx, r.db, "teams", qb.Eq("id", id))
}

func (r *TeamRepository) ListIDs(ctx context.Context) ([]int64, error) {
	return listIDs(ctx, r.db, "teams")
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select(modelColumns(teamRow{})...).From("teams").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, classifyError("get team by id", err)
	}

	return team.Team{
		ID:       row.ID,
		Name:     row.Name,
		Code:     row.Code,
		Country:  row.Country,
		Founded:  row.Founded,
		National: row.National,
		Logo:     row.Logo,
		VenueID:  row.VenueID,
	}, true, nil
}
