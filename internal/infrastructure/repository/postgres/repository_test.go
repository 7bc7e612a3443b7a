package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestTeamRepository_BulkUpsertCollapsesDuplicates(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTeamRepository(db, logging.NewNop())

	venueID := int64(556)
	items := []team.Team{
		{ID: 33, Name: "Man Utd"},
		{ID: 0, Name: "no key"},
		{ID: 33, Name: "Manchester United", Code: "MUN", VenueID: &venueID},
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO teams (id, name, code, country, founded, national, logo, venue_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) "+
			"ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, code = EXCLUDED.code, country = EXCLUDED.country, "+
			"founded = EXCLUDED.founded, national = EXCLUDED.national, logo = EXCLUDED.logo, venue_id = EXCLUDED.venue_id, updated_at = NOW()",
	)).
		WithArgs(int64(33), "Manchester United", "MUN", "", nil, false, "", int64(556)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.BulkUpsert(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_BulkUpsertEmptyIsNoop(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTeamRepository(db, logging.NewNop())

	n, err := repo.BulkUpsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.BulkUpsert(context.Background(), []team.Team{{Name: "keyless"}})
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFixtureRepository_BulkUpsertMarksErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		mark error
	}{
		{name: "check constraint", err: &pq.Error{Code: "23514", Message: "violates check constraint fixtures_status_short_check"}, mark: ErrConstraintViolation},
		{name: "foreign key", err: &pq.Error{Code: "23503"}, mark: ErrConstraintViolation},
		{name: "connection", err: driver.ErrBadConn, mark: ErrConnection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			repo := NewFixtureRepository(db, logging.NewNop())

			mock.ExpectExec("INSERT INTO fixtures").WillReturnError(tc.err)

			_, err := repo.BulkUpsert(context.Background(), []fixture.Fixture{{ID: 1, HomeTeamID: 1, AwayTeamID: 2, StatusShort: fixture.StatusNotStarted}})
			require.Error(t, err)
			assert.True(t, crerr.Is(err, tc.mark), "expected mark %v on %v", tc.mark, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

type jsonArgContains string

func (s jsonArgContains) Match(v driver.Value) bool {
	text, ok := v.(string)
	return ok && strings.Contains(text, string(s))
}

func TestFixtureStatisticRepository_WritesRawStatistics(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewFixtureStatisticRepository(db, logging.NewNop())

	shots := 3
	stat := fixture.TeamStatistic{
		FixtureID:   10,
		TeamID:      33,
		ShotsOnGoal: &shots,
		Raw: []fixture.RawStat{
			{Type: "Shots on Goal", Value: float64(3)},
			{Type: "expected_goals", Value: "1.35"},
		},
	}

	args := make([]driver.Value, 0, 20)
	args = append(args, int64(10), int64(33), int64(3))
	for i := 0; i < 15; i++ {
		args = append(args, nil)
	}
	args = append(args, jsonArgContains(`"expected_goals"`), nil)

	mock.ExpectExec("INSERT INTO fixture_team_statistics").
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.BulkUpsert(context.Background(), []fixture.TeamStatistic{stat})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Exists(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTeamRepository(db, logging.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teams WHERE id = $1 LIMIT 1")).
		WithArgs(int64(33)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teams WHERE id = $1 LIMIT 1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	ok, err := repo.Exists(context.Background(), 33)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimezoneRepository_ReplaceAllRunsInOneTransaction(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTimezoneRepository(db, logging.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timezones")).WillReturnResult(sqlmock.NewResult(0, 400))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timezones (name) VALUES ($1), ($2)")).
		WithArgs("Europe/London", "UTC").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := repo.ReplaceAll(context.Background(), []string{"Europe/London", "UTC", "UTC"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTimezoneRepository_ReplaceAllRollsBackOnInsertFailure(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTimezoneRepository(db, logging.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM timezones").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO timezones").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.ReplaceAll(context.Background(), []string{"UTC"})
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrConnection))
	require.NoError(t, mock.ExpectationsWereMet())
}
