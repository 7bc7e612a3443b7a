package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-stats/internal/platform/batch"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

type TimezoneRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewTimezoneRepository(db *sqlx.DB, logger *logging.Logger) *TimezoneRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &TimezoneRepository{db: db, logger: logger}
}

// ReplaceAll swaps the whole table in one transaction. An empty list
// leaves the table as it is.
func (r *TimezoneRepository) ReplaceAll(ctx context.Context, names []string) (int64, error) {
	names = batch.DedupeLast(names, func(name string) (string, bool) {
		name = strings.TrimSpace(name)
		return name, name != ""
	})
	if len(names) == 0 {
		r.logger.WarnContext(ctx, "timezone replace skipped: empty list")
		return 0, nil
	}

	rows := make([]timezoneRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, timezoneRow{Name: strings.TrimSpace(name)})
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("timezones").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete timezones query: %w", err)
	}
	insertQuery, insertArgs, err := qb.InsertModels("timezones", rows)
	if err != nil {
		return 0, fmt.Errorf("build insert timezones query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, classifyError("begin replace timezones tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return 0, classifyError("delete timezones", err)
	}
	res, err := tx.ExecContext(ctx, insertQuery, insertArgs...)
	if err != nil {
		return 0, classifyError("insert timezones", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, classifyError("commit replace timezones tx", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		affected = int64(len(rows))
	}
	return affected, nil
}

func (r *TimezoneRepository) List(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("name").From("timezones").OrderBy("name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list timezones query: %w", err)
	}
	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, classifyError("list timezones", err)
	}
	return names, nil
}
