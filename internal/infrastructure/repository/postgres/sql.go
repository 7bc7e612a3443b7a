package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/football-stats/internal/observability"
	"github.com/riskibarqy/football-stats/internal/platform/batch"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	qb "github.com/riskibarqy/football-stats/internal/platform/querybuilder"
)

var (
	ErrConstraintViolation = crerr.New("storage constraint violation")
	ErrConnection          = crerr.New("storage connection failure")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// classifyError marks a driver error so callers can tell a rejected batch
// (integrity class 23) from an unreachable store.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if crerr.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return crerr.Mark(fmt.Errorf("%s: %w", op, err), ErrConstraintViolation)
	}
	return crerr.Mark(fmt.Errorf("%s: %w", op, err), ErrConnection)
}

// upsertRows runs one multi-row INSERT ... ON CONFLICT DO UPDATE.
func upsertRows[R any](ctx context.Context, db sqlx.ExtContext, table string, rows []R, conflict ...string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query, args, err := qb.UpsertModels(table, rows, conflict...)
	if err != nil {
		return 0, fmt.Errorf("build upsert %s query: %w", table, err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classifyError("upsert "+table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		affected = int64(len(rows))
	}
	observability.AddUpsertedRows(table, affected)
	return affected, nil
}

// prepareBatch drops records without a key and collapses duplicates to the
// last one seen. An input that filters down to nothing is logged and
// treated as empty.
func prepareBatch[T any, K comparable](ctx context.Context, logger *logging.Logger, table string, items []T, key func(T) (K, bool)) []T {
	if len(items) == 0 {
		return nil
	}
	out := batch.DedupeLast(items, key)
	if len(out) == 0 {
		logger.WarnContext(ctx, "upsert skipped: no records with a key", "table", table, "input", len(items))
	}
	return out
}

func existsBy(ctx context.Context, db sqlx.QueryerContext, table string, conds ...qb.Condition) (bool, error) {
	query, args, err := qb.Select("1").From(table).Where(conds...).Limit(1).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build exists %s query: %w", table, err)
	}
	var one int
	if err := sqlx.GetContext(ctx, db, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, classifyError("exists "+table, err)
	}
	return true, nil
}

func listIDs(ctx context.Context, db sqlx.QueryerContext, table string, conds ...qb.Condition) ([]int64, error) {
	query, args, err := qb.Select("id").From(table).Where(conds...).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list %s ids query: %w", table, err)
	}
	var ids []int64
	if err := sqlx.SelectContext(ctx, db, &ids, query, args...); err != nil {
		return nil, classifyError("list "+table+" ids", err)
	}
	return ids, nil
}

func modelColumns(model any) []string {
	cols, err := qb.ModelColumns(model)
	if err != nil {
		panic(fmt.Sprintf("postgres: invalid row model %T: %v", model, err))
	}
	return cols
}

// jsonb carries a pre-encoded JSON document. It binds as text so lib/pq
// does not send it as bytea.
type jsonb []byte

func (j jsonb) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *jsonb) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = jsonb(v)
	default:
		return fmt.Errorf("scan jsonb: unsupported type %T", src)
	}
	return nil
}

func toJSONB(v any) (jsonb, error) {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	return jsonb(raw), nil
}

func fromJSONB(raw jsonb, target any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode jsonb: %w", err)
	}
	return nil
}
