// Package querybuilder renders the small set of PostgreSQL statements the
// repositories issue: keyed selects, multi-row upserts and table wipes.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// maxBindParams is the PostgreSQL limit on bind parameters per statement.
const maxBindParams = 65535

// statement accumulates SQL text and numbered bind values.
type statement struct {
	buf  *bytebufferpool.ByteBuffer
	args []any
}

func newStatement(argCap int) *statement {
	return &statement{buf: bytebufferpool.Get(), args: make([]any, 0, argCap)}
}

func (s *statement) sql(parts ...string) {
	for _, p := range parts {
		_, _ = s.buf.WriteString(p)
	}
}

func (s *statement) bind(v any) {
	s.args = append(s.args, v)
	_, _ = s.buf.WriteString("$" + strconv.Itoa(len(s.args)))
}

func (s *statement) where(conds []Condition) {
	for i, cond := range conds {
		if i == 0 {
			s.sql(" WHERE ")
		} else {
			s.sql(" AND ")
		}
		cond(s)
	}
}

func (s *statement) finish() (string, []any) {
	out := s.buf.String()
	bytebufferpool.Put(s.buf)
	return out, s.args
}

// Condition renders one predicate of a WHERE clause.
type Condition func(s *statement)

func Eq(column string, value any) Condition {
	return func(s *statement) {
		s.sql(column, " = ")
		s.bind(value)
	}
}

// In matches nothing when values is empty.
func In(column string, values []any) Condition {
	return func(s *statement) {
		if len(values) == 0 {
			s.sql("1=0")
			return
		}
		s.sql(column, " IN (")
		for i, v := range values {
			if i > 0 {
				s.sql(", ")
			}
			s.bind(v)
		}
		s.sql(")")
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select table is required")
	}

	s := newStatement(len(b.where))
	s.sql("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.where)
	if len(b.orderBy) > 0 {
		s.sql(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.sql(" LIMIT ", strconv.Itoa(b.limit))
	}

	query, args := s.finish()
	return query, args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}
	if total := len(b.rows) * len(b.columns); total > maxBindParams {
		return "", nil, fmt.Errorf("insert needs %d bind parameters, limit is %d", total, maxBindParams)
	}
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
	}

	s := newStatement(len(b.rows) * len(b.columns))
	s.sql("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if i > 0 {
			s.sql(", ")
		}
		s.sql("(")
		for j, value := range row {
			if j > 0 {
				s.sql(", ")
			}
			s.bind(value)
		}
		s.sql(")")
	}
	if b.suffix != "" {
		s.sql(" ", b.suffix)
	}

	query, args := s.finish()
	return query, args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}

	s := newStatement(len(b.where))
	s.sql("DELETE FROM ", b.table)
	s.where(b.where)

	query, args := s.finish()
	return query, args, nil
}

// OnConflictUpdate overwrites every update column with the incoming value,
// NULL included, and refreshes updated_at.
func OnConflictUpdate(conflict []string, update []string) string {
	sets := make([]string, 0, len(update)+1)
	for _, col := range update {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	sets = append(sets, "updated_at = NOW()")
	return "ON CONFLICT (" + strings.Join(conflict, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
}
