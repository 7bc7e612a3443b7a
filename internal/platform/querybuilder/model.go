package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertModels builds one multi-row INSERT ... ON CONFLICT DO UPDATE statement
// from db-tagged structs. Every column outside conflict and created_at is
// replaced with the incoming value.
func UpsertModels[T any](table string, models []T, conflict ...string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("upsert models are required")
	}
	if len(conflict) == 0 {
		return "", nil, fmt.Errorf("upsert conflict columns are required")
	}

	cols, err := ModelColumns(models[0])
	if err != nil {
		return "", nil, err
	}

	keys := make(map[string]struct{}, len(conflict))
	for _, col := range conflict {
		keys[col] = struct{}{}
	}
	for _, col := range conflict {
		if !containsColumn(cols, col) {
			return "", nil, fmt.Errorf("conflict column %q is not mapped on %s", col, table)
		}
	}

	update := make([]string, 0, len(cols))
	for _, col := range cols {
		if _, isKey := keys[col]; isKey || col == "created_at" || col == "updated_at" {
			continue
		}
		update = append(update, col)
	}

	builder := InsertInto(table).Columns(cols...)
	for i := range models {
		_, vals, err := columnsAndValuesFromModel(models[i])
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		builder.Values(vals...)
	}

	suffix := fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", strings.Join(conflict, ", "))
	if len(update) > 0 {
		suffix = OnConflictUpdate(conflict, update)
	}
	return builder.Suffix(suffix).ToSQL()
}

// InsertModels builds a plain multi-row INSERT without conflict handling.
func InsertModels[T any](table string, models []T) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}
	cols, err := ModelColumns(models[0])
	if err != nil {
		return "", nil, err
	}
	builder := InsertInto(table).Columns(cols...)
	for i := range models {
		_, vals, err := columnsAndValuesFromModel(models[i])
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

// ModelColumns lists the db-tagged columns of a struct in field order.
func ModelColumns(model any) ([]string, error) {
	cols, _, err := columnsAndValuesFromModel(model)
	return cols, err
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	cols := make([]string, 0, value.NumField())
	vals := make([]any, 0, value.NumField())
	cols, vals = appendModelFields(value, cols, vals)

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

// appendModelFields walks db-tagged fields, flattening untagged embedded
// structs the same way sqlx maps them.
func appendModelFields(value reflect.Value, cols []string, vals []any) ([]string, []any) {
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if field.Anonymous && tag == "" && field.Type.Kind() == reflect.Struct {
			cols, vals = appendModelFields(value.Field(i), cols, vals)
			continue
		}
		if field.PkgPath != "" {
			continue
		}
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	return cols, vals
}

func containsColumn(cols []string, col string) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}
