package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrNotFound      = errors.New("row not found")
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
	ErrInvalidValue  = errors.New("invalid value")
	ErrConflict      = errors.New("duplicate value violates unique constraint")
)

// Row is one record as returned by the store: column name to value.
type Row map[string]any

// ID returns the row identifier as a string.
func (r Row) ID() string {
	if v, ok := r["id"].(string); ok {
		return v
	}
	return ""
}

type Filter struct {
	Column string
	Value  any
}

type Query struct {
	Table      Table
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Store is the thin query interface over the content tables. Implementations
// perform single-row writes and accept last-writer-wins semantics.
type Store interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, table Table, fields Row) (Row, error)
	Update(ctx context.Context, table Table, id string, fields Row) (Row, error)
	Delete(ctx context.Context, table Table, id string) error
}

func validateQuery(q Query) error {
	if _, ok := schemas[q.Table]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, q.Table)
	}
	for _, f := range q.Filters {
		if !q.Table.readable(f.Column) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, q.Table, f.Column)
		}
	}
	if q.OrderBy != "" && !q.Table.readable(q.OrderBy) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, q.Table, q.OrderBy)
	}
	return nil
}

// normalizeFields checks every column against the table schema and coerces
// JSON-decoded values into their storage types.
func normalizeFields(table Table, fields Row) (Row, error) {
	if _, ok := schemas[table]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	out := make(Row, len(fields))
	for col, v := range fields {
		kind, ok := table.columnKind(col)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, col)
		}
		nv, err := normalizeValue(kind, v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", table, col, err)
		}
		out[col] = nv
	}
	return out, nil
}

func normalizeValue(kind ColumnKind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case KindText:
		switch t := v.(type) {
		case string:
			return t, nil
		case json.Number:
			return t.String(), nil
		case float64, int, int64, bool:
			return fmt.Sprint(t), nil
		}
	case KindInt:
		switch t := v.(type) {
		case int:
			return int64(t), nil
		case int64:
			return t, nil
		case float64:
			return int64(t), nil
		case json.Number:
			return t.Int64()
		case string:
			return strconv.ParseInt(t, 10, 64)
		}
	case KindBool:
		switch t := v.(type) {
		case bool:
			return t, nil
		case string:
			return strconv.ParseBool(t)
		}
	case KindTime:
		switch t := v.(type) {
		case time.Time:
			return t.UTC(), nil
		case string:
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				return ts.UTC(), nil
			}
			if ts, err := time.Parse("2006-01-02", t); err == nil {
				return ts.UTC(), nil
			}
			return nil, fmt.Errorf("%w: time %q", ErrInvalidValue, t)
		}
	case KindTextArray:
		switch t := v.(type) {
		case []string:
			return append([]string{}, t...), nil
		case []any:
			out := make([]string, 0, len(t))
			for _, item := range t {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: array element %v", ErrInvalidValue, item)
				}
				out = append(out, s)
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidValue, v)
}
