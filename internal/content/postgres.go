package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Select(ctx context.Context, q Query) ([]Row, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	var sb strings.Builder
	args := []any{}
	fmt.Fprintf(&sb, "SELECT * FROM %s", q.Table)
	for i, f := range q.Filters {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, f.Value)
		fmt.Fprintf(&sb, "%s = $%d", f.Column, len(args))
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC NULLS LAST"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	rows, err := s.db.QueryxContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("error selecting from %s: %w", q.Table, translatePQError(err))
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row, err := scanRow(q.Table, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows from %s: %w", q.Table, err)
	}
	return out, nil
}

func (s *PostgresStore) Insert(ctx context.Context, table Table, fields Row) (Row, error) {
	fields, err := normalizeFields(table, fields)
	if err != nil {
		return nil, err
	}

	cols := sortedColumns(fields)
	var query string
	args := make([]any, 0, len(cols))
	if len(cols) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", table)
	} else {
		placeholders := make([]string, len(cols))
		for i, c := range cols {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, toDriverValue(fields[c]))
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	}

	row, err := s.queryOne(ctx, table, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error inserting into %s: %w", table, err)
	}
	return row, nil
}

func (s *PostgresStore) Update(ctx context.Context, table Table, id string, fields Row) (Row, error) {
	fields, err := normalizeFields(table, fields)
	if err != nil {
		return nil, err
	}

	cols := sortedColumns(fields)
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		args = append(args, toDriverValue(fields[c]))
		sets = append(sets, fmt.Sprintf("%s = $%d", c, len(args)))
	}
	if table != TableChatLeads {
		sets = append(sets, "updated_at = NOW()")
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *", table, strings.Join(sets, ", "), len(args))

	row, err := s.queryOne(ctx, table, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating %s %s: %w", table, id, err)
	}
	return row, nil
}

func (s *PostgresStore) Delete(ctx context.Context, table Table, id string) error {
	if _, ok := schemas[table]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("error deleting %s %s: %w", table, id, translatePQError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting %s %s: %w", table, id, err)
	}
	if n == 0 {
		return fmt.Errorf("error deleting %s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) queryOne(ctx context.Context, table Table, query string, args ...any) (Row, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, translatePQError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, translatePQError(err)
		}
		return nil, ErrNotFound
	}
	return scanRow(table, rows)
}

func scanRow(table Table, rows *sqlx.Rows) (Row, error) {
	raw := map[string]any{}
	if err := rows.MapScan(raw); err != nil {
		return nil, fmt.Errorf("error scanning %s row: %w", table, err)
	}
	row := make(Row, len(raw))
	for col, v := range raw {
		b, ok := v.([]byte)
		if !ok {
			row[col] = v
			continue
		}
		if kind, ok := table.columnKind(col); ok && kind == KindTextArray {
			var arr pq.StringArray
			if err := arr.Scan(b); err != nil {
				return nil, fmt.Errorf("error decoding %s.%s: %w", table, col, err)
			}
			row[col] = []string(arr)
			continue
		}
		row[col] = string(b)
	}
	return row, nil
}

func toDriverValue(v any) any {
	if arr, ok := v.([]string); ok {
		return pq.StringArray(arr)
	}
	return v
}

func sortedColumns(fields Row) []string {
	cols := make([]string, 0, len(fields))
	for c := range fields {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// translatePQError maps driver errors the callers branch on to package
// sentinels and leaves everything else untouched.
func translatePQError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Detail)
		case "22P02":
			return fmt.Errorf("%w: %s", ErrInvalidValue, pqErr.Message)
		}
	}
	return err
}
