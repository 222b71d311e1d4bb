package content

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	seq int64
	row Row
}

// MemoryStore keeps content in process memory. It backs STORE_DRIVER=memory
// for local runs and is the fake store in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[Table][]*memoryEntry
	seq    int64
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[Table][]*memoryEntry),
		now:    time.Now,
	}
}

func (m *MemoryStore) Select(ctx context.Context, q Query) ([]Row, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*memoryEntry
	for _, e := range m.tables[q.Table] {
		if matchesFilters(e.row, q.Filters) {
			matched = append(matched, e)
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			c := compareValues(matched[i].row[q.OrderBy], matched[j].row[q.OrderBy])
			if c == 0 {
				c = compareInt(matched[i].seq, matched[j].seq)
			}
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]Row, len(matched))
	for i, e := range matched {
		out[i] = copyRow(e.row)
	}
	return out, nil
}

func (m *MemoryStore) Insert(ctx context.Context, table Table, fields Row) (Row, error) {
	fields, err := normalizeFields(table, fields)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	row := copyRow(schemas[table].defaults)
	for k, v := range fields {
		row[k] = v
	}
	if err := m.checkUnique(table, "", row); err != nil {
		return nil, err
	}
	now := m.now().UTC()
	row["id"] = uuid.NewString()
	row["created_at"] = now
	if table != TableChatLeads {
		row["updated_at"] = now
	}

	m.seq++
	m.tables[table] = append(m.tables[table], &memoryEntry{seq: m.seq, row: row})
	return copyRow(row), nil
}

func (m *MemoryStore) Update(ctx context.Context, table Table, id string, fields Row) (Row, error) {
	fields, err := normalizeFields(table, fields)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.find(table, id)
	if e == nil {
		return nil, fmt.Errorf("error updating %s %s: %w", table, id, ErrNotFound)
	}
	next := copyRow(e.row)
	for k, v := range fields {
		next[k] = v
	}
	if err := m.checkUnique(table, id, next); err != nil {
		return nil, err
	}
	if table != TableChatLeads {
		next["updated_at"] = m.now().UTC()
	}
	e.row = next
	return copyRow(next), nil
}

func (m *MemoryStore) Delete(ctx context.Context, table Table, id string) error {
	if _, ok := schemas[table]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.tables[table]
	for i, e := range entries {
		if e.row.ID() == id {
			m.tables[table] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("error deleting %s %s: %w", table, id, ErrNotFound)
}

func (m *MemoryStore) find(table Table, id string) *memoryEntry {
	for _, e := range m.tables[table] {
		if e.row.ID() == id {
			return e
		}
	}
	return nil
}

// checkUnique mirrors the unique index on blog_posts.slug.
func (m *MemoryStore) checkUnique(table Table, selfID string, row Row) error {
	if table != TableBlogPosts {
		return nil
	}
	slug, _ := row["slug"].(string)
	if slug == "" {
		return nil
	}
	for _, e := range m.tables[table] {
		if e.row.ID() != selfID && e.row["slug"] == slug {
			return fmt.Errorf("%w: slug %q already exists", ErrConflict, slug)
		}
	}
	return nil
}

func matchesFilters(row Row, filters []Filter) bool {
	for _, f := range filters {
		if compareValues(row[f.Column], f.Value) != 0 {
			return false
		}
	}
	return true
}

func copyRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		if arr, ok := v.([]string); ok {
			v = append([]string{}, arr...)
		}
		out[k] = v
	}
	return out
}

// compareValues orders nil before everything else.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case int64:
		if bv, ok := toInt64(b); ok {
			return compareInt(av, bv)
		}
	case int:
		if bv, ok := toInt64(b); ok {
			return compareInt(int64(av), bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	}
	return 0, false
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
