package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
)

// Column describes one column of an introspected table.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"notnull"`
	PrimaryKey bool   `json:"pk"`
}

// Table describes one introspected table.
type Table struct {
	Name     string   `json:"name"`
	Columns  []Column `json:"columns"`
	RowCount int64    `json:"row_count"`
}

// PrimaryKey returns the names of the table's primary key columns in order.
func (t Table) PrimaryKey() []string {
	var pk []string
	for _, col := range t.Columns {
		if col.PrimaryKey {
			pk = append(pk, col.Name)
		}
	}
	return pk
}

// HasColumn reports whether the table has a column with the given name.
func (t Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// Catalog introspects the database schema and caches the result until
// invalidated (e.g. after the database file is reloaded).
type Catalog struct {
	q db.Queryer

	mu     sync.RWMutex
	tables map[string]Table
	order  []string
}

// New constructs a Catalog over the given queryer.
func New(q db.Queryer) *Catalog {
	return &Catalog{q: q}
}

// Tables returns all user tables in name order.
func (c *Catalog) Tables(ctx context.Context) ([]Table, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Table, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.tables[name])
	}
	return out, nil
}

// Table returns a single table by name.
func (c *Catalog) Table(ctx context.Context, name string) (Table, bool, error) {
	if err := c.ensure(ctx); err != nil {
		return Table{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	table, ok := c.tables[name]
	return table, ok, nil
}

// Invalidate drops the cached schema; the next call re-introspects.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.tables = nil
	c.order = nil
	c.mu.Unlock()
}

func (c *Catalog) ensure(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.tables != nil
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	tables, err := introspect(ctx, c.q)
	if err != nil {
		return err
	}

	order := make([]string, 0, len(tables))
	for name := range tables {
		order = append(order, name)
	}
	sort.Strings(order)

	c.mu.Lock()
	c.tables = tables
	c.order = order
	c.mu.Unlock()
	return nil
}

// QuoteIdentifier quotes a SQLite identifier for safe interpolation into
// introspection and table-browsing SQL.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func introspect(ctx context.Context, q db.Queryer) (map[string]Table, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tables := make(map[string]Table, len(names))
	for _, name := range names {
		table, err := introspectTable(ctx, q, name)
		if err != nil {
			return nil, err
		}
		tables[name] = table
	}
	return tables, nil
}

func introspectTable(ctx context.Context, q db.Queryer, name string) (Table, error) {
	quoted := QuoteIdentifier(name)

	rows, err := q.QueryContext(ctx, "PRAGMA table_info("+quoted+")")
	if err != nil {
		return Table{}, fmt.Errorf("table_info %s: %w", name, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid        int
			colName    string
			colType    string
			notNull    int
			defaultVal any
			pk         int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultVal, &pk); err != nil {
			return Table{}, fmt.Errorf("scan table_info %s: %w", name, err)
		}
		cols = append(cols, Column{
			Name:       colName,
			Type:       colType,
			NotNull:    notNull != 0,
			PrimaryKey: pk != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return Table{}, err
	}

	var count int64
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoted).Scan(&count); err != nil {
		return Table{}, fmt.Errorf("count %s: %w", name, err)
	}

	return Table{Name: name, Columns: cols, RowCount: count}, nil
}
