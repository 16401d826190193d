package catalog_test

import (
	"context"
	"testing"

	"github.com/kschroeder20/nba-database-2000-2025/internal/catalog"
	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
	"github.com/kschroeder20/nba-database-2000-2025/internal/testutil"
)

func TestTablesListsSchema(t *testing.T) {
	handle := testutil.NewTestDB(t, db.ReadOnly)
	cat := catalog.New(handle)

	tables, err := cat.Tables(context.Background())
	if err != nil {
		t.Fatalf("tables: %v", err)
	}

	want := []string{"games", "player_season_stats", "players", "team_season_stats", "teams"}
	if len(tables) != len(want) {
		t.Fatalf("expected %d tables, got %d", len(want), len(tables))
	}
	for i, name := range want {
		if tables[i].Name != name {
			t.Fatalf("expected table %s at %d, got %s", name, i, tables[i].Name)
		}
	}
}

func TestTableIntrospection(t *testing.T) {
	handle := testutil.NewTestDB(t, db.ReadOnly)
	cat := catalog.New(handle)

	table, ok, err := cat.Table(context.Background(), "players")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if !ok {
		t.Fatal("expected players table")
	}

	if got := table.PrimaryKey(); len(got) != 1 || got[0] != "player_id" {
		t.Fatalf("expected player_id primary key, got %v", got)
	}
	if !table.HasColumn("draft_round") {
		t.Fatal("expected draft_round column")
	}
	if table.HasColumn("nope") {
		t.Fatal("unexpected column")
	}
	if table.RowCount != 3 {
		t.Fatalf("expected 3 seeded players, got %d", table.RowCount)
	}
}

func TestUnknownTable(t *testing.T) {
	handle := testutil.NewTestDB(t, db.ReadOnly)
	cat := catalog.New(handle)

	_, ok, err := cat.Table(context.Background(), "missing")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if ok {
		t.Fatal("expected missing table to be absent")
	}
}

func TestInvalidateRefreshes(t *testing.T) {
	handle, path := testutil.NewTestDBAt(t, db.ReadOnly)
	cat := catalog.New(handle)
	ctx := context.Background()

	if _, err := cat.Tables(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	// Replace the database and reload; counts change only after Invalidate.
	testutil.SeedFile(t, path)
	if err := handle.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	cat.Invalidate()

	table, ok, err := cat.Table(ctx, "players")
	if err != nil || !ok {
		t.Fatalf("table after invalidate: %v ok=%v", err, ok)
	}
	if table.RowCount != 3 {
		t.Fatalf("expected re-introspected count, got %d", table.RowCount)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := catalog.QuoteIdentifier(`play"ers`); got != `"play""ers"` {
		t.Fatalf("unexpected quoting: %s", got)
	}
}
