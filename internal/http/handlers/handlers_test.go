package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appgames "github.com/kschroeder20/nba-database-2000-2025/internal/app/games"
	appplayers "github.com/kschroeder20/nba-database-2000-2025/internal/app/players"
	appteams "github.com/kschroeder20/nba-database-2000-2025/internal/app/teams"
	"github.com/kschroeder20/nba-database-2000-2025/internal/catalog"
	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metadata"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metrics"
	"github.com/kschroeder20/nba-database-2000-2025/internal/query"
	"github.com/kschroeder20/nba-database-2000-2025/internal/store"
	"github.com/kschroeder20/nba-database-2000-2025/internal/testutil"
)

func testMetadata() metadata.Metadata {
	return metadata.Metadata{
		Title:   "NBA Database 2000-2025",
		Source:  "basketball-reference.com",
		License: "CC BY 4.0",
		Tables: map[string]metadata.TableMeta{
			"players": {Description: "One row per player"},
		},
	}
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	handle := testutil.NewTestDB(t, db.ReadOnly)
	sqlStore := store.NewSQLiteStore(handle)

	return NewHandler(Deps{
		Catalog:     catalog.New(handle),
		Engine:      query.NewEngine(handle, 1000, time.Second),
		Metadata:    testMetadata(),
		Players:     appplayers.NewService(sqlStore),
		Teams:       appteams.NewService(sqlStore),
		Games:       appgames.NewService(sqlStore),
		Logger:      testutil.DiscardLogger(),
		Recorder:    metrics.NewRecorder(),
		Ping:        handle.Ping,
		PageSize:    100,
		MaxPageSize: 1000,
	})
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestReady(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyDatabaseDown(t *testing.T) {
	h := newTestHandler(t)
	h.deps.Ping = func(context.Context) error { return errors.New("closed") }

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestIndexListsTablesWithMetadata(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Index), http.MethodGet, "/db", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp indexResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Title != "NBA Database 2000-2025" {
		t.Fatalf("expected metadata title, got %q", resp.Title)
	}
	if len(resp.Tables) != 5 {
		t.Fatalf("expected 5 tables, got %d", len(resp.Tables))
	}
	for _, table := range resp.Tables {
		if table.Name == "players" {
			if table.Description != "One row per player" {
				t.Fatalf("expected players description, got %q", table.Description)
			}
			if table.RowCount != 3 {
				t.Fatalf("expected players row count 3, got %d", table.RowCount)
			}
			return
		}
	}
	t.Fatal("players table missing from index")
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Index), http.MethodPost, "/db", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
