package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Mode selects how the SQLite file is opened.
type Mode int

const (
	// ReadOnly is used by the HTTP server; the serving handle never writes.
	ReadOnly Mode = iota
	// ReadWrite is used by the datafix tool.
	ReadWrite
)

// Queryer is the read surface shared by the catalog, query engine and store.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Handle wraps an open SQLite database and supports swapping the underlying
// connection when the file on disk is replaced.
type Handle struct {
	mu   sync.RWMutex
	path string
	mode Mode
	db   *sql.DB
}

// Open opens the SQLite file at path and verifies it with a ping.
func Open(ctx context.Context, path string, mode Mode) (*Handle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file: %w", err)
	}

	conn, err := open(ctx, path, mode)
	if err != nil {
		return nil, err
	}

	return &Handle{path: path, mode: mode, db: conn}, nil
}

func open(ctx context.Context, path string, mode Mode) (*sql.DB, error) {
	dsn := dsnFor(path, mode)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if mode == ReadWrite {
		// SQLite allows a single writer; more connections just contend.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return conn, nil
}

func dsnFor(path string, mode Mode) string {
	params := url.Values{}
	params.Set("_busy_timeout", "5000")
	if mode == ReadOnly {
		params.Set("mode", "ro")
	}
	return "file:" + path + "?" + params.Encode()
}

// Path returns the filesystem path of the database file.
func (h *Handle) Path() string {
	return h.path
}

// Reload reopens the database file, swapping out the previous connection.
// Used when the file is replaced on disk.
func (h *Handle) Reload(ctx context.Context) error {
	fresh, err := open(ctx, h.path, h.mode)
	if err != nil {
		return err
	}

	h.mu.Lock()
	old := h.db
	h.db = fresh
	h.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Ping verifies the current connection.
func (h *Handle) Ping(ctx context.Context) error {
	return h.conn().PingContext(ctx)
}

// QueryContext runs a query against the current connection.
func (h *Handle) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return h.conn().QueryContext(ctx, query, args...)
}

// QueryRowContext runs a single-row query against the current connection.
func (h *Handle) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return h.conn().QueryRowContext(ctx, query, args...)
}

// ExecContext runs a statement; it fails on read-only handles.
func (h *Handle) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return h.conn().ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction on the current connection.
func (h *Handle) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return h.conn().BeginTx(ctx, opts)
}

// Close releases the underlying connection.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

func (h *Handle) conn() *sql.DB {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.db
}
