package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strings"

	appgames "github.com/kschroeder20/nba-database-2000-2025/internal/app/games"
	appplayers "github.com/kschroeder20/nba-database-2000-2025/internal/app/players"
	appteams "github.com/kschroeder20/nba-database-2000-2025/internal/app/teams"
	"github.com/kschroeder20/nba-database-2000-2025/internal/catalog"
	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metadata"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metrics"
	"github.com/kschroeder20/nba-database-2000-2025/internal/query"
)

// Deps collects everything the HTTP handlers need.
type Deps struct {
	Catalog  *catalog.Catalog
	Engine   *query.Engine
	Metadata metadata.Metadata
	Players  *appplayers.Service
	Teams    *appteams.Service
	Games    *appgames.Service
	Logger   *slog.Logger
	Recorder *metrics.Recorder
	// Ping reports database liveness for the readiness probe.
	Ping        func(context.Context) error
	PageSize    int
	MaxPageSize int
}

// Handler wires HTTP routes to the catalog, query engine and typed services.
type Handler struct {
	deps Deps
}

// NewHandler constructs a Handler with defaults applied.
func NewHandler(deps Deps) *Handler {
	if deps.PageSize <= 0 {
		deps.PageSize = 100
	}
	if deps.MaxPageSize <= 0 {
		deps.MaxPageSize = 1000
	}
	return &Handler{deps: deps}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.deps.Logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.deps.Logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.deps.Logger)
}

// Ready reports readiness for traffic; the database must answer a ping.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.deps.Logger) {
		return
	}
	if h.deps.Ping != nil {
		if err := h.deps.Ping(r.Context()); err != nil {
			writeError(w, r, nethttp.StatusServiceUnavailable, "database unavailable", h.deps.Logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.deps.Logger)
}

// indexTable is one table entry in the database index payload.
type indexTable struct {
	Name        string `json:"name"`
	RowCount    int64  `json:"row_count"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// indexResponse is the payload returned by /db.
type indexResponse struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Source      string       `json:"source,omitempty"`
	SourceURL   string       `json:"source_url,omitempty"`
	License     string       `json:"license,omitempty"`
	LicenseURL  string       `json:"license_url,omitempty"`
	Tables      []indexTable `json:"tables"`
}

// Index lists the database tables with metadata descriptions.
func (h *Handler) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.deps.Logger) {
		return
	}

	tables, err := h.deps.Catalog.Tables(r.Context())
	if err != nil {
		logger := loggerFromContext(r, h.deps.Logger)
		logging.Error(logger, "failed to introspect schema", err)
		writeError(w, r, nethttp.StatusInternalServerError, "schema unavailable", h.deps.Logger)
		return
	}

	meta := h.deps.Metadata
	resp := indexResponse{
		Title:       meta.Title,
		Description: meta.Description,
		Source:      meta.Source,
		SourceURL:   meta.SourceURL,
		License:     meta.License,
		LicenseURL:  meta.LicenseURL,
		Tables:      make([]indexTable, 0, len(tables)),
	}
	for _, t := range tables {
		entry := indexTable{Name: t.Name, RowCount: t.RowCount, URL: "/db/" + t.Name}
		if tm, ok := meta.Table(t.Name); ok {
			entry.Description = tm.Description
		}
		resp.Tables = append(resp.Tables, entry)
	}

	writeJSON(w, nethttp.StatusOK, resp, h.deps.Logger)
}

// Database dispatches /db/... requests: the SQL endpoint, table browsing
// and row lookup.
func (h *Handler) Database(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.deps.Logger) {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/db/")
	rest, format := splitFormat(rest, r)

	if rest == "query" {
		h.execSQL(w, r, format)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	switch {
	case len(parts) == 1 && parts[0] != "":
		h.tableRows(w, r, parts[0], format)
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		h.rowByKey(w, r, parts[0], parts[1], format)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.deps.Logger)
	}
}

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

// splitFormat strips a .json/.csv suffix from the path and honors an
// explicit _format parameter.
func splitFormat(path string, r *nethttp.Request) (string, string) {
	format := formatJSON
	switch {
	case strings.HasSuffix(path, ".csv"):
		path, format = strings.TrimSuffix(path, ".csv"), formatCSV
	case strings.HasSuffix(path, ".json"):
		path = strings.TrimSuffix(path, ".json")
	}
	if explicit := r.URL.Query().Get("_format"); explicit == formatCSV {
		format = formatCSV
	}
	return path, format
}
