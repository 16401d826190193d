package handlers

import (
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kschroeder20/nba-database-2000-2025/internal/catalog"
	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metrics"
	"github.com/kschroeder20/nba-database-2000-2025/internal/query"
)

// tableResponse is the payload for /db/{table}.
type tableResponse struct {
	Table       string           `json:"table"`
	Description string           `json:"description,omitempty"`
	Columns     []catalog.Column `json:"columns"`
	Rows        [][]any          `json:"rows"`
	RowCount    int64            `json:"table_row_count"`
	Truncated   bool             `json:"truncated"`
	QueryMS     float64          `json:"query_ms"`
	NextURL     string           `json:"next_url,omitempty"`
}

func (h *Handler) tableRows(w nethttp.ResponseWriter, r *nethttp.Request, name, format string) {
	logger := loggerFromContext(r, h.deps.Logger)

	table, ok, err := h.deps.Catalog.Table(r.Context(), name)
	if err != nil {
		logging.Error(logger, "failed to introspect schema", err)
		writeError(w, r, nethttp.StatusInternalServerError, "schema unavailable", h.deps.Logger)
		return
	}
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "table not found", h.deps.Logger)
		return
	}

	req, err := query.ParseBrowse(r.URL.Query(), table, h.deps.PageSize, h.deps.MaxPageSize)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.deps.Logger)
		return
	}

	sqlText, args := query.BuildSelect(table, req)
	start := time.Now()
	result, err := h.deps.Engine.Run(r.Context(), sqlText, args...)
	h.deps.Recorder.RecordQuery(metrics.KindTable, time.Since(start), result.Truncated, err)
	if err != nil {
		logging.Error(logger, "table query failed", err, slog.String(logging.FieldTable, name))
		writeError(w, r, nethttp.StatusInternalServerError, "query failed", h.deps.Logger)
		return
	}

	// One extra row was fetched to detect the next page.
	hasMore := req.Page.Size > 0 && len(result.Rows) > req.Page.Size
	if hasMore {
		result.Rows = result.Rows[:req.Page.Size]
	}

	resp := tableResponse{
		Table:     name,
		Columns:   table.Columns,
		Rows:      result.Rows,
		RowCount:  table.RowCount,
		Truncated: result.Truncated,
		QueryMS:   result.QueryMS,
	}
	if tm, ok := h.deps.Metadata.Table(name); ok {
		resp.Description = tm.Description
	}
	if hasMore {
		resp.NextURL = nextPageURL(r.URL, req.Page)
	}

	logging.Info(logger, "served table rows",
		slog.String(logging.FieldTable, name),
		slog.Int(logging.FieldCount, len(resp.Rows)),
	)

	if format == formatCSV {
		writeCSV(w, result, name, h.deps.Logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, resp, h.deps.Logger)
}

func (h *Handler) rowByKey(w nethttp.ResponseWriter, r *nethttp.Request, name, rawKey, format string) {
	logger := loggerFromContext(r, h.deps.Logger)

	table, ok, err := h.deps.Catalog.Table(r.Context(), name)
	if err != nil {
		logging.Error(logger, "failed to introspect schema", err)
		writeError(w, r, nethttp.StatusInternalServerError, "schema unavailable", h.deps.Logger)
		return
	}
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "table not found", h.deps.Logger)
		return
	}

	key, err := url.PathUnescape(rawKey)
	if err != nil || key == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid row key", h.deps.Logger)
		return
	}

	// Tables without a single-column primary key fall back to rowid.
	keyColumn := "rowid"
	if pk := table.PrimaryKey(); len(pk) == 1 {
		keyColumn = pk[0]
	}

	sqlText := "SELECT * FROM " + catalog.QuoteIdentifier(table.Name) +
		" WHERE " + catalog.QuoteIdentifier(keyColumn) + " = ? LIMIT 1"
	start := time.Now()
	result, err := h.deps.Engine.Run(r.Context(), sqlText, key)
	h.deps.Recorder.RecordQuery(metrics.KindTable, time.Since(start), false, err)
	if err != nil {
		logging.Error(logger, "row lookup failed", err, slog.String(logging.FieldTable, name))
		writeError(w, r, nethttp.StatusInternalServerError, "query failed", h.deps.Logger)
		return
	}
	if len(result.Rows) == 0 {
		writeError(w, r, nethttp.StatusNotFound, "row not found", h.deps.Logger)
		return
	}

	if format == formatCSV {
		writeCSV(w, result, name, h.deps.Logger)
		return
	}

	row := make(map[string]any, len(result.Columns))
	for i, col := range result.Columns {
		row[col] = result.Rows[0][i]
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"table": name,
		"row":   row,
	}, h.deps.Logger)
}

// nextPageURL rebuilds the request URL with the offset advanced one page.
func nextPageURL(u *url.URL, page query.Page) string {
	values := u.Query()
	values.Set("_offset", strconv.Itoa(page.Offset+page.Size))
	next := *u
	next.RawQuery = values.Encode()
	return next.String()
}
