package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metrics"
	"github.com/kschroeder20/nba-database-2000-2025/internal/query"
)

// queryResponse is the payload for /db/query.
type queryResponse struct {
	SQL       string   `json:"sql"`
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	Truncated bool     `json:"truncated"`
	QueryMS   float64  `json:"query_ms"`
}

// execSQL runs an arbitrary read-only query supplied via ?sql=. Named
// :params bind from matching query-string values.
func (h *Handler) execSQL(w nethttp.ResponseWriter, r *nethttp.Request, format string) {
	logger := loggerFromContext(r, h.deps.Logger)

	raw := r.URL.Query().Get("sql")
	params := paramValues(r)

	start := time.Now()
	result, err := h.deps.Engine.Execute(r.Context(), raw, params)
	h.deps.Recorder.RecordQuery(metrics.KindSQL, time.Since(start), result.Truncated, err)
	if err != nil {
		status, message := sqlErrorStatus(err)
		if status == nethttp.StatusInternalServerError {
			logging.Error(logger, "sql query failed", err)
		} else {
			logging.Warn(logger, "sql query rejected", slog.String("reason", message))
		}
		writeError(w, r, status, message, h.deps.Logger)
		return
	}

	logging.Info(logger, "served sql query", slog.Int(logging.FieldCount, len(result.Rows)))

	if format == formatCSV {
		writeCSV(w, result, "query", h.deps.Logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, queryResponse{
		SQL:       strings.TrimSpace(raw),
		Columns:   result.Columns,
		Rows:      result.Rows,
		Truncated: result.Truncated,
		QueryMS:   result.QueryMS,
	}, h.deps.Logger)
}

// paramValues extracts candidate named-parameter values from the query
// string, skipping reserved keys.
func paramValues(r *nethttp.Request) map[string]string {
	values := r.URL.Query()
	params := make(map[string]string, len(values))
	for key := range values {
		if key == "sql" || strings.HasPrefix(key, "_") {
			continue
		}
		params[key] = values.Get(key)
	}
	return params
}

// sqlErrorStatus maps engine failures to HTTP statuses: validation and
// binding problems are the caller's fault, everything else is ours.
func sqlErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, query.ErrEmpty),
		errors.Is(err, query.ErrNotReadOnly),
		errors.Is(err, query.ErrMultiple),
		errors.Is(err, query.ErrDeniedKeyword):
		return nethttp.StatusBadRequest, err.Error()
	case strings.Contains(err.Error(), "missing value for parameter"):
		return nethttp.StatusBadRequest, err.Error()
	case strings.Contains(err.Error(), "syntax error"),
		strings.Contains(err.Error(), "no such table"),
		strings.Contains(err.Error(), "no such column"):
		return nethttp.StatusBadRequest, err.Error()
	default:
		return nethttp.StatusInternalServerError, "query failed"
	}
}
