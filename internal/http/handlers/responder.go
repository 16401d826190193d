package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kschroeder20/nba-database-2000-2025/internal/http/middleware"
	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/query"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeCSV streams a query result as CSV with a header row. NULLs render as
// empty cells, same as Datasette's CSV export.
func writeCSV(w http.ResponseWriter, result query.Result, filename string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
	}
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(result.Columns); err != nil {
		logging.Error(logger, "failed to write csv header", err)
		return
	}
	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, val := range row {
			record[i] = csvCell(val)
		}
		if err := cw.Write(record); err != nil {
			logging.Error(logger, "failed to write csv row", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logging.Error(logger, "failed to flush csv", err)
	}
}

func csvCell(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return trimFloat(v)
	default:
		return fmt.Sprint(v)
	}
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}
