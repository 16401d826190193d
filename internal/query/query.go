package query

import (
	"context"
	"time"

	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
)

// Result is the generic shape returned for arbitrary SQL and table browsing.
type Result struct {
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	Truncated bool     `json:"truncated"`
	QueryMS   float64  `json:"query_ms"`
}

// Engine executes validated read-only SQL with a row cap and timeout.
type Engine struct {
	q       db.Queryer
	maxRows int
	timeout time.Duration
}

// NewEngine constructs an Engine. maxRows bounds every result; timeout
// bounds every execution.
func NewEngine(q db.Queryer, maxRows int, timeout time.Duration) *Engine {
	return &Engine{q: q, maxRows: maxRows, timeout: timeout}
}

// MaxRows returns the configured row cap.
func (e *Engine) MaxRows() int {
	return e.maxRows
}

// Execute validates raw, binds named parameters from values and runs it.
func (e *Engine) Execute(ctx context.Context, raw string, values map[string]string) (Result, error) {
	sqlText, err := Validate(raw)
	if err != nil {
		return Result{}, err
	}

	args, err := BindNamed(sqlText, values)
	if err != nil {
		return Result{}, err
	}

	return e.run(ctx, sqlText, args...)
}

// Run executes already-trusted SQL built by the table browser.
func (e *Engine) Run(ctx context.Context, sqlText string, args ...any) (Result, error) {
	return e.run(ctx, sqlText, args...)
}

func (e *Engine) run(ctx context.Context, sqlText string, args ...any) (Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := e.q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Result{}, err
	}

	result := Result{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		if e.maxRows > 0 && len(result.Rows) >= e.maxRows {
			result.Truncated = true
			break
		}

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, err
		}
		result.Rows = append(result.Rows, normalizeRow(values))
	}
	if err := rows.Err(); err != nil {
		return Result{}, err
	}

	result.QueryMS = float64(time.Since(start).Microseconds()) / 1000.0
	return result, nil
}

// normalizeRow converts driver byte slices to strings so JSON output is
// text rather than base64.
func normalizeRow(values []any) []any {
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	return values
}
