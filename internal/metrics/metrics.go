package metrics

import (
	"sync"
	"time"
)

type queryStats struct {
	executions  int
	errors      int
	truncations int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about query execution.
// It is intentionally simple so it can be swapped for a real backend later.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*queryStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*queryStats),
		otel:  otel,
	}
}

// Query kinds recorded by the HTTP layer.
const (
	KindSQL   = "sql"
	KindTable = "table"
	KindTyped = "typed"
)

// RecordQuery increments counters for a query execution and stores the last
// observed latency. kind is one of the Kind constants.
func (r *Recorder) RecordQuery(kind string, duration time.Duration, truncated bool, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(kind)
	stats.executions++
	stats.lastLatency = duration
	if truncated {
		stats.truncations++
	}
	if err != nil {
		stats.errors++
	}
	if r.otel != nil {
		r.otel.recordQuery(kind, duration, truncated, err)
	}
}

// RecordScrapeAttempt tracks a basketball-reference page fetch.
func (r *Recorder) RecordScrapeAttempt(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordScrapeAttempt(duration, err)
}

// RecordReload tracks database reload cycles triggered by the file watcher.
func (r *Recorder) RecordReload(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordReload(duration, err)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot returns a copy of the current stats for the query kind.
type Snapshot struct {
	Executions  int
	Errors      int
	Truncations int
	LastLatency time.Duration
}

func (r *Recorder) Snapshot(kind string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(kind)
	return Snapshot{
		Executions:  stats.executions,
		Errors:      stats.errors,
		Truncations: stats.truncations,
		LastLatency: stats.lastLatency,
	}
}

// QueryExecutions returns the total executions recorded for a kind.
func (r *Recorder) QueryExecutions(kind string) int {
	return r.Snapshot(kind).Executions
}

// QueryErrors returns the total failed executions recorded for a kind.
func (r *Recorder) QueryErrors(kind string) int {
	return r.Snapshot(kind).Errors
}

func (r *Recorder) ensureStats(kind string) *queryStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[kind]
	if !ok {
		stats = &queryStats{}
		r.stats[kind] = stats
	}
	return stats
}

func (r *Recorder) snapshot(kind string) queryStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[kind]; ok && stats != nil {
		return *stats
	}
	return queryStats{}
}
