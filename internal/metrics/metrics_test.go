package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecordQuery(t *testing.T) {
	r := NewRecorder()

	r.RecordQuery(KindSQL, 5*time.Millisecond, false, nil)
	r.RecordQuery(KindSQL, 7*time.Millisecond, true, nil)
	r.RecordQuery(KindSQL, time.Millisecond, false, errors.New("boom"))
	r.RecordQuery(KindTable, 2*time.Millisecond, false, nil)

	snap := r.Snapshot(KindSQL)
	if snap.Executions != 3 {
		t.Fatalf("expected 3 executions, got %d", snap.Executions)
	}
	if snap.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", snap.Errors)
	}
	if snap.Truncations != 1 {
		t.Fatalf("expected 1 truncation, got %d", snap.Truncations)
	}
	if snap.LastLatency != time.Millisecond {
		t.Fatalf("expected last latency 1ms, got %s", snap.LastLatency)
	}

	if got := r.QueryExecutions(KindTable); got != 1 {
		t.Fatalf("expected 1 table execution, got %d", got)
	}
	if got := r.QueryErrors(KindTable); got != 0 {
		t.Fatalf("expected 0 table errors, got %d", got)
	}
}

func TestSnapshotUnknownKind(t *testing.T) {
	r := NewRecorder()
	if snap := r.Snapshot("nope"); snap != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.RecordQuery(KindSQL, time.Millisecond, false, nil)
	r.RecordScrapeAttempt(time.Millisecond, nil)
	r.RecordReload(time.Millisecond, nil)
	r.RecordHTTPRequest("GET", "/db", 200, time.Millisecond)
	if snap := r.Snapshot(KindSQL); snap != (Snapshot{}) {
		t.Fatalf("expected zero snapshot from nil recorder, got %+v", snap)
	}
}

func TestRecorderConcurrentAccess(t *testing.T) {
	r := NewRecorder()
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				r.RecordQuery(KindSQL, time.Millisecond, false, nil)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	if got := r.QueryExecutions(KindSQL); got != 400 {
		t.Fatalf("expected 400 executions, got %d", got)
	}
}
