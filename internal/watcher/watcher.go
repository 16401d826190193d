package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metrics"
)

// Debounce window: replacing the database file produces a burst of events.
const settleDelay = 250 * time.Millisecond

// Reloader reopens the database and invalidates derived caches.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Invalidator drops cached schema after a reload.
type Invalidator interface {
	Invalidate()
}

// Watcher reloads the database handle when the file on disk is replaced,
// so a re-published nba.db is served without a restart.
type Watcher struct {
	path     string
	reloader Reloader
	caches   []Invalidator
	logger   *slog.Logger
	metrics  *metrics.Recorder

	fsw      *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent reload activity.
type Status struct {
	Reloads     int
	LastError   string
	LastAttempt time.Time
	LastSuccess time.Time
}

// New constructs a Watcher for the database file at path.
func New(path string, reloader Reloader, logger *slog.Logger, recorder *metrics.Recorder, caches ...Invalidator) *Watcher {
	return &Watcher{
		path:     path,
		reloader: reloader,
		caches:   caches,
		logger:   logger,
		metrics:  recorder,
		done:     make(chan struct{}),
	}
}

// Start begins watching until the context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return nil
	}
	w.started = true
	w.startMu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: atomic replacement (rename over the file)
	// detaches a watch on the file itself.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return err
	}
	w.fsw = fsw

	go w.loop(ctx)
	logging.Info(w.logger, "database watcher started", slog.String(logging.FieldDatabase, w.path))
	return nil
}

// Stop halts the watch loop.
func (w *Watcher) Stop(ctx context.Context) error {
	_ = ctx
	w.stopOnce.Do(func() {
		close(w.done)
	})
	return nil
}

// Status returns a copy of the current reload status.
func (w *Watcher) CurrentStatus() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}

func (w *Watcher) loop(ctx context.Context) {
	defer func() {
		if w.fsw != nil {
			_ = w.fsw.Close()
		}
	}()

	var settle *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			logging.Info(w.logger, "database watcher stopped")
			return
		case <-w.done:
			logging.Info(w.logger, "database watcher stopped")
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(settleDelay)
				settleC = settle.C
			} else {
				settle.Reset(settleDelay)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn(w.logger, "watch error", "error", err)
		case <-settleC:
			settle = nil
			settleC = nil
			w.reloadOnce(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(w.path) {
		return false
	}
	return event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Rename)
}

func (w *Watcher) reloadOnce(ctx context.Context) {
	start := time.Now()
	err := w.reloader.Reload(ctx)
	if err == nil {
		for _, cache := range w.caches {
			cache.Invalidate()
		}
	}
	w.metrics.RecordReload(time.Since(start), err)

	w.statusMu.Lock()
	w.status.LastAttempt = start
	if err != nil {
		w.status.LastError = err.Error()
	} else {
		w.status.Reloads++
		w.status.LastError = ""
		w.status.LastSuccess = start
	}
	w.statusMu.Unlock()

	if err != nil {
		logging.Error(w.logger, "database reload failed", err, slog.String(logging.FieldDatabase, w.path))
		return
	}
	logging.Info(w.logger, "database reloaded",
		slog.String(logging.FieldDatabase, w.path),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}
