package server

import (
	"context"
	"log/slog"
	"net/http"

	appgames "github.com/kschroeder20/nba-database-2000-2025/internal/app/games"
	appplayers "github.com/kschroeder20/nba-database-2000-2025/internal/app/players"
	appteams "github.com/kschroeder20/nba-database-2000-2025/internal/app/teams"
	"github.com/kschroeder20/nba-database-2000-2025/internal/catalog"
	"github.com/kschroeder20/nba-database-2000-2025/internal/config"
	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
	httpserver "github.com/kschroeder20/nba-database-2000-2025/internal/http"
	"github.com/kschroeder20/nba-database-2000-2025/internal/http/handlers"
	"github.com/kschroeder20/nba-database-2000-2025/internal/http/middleware"
	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metadata"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metrics"
	"github.com/kschroeder20/nba-database-2000-2025/internal/query"
	"github.com/kschroeder20/nba-database-2000-2025/internal/store"
	"github.com/kschroeder20/nba-database-2000-2025/internal/watcher"
)

var metricsSetup = metrics.Setup

// Server owns the database handle, HTTP servers and the file watcher.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	handle        *db.Handle
	catalog       *catalog.Catalog
	httpServer    httpServer
	metricsServer httpServer
	watcher       *watcher.Watcher
	metricsStop   func(context.Context) error
}

// New opens the database read-only and wires the full server.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	handle, err := db.Open(ctx, cfg.DatabasePath, db.ReadOnly)
	if err != nil {
		return nil, err
	}

	meta, err := metadata.Load(cfg.MetadataPath)
	if err != nil {
		logging.Warn(logger, "metadata unavailable, serving without descriptions", "error", err)
		meta = metadata.Metadata{}
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)
	cat := catalog.New(handle)
	engine := query.NewEngine(handle, cfg.MaxRows, cfg.QueryTimeout)
	sqlStore := store.NewSQLiteStore(handle)

	handler := handlers.NewHandler(handlers.Deps{
		Catalog:     cat,
		Engine:      engine,
		Metadata:    meta,
		Players:     appplayers.NewService(sqlStore),
		Teams:       appteams.NewService(sqlStore),
		Games:       appgames.NewService(sqlStore),
		Logger:      logger,
		Recorder:    recorder,
		Ping:        handle.Ping,
		PageSize:    cfg.PageSize,
		MaxPageSize: cfg.MaxPageSize,
	})
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	var fileWatcher *watcher.Watcher
	if cfg.ReloadWatch {
		fileWatcher = watcher.New(cfg.DatabasePath, handle, logger, recorder, cat)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		handle:        handle,
		catalog:       cat,
		httpServer:    netHTTPServer{srv: srv},
		metricsServer: metricsSrv,
		watcher:       fileWatcher,
		metricsStop:   metricsShutdown,
	}, nil
}

// Run starts the watcher and HTTP servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.startWatcher(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) startWatcher(ctx context.Context) {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Start(ctx); err != nil {
		logging.Warn(s.logger, "database watcher unavailable, reload disabled", "error", err)
	}
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.watcher != nil {
		if err := s.watcher.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop watcher", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.handle.Close(); err != nil {
		logging.Warn(s.logger, "database close failed", "error", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: mux,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
