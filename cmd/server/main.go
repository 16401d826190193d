package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kschroeder20/nba-database-2000-2025/internal/config"
	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/server"
)

const appVersion = "dev"

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "nba-database",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "startup failed", err)
		stop()
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
