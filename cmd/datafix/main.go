package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kschroeder20/nba-database-2000-2025/internal/bbref"
	"github.com/kschroeder20/nba-database-2000-2025/internal/config"
	"github.com/kschroeder20/nba-database-2000-2025/internal/datafix"
	"github.com/kschroeder20/nba-database-2000-2025/internal/db"
	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metrics"
)

func main() {
	verify := flag.Bool("verify", false, "re-scrape a sample of player pages and compare against the database")
	players := flag.String("players", "", "comma-separated bbref player ids to verify (implies -verify)")
	dryRun := flag.Bool("dry-run", false, "report fixes without applying them")
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "nba-datafix",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *verify || *players != "", *players, *dryRun); err != nil {
		logging.Error(logger, "datafix failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, verify bool, playerList string, dryRun bool) error {
	handle, err := db.Open(ctx, cfg.DatabasePath, db.ReadWrite)
	if err != nil {
		return err
	}
	defer handle.Close()

	fixer := datafix.NewFixer(handle, logger)
	fixer.DryRun = dryRun
	report, err := fixer.Run(ctx)
	if err != nil {
		return err
	}

	path, err := datafix.NewReportWriter(cfg.ReportDir).Write(report)
	if err != nil {
		return err
	}
	logging.Info(logger, "report written", slog.String("path", path), slog.Bool("dry_run", dryRun))

	if !verify {
		return nil
	}

	client := bbref.NewClient(cfg.Scrape.BaseURL, cfg.Scrape.Delay, logger, metrics.NewRecorder())
	verifier := datafix.NewVerifier(handle, client, logger)

	ids := splitIDs(playerList)
	if len(ids) == 0 {
		if ids, err = verifier.SampleIDs(ctx, 2); err != nil {
			return err
		}
	}

	results, err := verifier.Verify(ctx, ids)
	if err != nil {
		return err
	}
	for _, result := range results {
		if result.OK() {
			logging.Info(logger, "player matches page", slog.String("player_id", result.PlayerID))
			continue
		}
		logging.Warn(logger, "player differs from page",
			slog.String("player_id", result.PlayerID),
			slog.Any("mismatches", result.Mismatches),
			slog.String("fetch_error", result.FetchError),
		)
	}
	return nil
}

func splitIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
