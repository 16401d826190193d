package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.DatabasePath != defaultDatabasePath {
		t.Fatalf("expected default database path %s, got %s", defaultDatabasePath, cfg.DatabasePath)
	}
	if cfg.QueryTimeout != defaultQueryTimeout {
		t.Fatalf("expected default query timeout %v, got %v", defaultQueryTimeout, cfg.QueryTimeout)
	}
	if cfg.MaxRows != defaultMaxRows {
		t.Fatalf("expected default max rows %d, got %d", defaultMaxRows, cfg.MaxRows)
	}
	if !cfg.ReloadWatch {
		t.Fatal("expected reload watch enabled by default")
	}
	if cfg.Scrape.Delay != defaultScrapeDelay {
		t.Fatalf("expected default scrape delay %v, got %v", defaultScrapeDelay, cfg.Scrape.Delay)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(envPort, "9000")
	t.Setenv(envDatabasePath, "/data/nba.db")
	t.Setenv(envQueryTimeout, "30s")
	t.Setenv(envMaxRows, "50")
	t.Setenv(envReloadWatch, "false")
	t.Setenv(envMetricsOn, "0")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Fatalf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.DatabasePath != "/data/nba.db" {
		t.Fatalf("expected overridden database path, got %s", cfg.DatabasePath)
	}
	if cfg.QueryTimeout != 30*time.Second {
		t.Fatalf("expected 30s query timeout, got %v", cfg.QueryTimeout)
	}
	if cfg.MaxRows != 50 {
		t.Fatalf("expected max rows 50, got %d", cfg.MaxRows)
	}
	if cfg.ReloadWatch {
		t.Fatal("expected reload watch disabled")
	}
	if cfg.Metrics.Enabled {
		t.Fatal("expected metrics disabled")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envQueryTimeout, "not-a-duration")
	t.Setenv(envMaxRows, "-5")
	t.Setenv(envPageSize, "zero")

	cfg := Load()

	if cfg.QueryTimeout != defaultQueryTimeout {
		t.Fatalf("expected fallback query timeout, got %v", cfg.QueryTimeout)
	}
	if cfg.MaxRows != defaultMaxRows {
		t.Fatalf("expected fallback max rows, got %d", cfg.MaxRows)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("expected fallback page size, got %d", cfg.PageSize)
	}
}
