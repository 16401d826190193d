package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	DatabasePath string
	MetadataPath string
	QueryTimeout Duration
	MaxRows      int
	PageSize     int
	MaxPageSize  int
	ReloadWatch  bool
	Metrics      MetricsConfig
	Scrape       ScrapeConfig
	ReportDir    string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() Config {
	// Missing .env is the normal case in containers; real env always wins.
	_ = godotenv.Load()

	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		DatabasePath: envOrDefault(envDatabasePath, defaultDatabasePath),
		MetadataPath: envOrDefault(envMetadataPath, defaultMetadataPath),
		QueryTimeout: durationEnvOrDefault(envQueryTimeout, defaultQueryTimeout),
		MaxRows:      intEnvOrDefault(envMaxRows, defaultMaxRows),
		PageSize:     intEnvOrDefault(envPageSize, defaultPageSize),
		MaxPageSize:  intEnvOrDefault(envMaxPageSize, defaultMaxPageSize),
		ReloadWatch:  boolEnvOrDefault(envReloadWatch, defaultReloadWatch),
		Metrics:      loadMetrics(),
		Scrape:       loadScrape(),
		ReportDir:    envOrDefault(envReportDir, defaultReportDir),
	}
}
