package config

import "time"

const (
	envPort          = "PORT"
	envDatabasePath  = "DATABASE_PATH"
	envMetadataPath  = "METADATA_PATH"
	envQueryTimeout  = "QUERY_TIMEOUT"
	envMaxRows       = "MAX_RETURNED_ROWS"
	envPageSize      = "DEFAULT_PAGE_SIZE"
	envMaxPageSize   = "MAX_PAGE_SIZE"
	envReloadWatch   = "RELOAD_ON_CHANGE"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envScrapeBaseURL = "BBREF_BASE_URL"
	envScrapeDelay   = "BBREF_DELAY"
	envReportDir     = "REPORT_DIR"

	defaultPort         = "8001"
	defaultDatabasePath = "nba.db"
	defaultMetadataPath = "metadata.json"
	// Bound on arbitrary SQL; long analytic queries against a ~100MB file
	// finish well inside this.
	defaultQueryTimeout = 5 * Duration(time.Second)
	defaultMaxRows      = 1000
	defaultPageSize     = 100
	defaultMaxPageSize  = 1000
	defaultReloadWatch  = true
	defaultMetricsPort  = "9090"
	defaultScrapeBase   = "https://www.basketball-reference.com"
	// basketball-reference rate limits aggressively; 3s between requests
	// keeps the verification scrape under their threshold.
	defaultScrapeDelay = 3 * Duration(time.Second)
	defaultReportDir   = "reports"
)
