package config

// ScrapeConfig controls the basketball-reference verification client.
type ScrapeConfig struct {
	BaseURL string
	Delay   Duration
}

func loadScrape() ScrapeConfig {
	return ScrapeConfig{
		BaseURL: envOrDefault(envScrapeBaseURL, defaultScrapeBase),
		Delay:   durationEnvOrDefault(envScrapeDelay, defaultScrapeDelay),
	}
}
