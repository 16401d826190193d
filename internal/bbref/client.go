package bbref

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/kschroeder20/nba-database-2000-2025/internal/logging"
	"github.com/kschroeder20/nba-database-2000-2025/internal/metrics"
)

// ErrNotFound is returned when a player page does not exist.
var ErrNotFound = errors.New("player page not found")

const (
	defaultTimeout  = 15 * time.Second
	defaultAttempts = 3
	defaultBackoff  = 2 * time.Second
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches player pages from basketball-reference with a polite
// rate limit and retry on transient failures.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
	metrics     *metrics.Recorder
	maxAttempts int
	backoff     time.Duration
}

// NewClient constructs a Client. delay is the minimum gap between requests.
func NewClient(baseURL string, delay time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *Client {
	if delay <= 0 {
		delay = 3 * time.Second
	}
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		limiter:     rate.NewLimiter(rate.Every(delay), 1),
		logger:      logger,
		metrics:     recorder,
		maxAttempts: defaultAttempts,
		backoff:     defaultBackoff,
	}
}

// FetchPlayer retrieves and parses the page for the given bbref player id
// (e.g. "jamesle01").
func (c *Client) FetchPlayer(ctx context.Context, playerID string) (Profile, error) {
	if playerID == "" {
		return Profile{}, errors.New("empty player id")
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return Profile{}, err
		}

		profile, retryable, err := c.fetchOnce(ctx, playerID)
		if err == nil {
			return profile, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxAttempts {
			break
		}

		logging.Warn(c.logger, "player page fetch retry",
			"player_id", playerID, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return Profile{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}
	return Profile{}, lastErr
}

// fetchOnce performs a single request; retryable is false for 4xx responses.
func (c *Client) fetchOnce(ctx context.Context, playerID string) (Profile, bool, error) {
	url := fmt.Sprintf("%s/players/%s/%s.html", c.baseURL, playerID[:1], playerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Profile{}, false, err
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordScrapeAttempt(time.Since(start), err)
	if err != nil {
		return Profile{}, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Profile{}, false, ErrNotFound
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return Profile{}, true, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Profile{}, false, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	profile, err := ParsePlayerPage(playerID, resp.Body)
	if err != nil {
		return Profile{}, false, err
	}
	return profile, false, nil
}
