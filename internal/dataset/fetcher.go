package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// FetcherConfig configures the document fetcher.
type FetcherConfig struct {
	// Timeout is the per-request timeout for HTTP fetches.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	BurstSize int

	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int

	// RetryDelay is the base delay between retries.
	RetryDelay time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string
}

// Fetcher retrieves raw dataset documents. HTTP and HTTPS sources go through
// a rate-limited client with bounded retries; any other source string is
// treated as a local file path. It is safe for concurrent use.
type Fetcher struct {
	client      *http.Client
	rateLimiter *RateLimiter
	config      FetcherConfig
}

// NewFetcher creates a new document fetcher with rate limiting.
// The fetcher automatically retries on 429 (Too Many Requests), honoring the
// Retry-After header, and on 5xx server errors.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	// Apply defaults
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 10
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ScholarStack-PaperCatalog/1.0"
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: NewRateLimiter(cfg.RateLimit, cfg.BurstSize),
		config:      cfg,
	}
}

// Fetch returns the raw bytes of a single dataset document.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return f.fetchHTTP(ctx, source)
	}
	return os.ReadFile(source)
}

// fetchHTTP executes a GET request with rate limiting and retries.
func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.config.MaxRetries; attempt++ {
		// Wait for rate limiter
		if err := f.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", f.config.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			// Context cancellation is not retried.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			if attempt < f.config.MaxRetries {
				if err := f.waitForRetry(ctx, f.config.RetryDelay); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		if f.shouldRetry(resp.StatusCode) {
			retryDelay := f.getRetryDelay(resp)

			// Drain and close the body to free the connection before retry.
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if attempt < f.config.MaxRetries {
				lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
				if err := f.waitForRetry(ctx, retryDelay); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("max retries exhausted after %d attempts, last status: %d", f.config.MaxRetries+1, resp.StatusCode)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
		}
		if readErr != nil {
			return nil, fmt.Errorf("read response body: %w", readErr)
		}
		return body, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("unexpected error: no response received")
}

// shouldRetry returns true if the status code indicates we should retry.
func (f *Fetcher) shouldRetry(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	return statusCode >= 500 && statusCode < 600
}

// getRetryDelay determines how long to wait before retrying.
// It respects the Retry-After header if present, otherwise uses the
// configured retry delay.
func (f *Fetcher) getRetryDelay(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return f.config.RetryDelay
	}

	// Try to parse as seconds
	if seconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
		if seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		return f.config.RetryDelay
	}

	// Try to parse as HTTP date
	if t, err := http.ParseTime(retryAfter); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return f.config.RetryDelay
}

// waitForRetry waits for the specified duration, respecting context cancellation.
func (f *Fetcher) waitForRetry(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
