// Package client fetches raw schedule, scoreboard and ranking data
// from the public stats endpoints. It is the source-feed collaborator
// consumed by the sync service; everything downstream sees only typed
// rows.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kimhyunseo/kbo-calendar/internal/cache"
	"github.com/kimhyunseo/kbo-calendar/internal/metrics"
)

// Client is the HTTP client for the KBO source feed.
type Client struct {
	feedBaseURL     string
	scheduleBaseURL string
	rankingURL      string
	httpClient      *http.Client
	cache           *cache.RedisCache // nil disables caching
	cacheTTL        time.Duration
	maxRetries      int
	retryDelay      time.Duration
}

// New creates a feed client. cache may be nil.
func New(feedBaseURL, scheduleBaseURL, rankingURL string, timeout time.Duration, c *cache.RedisCache, cacheTTL time.Duration) *Client {
	return &Client{
		feedBaseURL:     feedBaseURL,
		scheduleBaseURL: scheduleBaseURL,
		rankingURL:      rankingURL,
		cache:           c,
		cacheTTL:        cacheTTL,
		maxRetries:      3,
		retryDelay:      1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET with retry and exponential backoff, consulting the
// cache first when one is configured. cacheKey may be empty to bypass
// the cache for the request.
func (c *Client) get(ctx context.Context, endpoint, url, cacheKey string) ([]byte, error) {
	if c.cache != nil && cacheKey != "" {
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			log.Debug().Str("key", cacheKey).Msg("Feed response served from cache")
			metrics.RecordFeedCall(endpoint, "cache_hit", 0)
			return body, nil
		}
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying feed request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json, text/html")
		req.Header.Set("User-Agent", "kbo-calendar-sync/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("feed request failed: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			metrics.RecordFeedCall(endpoint, "error", time.Since(start).Seconds())
			return nil, lastErr
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			if attempt < c.maxRetries {
				continue
			}
			metrics.RecordFeedCall(endpoint, "error", time.Since(start).Seconds())
			return nil, lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			metrics.RecordFeedCall(endpoint, "ok", time.Since(start).Seconds())
			if c.cache != nil && cacheKey != "" {
				c.cache.Set(ctx, cacheKey, body, c.cacheTTL)
			}
			return body, nil

		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = fmt.Errorf("feed returned retryable status %d", resp.StatusCode)
			if attempt < c.maxRetries {
				log.Warn().
					Str("url", url).
					Int("status", resp.StatusCode).
					Int("attempt", attempt+1).
					Msg("Received retryable error, will retry")
				continue
			}
			metrics.RecordFeedCall(endpoint, "error", time.Since(start).Seconds())
			return nil, lastErr

		default:
			metrics.RecordFeedCall(endpoint, "error", time.Since(start).Seconds())
			return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
		}
	}

	return nil, lastErr
}
