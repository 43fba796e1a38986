package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/law-makers/menulookup/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// Ensure Static implements Fetcher at compile time.
var _ Fetcher = (*Static)(nil)

// Static fetches pages with plain HTTP requests. It does not execute
// JavaScript.
type Static struct {
	client  *http.Client
	limiter ratelimit.RateLimiter
	headers map[string]string
}

// NewStatic creates a Static fetcher. A nil limiter disables throttling and
// headers are added to every request after the defaults.
func NewStatic(client *http.Client, lim ratelimit.RateLimiter, headers map[string]string) *Static {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if lim == nil {
		lim = ratelimit.Noop{}
	}
	return &Static{
		client:  client,
		limiter: lim,
		headers: headers,
	}
}

// Name returns the name of this fetcher
func (s *Static) Name() string {
	return "StaticFetcher"
}

// Fetch retrieves the raw body of url
func (s *Static) Fetch(ctx context.Context, url, userAgent string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	log.Debug().
		Str("url", url).
		Str("fetcher", s.Name()).
		Msg("Starting fetch")

	if err := s.limiter.Wait(ctx, url); err != nil {
		return nil, NetworkError(url, fmt.Errorf("rate limiter: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NetworkError(url, fmt.Errorf("failed to create request: %w", err))
	}

	// Set default headers
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, NetworkError(url, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, StatusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Msg("Fetch completed")

	return body, nil
}
