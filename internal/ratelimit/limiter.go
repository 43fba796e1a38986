package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outgoing page fetches.
type RateLimiter interface {
	// Wait blocks until a request for the given URL can proceed.
	// If the context is cancelled first, its error is returned.
	Wait(ctx context.Context, urlStr string) error
}

// HostLimiter keeps one token bucket per host so the listing page and the
// detail page of the same site share a budget.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
	burst    int
}

// NewHostLimiter creates a limiter allowing requestsPerSecond per host.
// Non-positive values fall back to the package defaults.
func NewHostLimiter(requestsPerSecond float64, burst int) *HostLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2.0
	}
	if burst <= 0 {
		burst = 2
	}

	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the host of urlStr has a token available
func (hl *HostLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	host := hostOf(urlStr)
	if host == "" {
		// Unparseable URL; the fetch itself reports the problem.
		return nil
	}

	return hl.limiter(host).Wait(ctx)
}

func (hl *HostLimiter) limiter(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	lim, ok := hl.limiters[host]
	if !ok {
		lim = rate.NewLimiter(hl.perHost, hl.burst)
		hl.limiters[host] = lim
	}
	return lim
}

// Noop never blocks. Used when rate limiting is disabled.
type Noop struct{}

// Wait returns immediately unless ctx is already done
func (Noop) Wait(ctx context.Context, _ string) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}

func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
