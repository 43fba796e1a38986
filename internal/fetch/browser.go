package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/menulookup/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// Ensure Browser implements Fetcher at compile time.
var _ Fetcher = (*Browser)(nil)

// BrowserOptions configures a Browser fetcher
type BrowserOptions struct {
	ChromePath string
	Proxy      string
	Timeout    time.Duration
	Headers    map[string]string
}

// Browser renders pages in headless Chrome before returning their markup.
// Each Fetch starts and stops its own browser; the pipeline only ever makes
// two sequential requests so there is no pool.
type Browser struct {
	opts    BrowserOptions
	limiter ratelimit.RateLimiter
}

// NewBrowser creates a Browser fetcher. A nil limiter disables throttling.
func NewBrowser(opts BrowserOptions, lim ratelimit.RateLimiter) *Browser {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if lim == nil {
		lim = ratelimit.Noop{}
	}
	return &Browser{opts: opts, limiter: lim}
}

// Name returns the name of this fetcher
func (b *Browser) Name() string {
	return "BrowserFetcher"
}

func (b *Browser) allocatorOptions(userAgent string) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(userAgent),
	}
	if path := FindChrome(b.opts.ChromePath); path != "" {
		opts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, opts...)
	}
	if b.opts.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(b.opts.Proxy))
	}
	return opts
}

// Fetch navigates to url and returns the rendered document markup
func (b *Browser) Fetch(ctx context.Context, url, userAgent string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	log.Debug().
		Str("url", url).
		Str("fetcher", b.Name()).
		Msg("Starting fetch")

	if err := b.limiter.Wait(ctx, url); err != nil {
		return nil, NetworkError(url, fmt.Errorf("rate limiter: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.allocatorOptions(userAgent)...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	setup := chromedp.Tasks{network.Enable()}
	if len(b.opts.Headers) > 0 {
		headers := make(network.Headers, len(b.opts.Headers))
		for k, v := range b.opts.Headers {
			headers[k] = v
		}
		setup = append(setup, network.SetExtraHTTPHeaders(headers))
	}
	if err := chromedp.Run(browserCtx, setup); err != nil {
		return nil, NetworkError(url, fmt.Errorf("chromedp execution failed: %w", err))
	}

	// Main frame document only; iframe responses are ignored.
	resp, err := chromedp.RunResponse(browserCtx, chromedp.Navigate(url))
	if err != nil {
		return nil, NetworkError(url, fmt.Errorf("navigation failed: %w", err))
	}
	code, err := documentStatus(url, resp)
	if err != nil {
		return nil, err
	}

	var markup string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery)); err != nil {
		return nil, NetworkError(url, fmt.Errorf("chromedp execution failed: %w", err))
	}

	log.Debug().
		Str("url", url).
		Int("status", code).
		Int("bytes", len(markup)).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Msg("Fetch completed")

	return []byte(markup), nil
}

// documentStatus checks the main document response of a navigation. A nil
// response (about:blank, cached history entries) is treated as success.
func documentStatus(url string, resp *network.Response) (int, error) {
	if resp == nil {
		return 0, nil
	}
	code := int(resp.Status)
	if !isSuccess(code) {
		return code, StatusError(url, code)
	}
	return code, nil
}
