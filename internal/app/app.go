// Package app provides the core application initialization and lifecycle management.
package app

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/law-makers/menulookup/internal/config"
	"github.com/law-makers/menulookup/internal/fetch"
	"github.com/law-makers/menulookup/internal/menu"
	"github.com/law-makers/menulookup/internal/ratelimit"
	"github.com/law-makers/menulookup/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds the dependencies of one CLI invocation.
//
// It is created once at startup; Close releases idle connections.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	Fetcher     fetch.Fetcher
	startTime   time.Time
}

// New creates and initializes a new Application.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the per-host rate limiter
//   - Initializes the HTTP client with timeout and proxy
//   - Creates the page fetcher for the configured mode
func New(cfg *config.Config) (*Application, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with logs sent to logOut instead of stderr
func NewWithWriter(cfg *config.Config, logOut io.Writer) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := newLogger(cfg, logOut)
	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	var limiter ratelimit.RateLimiter = ratelimit.Noop{}
	if cfg.RateLimitRPS > 0 {
		limiter = ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		logger.Debug().
			Float64("rps", cfg.RateLimitRPS).
			Int("burst", cfg.RateLimitBurst).
			Msg("Rate limiter initialized")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 10
	transport.MaxIdleConnsPerHost = 2
	transport.IdleConnTimeout = 90 * time.Second
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}

	var fetcher fetch.Fetcher
	switch cfg.Mode {
	case models.ModeBrowser:
		fetcher = fetch.NewBrowser(fetch.BrowserOptions{
			ChromePath: cfg.ChromePath,
			Proxy:      cfg.Proxy,
			Timeout:    cfg.HTTPTimeout,
			Headers:    cfg.Headers,
		}, limiter)
	default:
		fetcher = fetch.NewStatic(httpClient, limiter, cfg.Headers)
	}
	logger.Debug().
		Str("fetcher", fetcher.Name()).
		Dur("timeout", cfg.HTTPTimeout).
		Msg("Fetcher initialized")

	return &Application{
		Config:      cfg,
		Logger:      &logger,
		RateLimiter: limiter,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		startTime:   time.Now(),
	}, nil
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.JSONLog {
		out = zerolog.ConsoleWriter{Out: out}
	}
	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// Lookup builds a lookup pipeline over the application's fetcher. observer
// may be nil.
func (a *Application) Lookup(observer func(models.Stage)) *menu.Lookup {
	return menu.NewLookup(a.Fetcher, menu.Options{
		BaseURL:   a.Config.BaseURL,
		MenuURL:   a.Config.MenuURL,
		UserAgent: a.Config.UserAgent,
		Logger:    a.Logger,
		Observer:  observer,
	})
}

// Close releases idle HTTP connections
func (a *Application) Close() error {
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}
	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
