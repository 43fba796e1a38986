package config

import (
	"fmt"

	urlutil "github.com/law-makers/menulookup/internal/utils/url"
	"github.com/law-makers/menulookup/pkg/models"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}
	if err := urlutil.ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if err := urlutil.ValidateURL(c.MenuURL); err != nil {
		return fmt.Errorf("menu url: %w", err)
	}
	switch c.Mode {
	case models.ModeStatic, models.ModeBrowser:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", models.ModeStatic, models.ModeBrowser, c.Mode)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must be >= 0 (0 disables it)")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit burst must be >= 0")
	}
	if c.Proxy != "" {
		if err := urlutil.ValidateProxyURL(c.Proxy); err != nil {
			return fmt.Errorf("proxy: %w", err)
		}
	}
	return nil
}
