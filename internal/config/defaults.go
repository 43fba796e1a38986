package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel = "error"
	DefaultJSONLog  = false

	DefaultBaseURL = "https://www.dominos.nl/"
	DefaultMenuURL = "https://www.dominos.nl/menu"

	// DefaultUserAgent emulates a desktop browser; some servers reject
	// clients they do not recognise.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/73.0.3683.39 Safari/537.36"

	DefaultHTTPTimeout    = 30 * time.Second
	DefaultMode           = "static"
	DefaultRateLimitRPS   = 2.0
	DefaultRateLimitBurst = 2

	// EnvPrefix prefixes every environment variable, e.g. MENULOOKUP_BASE_URL.
	EnvPrefix = "MENULOOKUP"
)
