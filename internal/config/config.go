package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/law-makers/menulookup/internal/utils/headers"
	"github.com/law-makers/menulookup/pkg/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Site
	BaseURL string
	MenuURL string

	// HTTP/Fetching
	HTTPTimeout time.Duration
	UserAgent   string
	Proxy       string
	Headers     map[string]string
	Mode        models.FetchMode
	ChromePath  string

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// fileConfig mirrors the keys accepted in a config file or the environment
type fileConfig struct {
	LogLevel       string            `mapstructure:"log_level"`
	JSONLog        bool              `mapstructure:"json_log"`
	BaseURL        string            `mapstructure:"base_url"`
	MenuURL        string            `mapstructure:"menu_url"`
	Timeout        time.Duration     `mapstructure:"timeout"`
	UserAgent      string            `mapstructure:"user_agent"`
	Proxy          string            `mapstructure:"proxy"`
	Headers        map[string]string `mapstructure:"headers"`
	Mode           string            `mapstructure:"mode"`
	ChromePath     string            `mapstructure:"chrome_path"`
	RateLimitRPS   float64           `mapstructure:"rate_limit_rps"`
	RateLimitBurst int               `mapstructure:"rate_limit_burst"`
}

// Load builds a Config by combining defaults, an optional config file,
// MENULOOKUP_* environment variables and CLI flags, in increasing priority.
// Caller should pass the root *cobra.Command so flags can be read; nil skips
// the flag layer.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, flagString(cmd, "config")); err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg := &Config{
		LogLevel:       fc.LogLevel,
		JSONLog:        fc.JSONLog,
		BaseURL:        fc.BaseURL,
		MenuURL:        fc.MenuURL,
		HTTPTimeout:    fc.Timeout,
		UserAgent:      fc.UserAgent,
		Proxy:          fc.Proxy,
		Headers:        fc.Headers,
		Mode:           models.FetchMode(strings.ToLower(fc.Mode)),
		ChromePath:     fc.ChromePath,
		RateLimitRPS:   fc.RateLimitRPS,
		RateLimitBurst: fc.RateLimitBurst,
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("json_log", DefaultJSONLog)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("menu_url", DefaultMenuURL)
	v.SetDefault("timeout", DefaultHTTPTimeout)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("proxy", "")
	v.SetDefault("mode", DefaultMode)
	v.SetDefault("chrome_path", "")
	v.SetDefault("rate_limit_rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit_burst", DefaultRateLimitBurst)
}

// readConfigFile loads an explicit file, or menulookup.yaml from the working
// directory or ~/.config/menulookup when present.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("menulookup")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/menulookup")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// applyFlags overrides cfg with every flag the user set explicitly
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	if cmd == nil {
		return nil
	}

	if s := flagString(cmd, "user-agent"); s != "" {
		cfg.UserAgent = s
	}
	if s := flagString(cmd, "proxy"); s != "" {
		cfg.Proxy = s
	}
	if s := flagString(cmd, "base-url"); s != "" {
		cfg.BaseURL = s
	}
	if s := flagString(cmd, "menu-url"); s != "" {
		cfg.MenuURL = s
	}
	if s := flagString(cmd, "mode"); s != "" {
		cfg.Mode = models.FetchMode(strings.ToLower(s))
	}
	if s := flagString(cmd, "chrome-path"); s != "" {
		cfg.ChromePath = s
	}
	if s := flagString(cmd, "timeout"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("timeout %q: %w", s, err)
		}
		cfg.HTTPTimeout = d
	}
	if flagString(cmd, "json") == "true" {
		cfg.JSONLog = true
	}
	if flagString(cmd, "quiet") == "true" {
		cfg.LogLevel = "error"
	}
	if flagString(cmd, "verbose") == "true" {
		cfg.LogLevel = "debug"
	}
	if f := lookupFlag(cmd, "header"); f != nil {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			for k, v := range headers.ParseHeaders(sv.GetSlice()) {
				cfg.Headers[k] = v
			}
		}
	}
	return nil
}

// lookupFlag finds a flag on cmd, including persistent flags of cmd itself
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if cmd == nil {
		return nil
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.PersistentFlags().Lookup(name)
}

func flagString(cmd *cobra.Command, name string) string {
	f := lookupFlag(cmd, name)
	if f == nil || !f.Changed {
		return ""
	}
	return f.Value.String()
}
