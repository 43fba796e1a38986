package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all logging except errors")
	cmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "", "Hard timeout per request (e.g., 10s)")
	cmd.PersistentFlags().String("user-agent", "", "Override the browser user agent string")
	cmd.PersistentFlags().String("config", "", "Path to configuration file (optional)")
	cmd.PersistentFlags().String("base-url", "", "Site base URL prepended to menu item paths")
	cmd.PersistentFlags().String("menu-url", "", "Menu listing page URL")
	cmd.PersistentFlags().String("mode", "", "Fetch mode: static or browser")
	cmd.PersistentFlags().String("chrome-path", "", "Chrome executable for browser mode")
	cmd.PersistentFlags().StringArrayP("header", "H", []string{}, "Extra request header (e.g., -H \"Accept-Language: nl-NL\")")
}
