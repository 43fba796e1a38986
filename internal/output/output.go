// Package output renders lookup results and harvested links for the CLI.
package output

import (
	"fmt"
	"strings"
)

// Format selects how results are rendered
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// ParseFormat validates name against the formats allowed for a command
func ParseFormat(name string, allowed ...Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("invalid format %q (must be one of %s)", name, strings.Join(names, ", "))
}
