package headers

import (
	"strings"
)

// ParseHeaders converts "Key: Value" strings into a map. Entries without a
// colon or with an empty key are ignored, and later duplicates win.
func ParseHeaders(h []string) map[string]string {
	m := make(map[string]string)
	for _, hdr := range h {
		parts := strings.SplitN(hdr, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		m[key] = strings.TrimSpace(parts[1])
	}
	return m
}
