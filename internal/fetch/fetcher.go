// Package fetch retrieves raw page markup for the lookup pipeline.
package fetch

import "context"

// Fetcher performs one blocking GET of url, identifying itself with
// userAgent, and returns the raw body.
//
// Implementations do not retry. Any failure, including a non-2xx status,
// is reported as a *TransportError.
type Fetcher interface {
	Fetch(ctx context.Context, url, userAgent string) ([]byte, error)

	// Name returns the name of the fetcher implementation
	Name() string
}
