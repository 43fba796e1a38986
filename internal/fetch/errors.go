package fetch

import (
	"errors"
	"fmt"
)

// ErrTransport matches every *TransportError via errors.Is
var ErrTransport = errors.New("transport error")

// TransportError reports a fetch that could not complete or that the server
// answered with a non-success status.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// StatusError builds a TransportError for an unsuccessful HTTP status
func StatusError(url string, status int) *TransportError {
	return &TransportError{URL: url, StatusCode: status}
}

// NetworkError builds a TransportError for a request that never completed
func NetworkError(url string, err error) *TransportError {
	return &TransportError{URL: url, Err: err}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
