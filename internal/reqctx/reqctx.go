// Package reqctx tags one lookup invocation with a run id so log lines and
// errors from its two fetches can be correlated.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type key int

const runKey key = 0

type RunContext struct {
	RunID     string
	StartTime time.Time
}

func WithRun(ctx context.Context) context.Context {
	return context.WithValue(ctx, runKey, &RunContext{
		RunID:     generateID(),
		StartTime: time.Now(),
	})
}

// FromContext returns the run attached to ctx, or a placeholder with id
// "unknown" when there is none.
func FromContext(ctx context.Context) *RunContext {
	if ctx != nil {
		if rc, ok := ctx.Value(runKey).(*RunContext); ok {
			return rc
		}
	}
	return &RunContext{
		RunID:     "unknown",
		StartTime: time.Now(),
	}
}

func generateID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RunError wraps an error with the id of the run that produced it
type RunError struct {
	RunID string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("[%s] %v", e.RunID, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Wrap attaches the run id from ctx to err. A nil err stays nil.
func Wrap(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	return &RunError{
		RunID: FromContext(ctx).RunID,
		Err:   err,
	}
}
