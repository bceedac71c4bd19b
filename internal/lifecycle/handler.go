// Package lifecycle wraps command execution with timing and completion
// reporting.
package lifecycle

import (
	"context"
	"time"
)

// CompletionHandler receives the outcome of a command. A nil handler is
// skipped.
type CompletionHandler interface {
	// OnCommandComplete is called when a command finishes.
	// Parameters:
	//   - name: the command name (e.g., "fetch", "render")
	//   - err: the error returned, nil on success
	//   - duration: how long the command took
	OnCommandComplete(name string, err error, duration time.Duration)
}

// Run executes fn and reports its outcome and duration to handler.
// The error from fn is returned unchanged.
func Run(handler CompletionHandler, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if handler != nil {
		handler.OnCommandComplete(name, err, time.Since(start))
	}
	return err
}

// RunContext is Run for functions that take a context. A cancelled context
// is reported as the error even if fn returned nil.
func RunContext(ctx context.Context, handler CompletionHandler, name string, fn func(context.Context) error) error {
	return Run(handler, name, func() error {
		if err := fn(ctx); err != nil {
			return err
		}
		return ctx.Err()
	})
}
