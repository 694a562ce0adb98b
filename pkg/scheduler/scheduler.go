// Package scheduler provides the single-threaded hosts that reactive ticks
// run on.
//
// Every event dispatch, deferred update and timer callback of a mounted root
// is funnelled through one Host, so ticks never overlap. Loop runs work on a
// dedicated event loop goroutine; Inline runs it on the calling goroutine
// under a mutex.
package scheduler

import (
	"context"
	"fmt"
	"time"

	cerrors "github.com/vango-dev/cells/internal/errors"
)

// ErrClosed is returned for work submitted to a closed host.
var ErrClosed error = cerrors.New("R070")

// Host serializes reactive work.
type Host interface {
	// Call runs fn on the host and waits for it. When the caller is already
	// running on the host, fn runs immediately and a panic in it unwinds
	// into the caller instead of being returned as a PanicError.
	Call(ctx context.Context, fn func()) error

	// Post queues fn to run on the host later.
	Post(fn func()) error

	// AfterFunc runs fn on the host after d. stop cancels it if it has not
	// started yet.
	AfterFunc(d time.Duration, fn func()) (stop func(), err error)
}

// PanicError is returned by a non-reentrant Call when fn panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("scheduler: task panicked: %v", e.Value)
}

// guard runs fn and converts a panic into a PanicError.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	fn()
	return nil
}
