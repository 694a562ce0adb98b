package reactive

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// panicked is set once any tick panics and is never cleared in production.
var panicked atomic.Bool

var panicNotifiers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(v any)
}

// HasPanicked reports whether any tick in the process has panicked.
// After a panic no tick runs and no deferred task resumes.
func HasPanicked() bool {
	return panicked.Load()
}

// ResetPanicked clears the panic flag. Intended for tests and for hosts that
// throw away every mounted root before continuing.
func ResetPanicked() {
	panicked.Store(false)
}

// OnPanic registers fn to be called once a tick panics. It is how the user
// gets told that the page stopped updating. The returned function removes
// the registration.
func OnPanic(fn func(v any)) (remove func()) {
	panicNotifiers.mu.Lock()
	defer panicNotifiers.mu.Unlock()
	if panicNotifiers.fns == nil {
		panicNotifiers.fns = make(map[int]func(any))
	}
	id := panicNotifiers.next
	panicNotifiers.next++
	panicNotifiers.fns[id] = fn

	return func() {
		panicNotifiers.mu.Lock()
		delete(panicNotifiers.fns, id)
		panicNotifiers.mu.Unlock()
	}
}

// markPanicked sets the global flag, logs the panic and notifies listeners.
func markPanicked(logger *slog.Logger, v any) {
	panicked.Store(true)
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("panic occurred, reactive updates stopped",
		"panic", fmt.Sprint(v),
		"stack", string(debug.Stack()),
	)

	panicNotifiers.mu.Lock()
	fns := make([]func(any), 0, len(panicNotifiers.fns))
	for _, fn := range panicNotifiers.fns {
		fns = append(fns, fn)
	}
	panicNotifiers.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() { _ = recover() }()
			fn(v)
		}()
	}
}

// WithPanicCancel returns a context that is cancelled with ErrPanicked as
// soon as any tick panics, or when the returned cancel func is called.
func WithPanicCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	remove := OnPanic(func(any) { cancel(ErrPanicked) })
	if HasPanicked() {
		cancel(ErrPanicked)
	}
	return ctx, func() {
		remove()
		cancel(context.Canceled)
	}
}

// ReportPanic records a panic recovered outside a tick, such as in a spawned
// task, exactly as if a tick had panicked.
func ReportPanic(logger *slog.Logger, v any) {
	markPanicked(logger, v)
}
