package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-eventloop"

	cerrors "github.com/vango-dev/cells/internal/errors"
	"github.com/vango-dev/cells/internal/goid"
)

// Loop is a Host backed by an event loop running on its own goroutine.
type Loop struct {
	loop   *eventloop.Loop
	logger *slog.Logger

	gid    atomic.Uint64
	closed atomic.Bool
	cancel context.CancelFunc
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLoopLogger sets the logger for task panics and loop errors.
func WithLoopLogger(l *slog.Logger) LoopOption {
	return func(h *Loop) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewLoop starts an event loop and returns a host bound to it.
func NewLoop(opts ...LoopOption) (*Loop, error) {
	el, err := eventloop.New()
	if err != nil {
		return nil, cerrors.New("R070").Wrap(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Loop{
		loop:   el,
		logger: slog.Default(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	go func() {
		defer close(h.done)
		if err := el.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, eventloop.ErrLoopTerminated) {
			h.logger.Error("event loop stopped", "error", err)
		}
	}()

	ready := make(chan struct{})
	if err := el.Submit(func() {
		h.gid.Store(goid.Get())
		close(ready)
	}); err != nil {
		cancel()
		return nil, cerrors.New("R070").Wrap(err)
	}
	<-ready
	return h, nil
}

// OnLoop reports whether the caller is running on the loop goroutine.
func (h *Loop) OnLoop() bool {
	return goid.Get() == h.gid.Load()
}

// Call runs fn on the loop and waits for it to finish or for ctx to end.
// Called from the loop itself, fn runs directly and a panic propagates to
// the caller.
func (h *Loop) Call(ctx context.Context, fn func()) error {
	if h.OnLoop() {
		fn()
		return nil
	}
	if h.closed.Load() {
		return ErrClosed
	}

	done := make(chan error, 1)
	if err := h.loop.Submit(func() { done <- guard(fn) }); err != nil {
		return cerrors.New("R070").Wrap(err)
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post queues fn on the loop. A panic in fn is logged.
func (h *Loop) Post(fn func()) error {
	if h.closed.Load() {
		return ErrClosed
	}
	if err := h.loop.Submit(func() { h.logPanic(guard(fn)) }); err != nil {
		return cerrors.New("R070").Wrap(err)
	}
	return nil
}

// AfterFunc schedules fn on the loop's timer heap.
func (h *Loop) AfterFunc(d time.Duration, fn func()) (func(), error) {
	if h.closed.Load() {
		return nil, ErrClosed
	}
	id, err := h.loop.ScheduleTimer(d, func() { h.logPanic(guard(fn)) })
	if err != nil {
		return nil, cerrors.New("R070").Wrap(err)
	}
	return func() { _ = h.loop.CancelTimer(id) }, nil
}

// Close drains queued work and stops the loop.
func (h *Loop) Close(ctx context.Context) error {
	h.closeOnce.Do(func() {
		h.closed.Store(true)
		err := h.loop.Shutdown(ctx)
		if err != nil && !errors.Is(err, eventloop.ErrLoopTerminated) {
			h.closeErr = err
		}
		h.cancel()
		select {
		case <-h.done:
		case <-ctx.Done():
			if h.closeErr == nil {
				h.closeErr = ctx.Err()
			}
		}
	})
	return h.closeErr
}

func (h *Loop) logPanic(err error) {
	if err != nil {
		h.logger.Error("host task panicked", "error", err)
	}
}
