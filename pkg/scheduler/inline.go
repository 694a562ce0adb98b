package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/cells/internal/goid"
)

// Inline is a Host that runs work on the calling goroutine, one call at a
// time. Re-entrant calls from inside a running call execute immediately
// and let panics unwind into the enclosing call.
// It suits tests and command line tools that have no event loop.
type Inline struct {
	mu     sync.Mutex
	owner  atomic.Uint64
	closed atomic.Bool
	wg     sync.WaitGroup
}

// NewInline returns an inline host.
func NewInline() *Inline {
	return &Inline{}
}

// Call runs fn while holding the host.
func (h *Inline) Call(ctx context.Context, fn func()) error {
	if h.closed.Load() {
		return ErrClosed
	}
	gid := goid.Get()
	if h.owner.Load() == gid {
		fn()
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.owner.Store(gid)
	defer h.owner.Store(0)
	return guard(fn)
}

// Post runs fn on a new goroutine once the host is free. Posted functions
// are not ordered with respect to each other.
func (h *Inline) Post(fn func()) error {
	if h.closed.Load() {
		return ErrClosed
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		_ = h.Call(context.Background(), fn)
	}()
	return nil
}

// AfterFunc runs fn on the host after d.
func (h *Inline) AfterFunc(d time.Duration, fn func()) (func(), error) {
	if h.closed.Load() {
		return nil, ErrClosed
	}
	h.wg.Add(1)
	t := time.AfterFunc(d, func() {
		defer h.wg.Done()
		_ = h.Call(context.Background(), fn)
	})
	return func() {
		if t.Stop() {
			h.wg.Done()
		}
	}, nil
}

// Wait blocks until every posted function and started timer has finished.
func (h *Inline) Wait() {
	h.wg.Wait()
}

// Close rejects further work.
func (h *Inline) Close() {
	h.closed.Store(true)
}
