package component

import (
	"context"
	"time"
	"weak"

	"github.com/vango-dev/cells/pkg/reactive"
)

// Deferred lets async code update a root it does not own. It holds a weak
// reference only.
type Deferred[D any] struct {
	ptr weak.Pointer[Root[D]]
}

// upgrade returns the root if it is still alive and mounted.
func (d *Deferred[D]) upgrade() *Root[D] {
	r := d.ptr.Value()
	if r == nil || !r.mounted.Load() {
		return nil
	}
	return r
}

// Update runs fn against the data as one tick. It reports false when the
// root is gone, when the process has panicked and when the root is already
// borrowed (a bug that is also logged).
func (d *Deferred[D]) Update(fn func(data *D)) bool {
	_, ok := UpdateValue(d, func(data *D) struct{} {
		fn(data)
		return struct{}{}
	})
	return ok
}

// UpdateValue is Update for closures that produce a value.
func UpdateValue[D, R any](d *Deferred[D], fn func(data *D) R) (R, bool) {
	var zero R
	r := d.upgrade()
	if r == nil {
		return zero, false
	}
	obs := r.engine.Observer()
	if reactive.HasPanicked() {
		if obs != nil {
			obs.DeferredRejected(reactive.RejectPanicked)
		}
		return zero, false
	}

	var (
		out R
		ran bool
	)
	err := r.host.Call(context.Background(), func() {
		// The root may have been unmounted while this call was queued.
		if !r.mounted.Load() {
			return
		}
		ran = r.engine.Run(func() { out = fn(r.data) })
	})
	if err != nil || !ran {
		if obs != nil {
			switch {
			case reactive.HasPanicked():
				obs.DeferredRejected(reactive.RejectPanicked)
			case !r.mounted.Load():
				obs.DeferredRejected(reactive.RejectUnmounted)
			default:
				obs.DeferredRejected(reactive.RejectBorrowed)
			}
		}
		return zero, false
	}
	return out, true
}

// Alive reports whether the root can still be updated.
func (d *Deferred[D]) Alive() bool {
	return d.upgrade() != nil
}

// Sleep suspends the caller for dur using the root's host timers. It
// returns the context's cause if ctx ends first, ErrUnmounted if the root
// is gone, and reactive.ErrPanicked if a panic happened while sleeping.
func (d *Deferred[D]) Sleep(ctx context.Context, dur time.Duration) error {
	r := d.upgrade()
	if r == nil {
		return ErrUnmounted
	}
	fired := make(chan struct{})
	stop, err := r.host.AfterFunc(dur, func() { close(fired) })
	if err != nil {
		return err
	}
	r = nil

	select {
	case <-fired:
	case <-ctx.Done():
		stop()
		return context.Cause(ctx)
	}
	if reactive.HasPanicked() {
		return reactive.ErrPanicked
	}
	if !d.Alive() {
		return ErrUnmounted
	}
	return nil
}
