package reactive

import (
	"sync"

	"github.com/vango-dev/cells/internal/goid"
)

// frame is the hook currently being rendered on a goroutine.
type frame struct {
	engine *Engine
	key    HookKey
}

func (f frame) active() bool {
	return f.engine != nil && !f.key.IsZero()
}

// trackingContext holds the reactive state for one goroutine.
// Render is strictly sequential, so at most one frame is current.
type trackingContext struct {
	current frame
}

// trackingContexts stores per-goroutine tracking contexts keyed by goroutine id.
var trackingContexts sync.Map

func getTrackingContext() *trackingContext {
	gid := goid.Get()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// currentFrame returns the hook being rendered on this goroutine, if any.
func currentFrame() frame {
	if ctx, ok := trackingContexts.Load(goid.Get()); ok {
		return ctx.(*trackingContext).current
	}
	return frame{}
}

// withFrame runs fn with f as the current frame and restores the previous
// one afterwards, also when fn panics.
func withFrame(f frame, fn func()) {
	ctx := getTrackingContext()
	old := ctx.current
	ctx.current = f
	defer func() {
		ctx.current = old
		if !old.active() {
			trackingContexts.Delete(goid.Get())
		}
	}()
	fn()
}

// Untracked runs fn with no hook current. Signals read inside fn do not
// subscribe anything, and signals written inside fn mark their dependents
// dirty.
func Untracked(fn func()) {
	withFrame(frame{}, fn)
}

// Tracking reports whether a hook is current on the calling goroutine.
func Tracking() bool {
	return currentFrame().active()
}
