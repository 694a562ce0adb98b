package hooks

import "github.com/vango-dev/cells/pkg/reactive"

// owned is the per-hook rendering state shared by every hook kind.
type owned struct {
	keepAlive []any
	children  []reactive.HookKey
}

// begin releases what the previous render kept alive and opens a new
// render context for self.
func (o *owned) begin(e *reactive.Engine, self reactive.HookKey) *reactive.RenderCtx {
	reactive.ReleaseAll(o.keepAlive)
	o.keepAlive = nil
	return reactive.NewRenderCtx(e, self, nil)
}

// finish stores what the render produced and returns the previous children
// for removal.
func (o *owned) finish(rc *reactive.RenderCtx) reactive.UpdateResult {
	old := o.children
	o.keepAlive = rc.State().KeepAlive
	o.children = rc.State().Hooks
	return reactive.DropHooks(old)
}

// Teardown releases everything and hands the children to the store.
func (o *owned) Teardown() []reactive.HookKey {
	reactive.ReleaseAll(o.keepAlive)
	o.keepAlive = nil
	children := o.children
	o.children = nil
	return children
}

// Children returns the hooks created by the last render.
func (o *owned) Children() []reactive.HookKey {
	return o.children
}

// initializer is a hook that renders itself once before installation.
type initializer interface {
	reactive.Hook
	init(e *reactive.Engine, self reactive.HookKey)
}

// install runs the reserve, render, install sequence and records the new
// hook as a child of the render in progress.
func install(rc *reactive.RenderCtx, h initializer) reactive.HookKey {
	e := rc.Engine()
	key := e.Store().Reserve()
	h.init(e, key)
	e.Store().Install(key, h)
	rc.AddChild(key)
	return key
}
