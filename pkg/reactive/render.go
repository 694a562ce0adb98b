package reactive

// Releaser is implemented by keep-alive values that hold a resource, such as
// a DOM event listener registration.
type Releaser interface {
	Release()
}

// ReleaseFunc adapts a function to Releaser.
type ReleaseFunc func()

// Release calls f.
func (f ReleaseFunc) Release() { f() }

// ReleaseAll releases every Releaser in items.
func ReleaseAll(items []any) {
	for _, it := range items {
		if r, ok := it.(Releaser); ok {
			r.Release()
		}
	}
}

// RenderingState collects what one render pass produced: values that must
// stay alive while the rendered DOM is current and the child hooks created
// by the pass. It is discarded when the pass ends.
type RenderingState struct {
	KeepAlive []any
	Hooks     []HookKey
}

// RenderCtx is handed to every render callback.
type RenderCtx struct {
	engine *Engine
	parent HookKey
	state  *RenderingState
}

// NewRenderCtx creates a render context for the hook parent. parent may be
// the zero key for a root render.
func NewRenderCtx(e *Engine, parent HookKey, state *RenderingState) *RenderCtx {
	if state == nil {
		state = &RenderingState{}
	}
	return &RenderCtx{engine: e, parent: parent, state: state}
}

// Engine returns the engine the render belongs to.
func (rc *RenderCtx) Engine() *Engine { return rc.engine }

// Parent returns the hook being rendered.
func (rc *RenderCtx) Parent() HookKey { return rc.parent }

// State returns the rendering state collected so far.
func (rc *RenderCtx) State() *RenderingState { return rc.state }

// KeepAlive retains v until the parent hook re-renders or is removed.
func (rc *RenderCtx) KeepAlive(v any) {
	rc.state.KeepAlive = append(rc.state.KeepAlive, v)
}

// AddChild records key as owned by the hook being rendered.
func (rc *RenderCtx) AddChild(key HookKey) {
	rc.state.Hooks = append(rc.state.Hooks, key)
}
