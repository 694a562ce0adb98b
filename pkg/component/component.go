package component

import (
	"context"

	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/vdom"
)

// Component renders the root of a mounted tree.
type Component[D any] interface {
	Render(c *Ctx[D]) *vdom.VNode
}

// OnMounter is implemented by components that need a callback once the
// first render is in the DOM and before any hook has processed an update.
type OnMounter[D any] interface {
	OnMount(c *Ctx[D])
}

type funcComponent[D any] struct {
	render  func(c *Ctx[D]) *vdom.VNode
	onMount func(c *Ctx[D])
}

func (f funcComponent[D]) Render(c *Ctx[D]) *vdom.VNode { return f.render(c) }

func (f funcComponent[D]) OnMount(c *Ctx[D]) {
	if f.onMount != nil {
		f.onMount(c)
	}
}

// Fn creates a component from a render function.
func Fn[D any](render func(c *Ctx[D]) *vdom.VNode) Component[D] {
	return funcComponent[D]{render: render}
}

// FnWithMount creates a component from a render function and a mount
// callback.
func FnWithMount[D any](render func(c *Ctx[D]) *vdom.VNode, onMount func(c *Ctx[D])) Component[D] {
	return funcComponent[D]{render: render, onMount: onMount}
}

// Ctx is passed to render and mount callbacks.
type Ctx[D any] struct {
	rc   *reactive.RenderCtx
	root *Root[D]
}

// Data returns the root's data. Read its signals inside render callbacks;
// mutate them only in event handlers, mount callbacks and deferred updates.
func (c *Ctx[D]) Data() *D { return c.root.data }

// RenderCtx returns the reactive render context of the current render.
func (c *Ctx[D]) RenderCtx() *reactive.RenderCtx { return c.rc }

// Document returns the document the root is mounted in.
func (c *Ctx[D]) Document() *dom.Document { return c.root.doc }

// Deferred returns a weak handle for updating the root from async code.
func (c *Ctx[D]) Deferred() *Deferred[D] { return c.root.deferred() }

// Spawn runs task on its own goroutine. See Root.Spawn.
func (c *Ctx[D]) Spawn(task func(ctx context.Context, d *Deferred[D])) {
	c.root.Spawn(task)
}
