package component

import (
	"context"

	"github.com/vango-dev/cells/pkg/dom"
)

// Handle keeps a mounted root alive. Dropping every reference to the handle
// and to the DOM it rendered lets the root be collected; pending deferred
// updates then report false.
type Handle[D any] struct {
	root *Root[D]
}

// Root returns the mounted root.
func (h *Handle[D]) Root() *Root[D] { return h.root }

// Node returns the DOM node currently rendered by the root.
func (h *Handle[D]) Node() *dom.Node { return h.root.hook.Node() }

// Deferred returns a weak update handle.
func (h *Handle[D]) Deferred() *Deferred[D] { return h.root.deferred() }

// Do runs fn against the data as one tick on the host. It reports whether
// the tick ran.
func (h *Handle[D]) Do(fn func(d *D)) bool {
	return h.Deferred().Update(fn)
}

// Dispatch delivers a DOM event to the node hid on the host. Listeners run
// as ticks. It reports whether the node was found.
func (h *Handle[D]) Dispatch(hid, typ, value string) bool {
	r := h.root
	if !r.mounted.Load() {
		return false
	}
	found := false
	if err := r.host.Call(context.Background(), func() {
		found = r.doc.Dispatch(hid, typ, value)
	}); err != nil {
		r.logger.Error("dispatch failed", "hid", hid, "type", typ, "error", err)
		return false
	}
	return found
}

// HTML serializes the rendered tree on the host.
func (h *Handle[D]) HTML() string {
	var out string
	_ = h.root.host.Call(context.Background(), func() {
		out = h.root.hook.Node().OuterHTML()
	})
	return out
}

// Wait blocks until every spawned task has returned.
func (h *Handle[D]) Wait() {
	h.root.tasks.Wait()
}

// Unmount removes every hook of the root, detaches its DOM and cancels its
// tasks. Do not call it from inside an event handler of the same root.
func (h *Handle[D]) Unmount() {
	h.root.unmount()
}
