package hooks

import (
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/vdom"
)

// NodeHook owns one DOM node rendered from a callback.
type NodeHook struct {
	owned
	doc    *dom.Document
	render vdom.RenderFunc
	node   *dom.Node
	key    reactive.HookKey
}

// NewNodeHook creates, renders and installs a node hook as a child of rc.
func NewNodeHook(rc *reactive.RenderCtx, doc *dom.Document, render vdom.RenderFunc) *NodeHook {
	h := &NodeHook{doc: doc, render: render}
	install(rc, h)
	return h
}

// CreateNode binds a DOM location to render and returns the hook key and
// the node to insert. The node is replaced in its parent on every update.
func CreateNode(rc *reactive.RenderCtx, doc *dom.Document, render vdom.RenderFunc) (reactive.HookKey, *dom.Node) {
	h := NewNodeHook(rc, doc, render)
	return h.key, h.node
}

// Key returns the hook key.
func (h *NodeHook) Key() reactive.HookKey { return h.key }

// Node returns the node currently owned by the hook.
func (h *NodeHook) Node() *dom.Node { return h.node }

func (h *NodeHook) init(e *reactive.Engine, self reactive.HookKey) {
	h.key = self
	rc := h.begin(e, self)
	vn := h.run(e, self, rc)
	h.node = buildRoot(rc, h.doc, vn)
	h.finish(rc)
}

// run evaluates the callback under tracking. A dynamic child at the root is
// rendered inline so the hook keeps owning exactly one node.
func (h *NodeHook) run(e *reactive.Engine, self reactive.HookKey, rc *reactive.RenderCtx) *vdom.VNode {
	var vn *vdom.VNode
	e.Track(self, func() {
		vn = h.render(rc)
		for vn != nil && vn.Kind == vdom.KindDynamic {
			vn = vn.Render(rc)
		}
	})
	return vn
}

// Update re-renders and swaps the owned node.
func (h *NodeHook) Update(e *reactive.Engine, self reactive.HookKey) reactive.UpdateResult {
	rc := h.begin(e, self)
	vn := h.run(e, self, rc)

	if h.node.Type() == dom.TextNode && (vn == nil || vn.Kind == vdom.KindText) {
		text := ""
		if vn != nil {
			text = vn.Text
		}
		if h.node.Data() != text {
			h.node.SetTextContent(text)
		}
		return h.finish(rc)
	}

	node := buildRoot(rc, h.doc, vn)
	if err := h.node.ReplaceWith(node); err != nil {
		reactive.LogOrPanic(e.Logger(), "R050", "hook", self.String(), "node", h.node.HID(), "error", err)
	}
	h.node = node
	return h.finish(rc)
}
