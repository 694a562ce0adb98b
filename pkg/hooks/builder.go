package hooks

import (
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/vdom"
)

// Build turns vn into DOM nodes. Fragments are flattened, so the result may
// hold any number of nodes. Hooks created on the way become children of rc.
func Build(rc *reactive.RenderCtx, doc *dom.Document, vn *vdom.VNode) []*dom.Node {
	if vn == nil {
		return nil
	}
	switch vn.Kind {
	case vdom.KindText:
		return []*dom.Node{doc.CreateTextNode(vn.Text)}
	case vdom.KindFragment:
		var out []*dom.Node
		for _, c := range vn.Children {
			out = append(out, Build(rc, doc, c)...)
		}
		return out
	case vdom.KindDynamic:
		_, n := CreateNode(rc, doc, vn.Render)
		return []*dom.Node{n}
	default:
		return []*dom.Node{buildElement(rc, doc, vn)}
	}
}

// buildRoot builds exactly one node: an empty text node for nil and a
// display:contents wrapper for fragments.
func buildRoot(rc *reactive.RenderCtx, doc *dom.Document, vn *vdom.VNode) *dom.Node {
	switch {
	case vn == nil:
		return doc.CreateTextNode("")
	case vn.Kind == vdom.KindFragment:
		wrap := doc.CreateElement("span")
		wrap.SetAttribute("style", "display: contents")
		appendAll(rc, wrap, Build(rc, doc, vn))
		return wrap
	default:
		return Build(rc, doc, vn)[0]
	}
}

func buildElement(rc *reactive.RenderCtx, doc *dom.Document, vn *vdom.VNode) *dom.Node {
	el := doc.CreateElement(vn.Tag)
	for _, a := range vn.Attrs {
		el.SetAttribute(a.Key, a.Value)
	}

	for _, b := range vn.Bindings {
		switch b.Kind {
		case vdom.BindAttr:
			CreateAttr(rc, el, b.Name, b.Attr)
		case vdom.BindClass:
			CreateClass(rc, el, b.Class)
		case vdom.BindCSSVar:
			CreateCSSVar(rc, el, b.Name, b.CSS)
		}
	}

	for _, h := range vn.Handlers {
		listen(rc, el, h)
	}

	for _, c := range vn.Children {
		appendAll(rc, el, Build(rc, doc, c))
	}
	return el
}

// listen registers a DOM listener that runs the handler as one tick of the
// render's engine. The registration lives as long as the render that made it.
func listen(rc *reactive.RenderCtx, el *dom.Node, h vdom.EventHandler) {
	e := rc.Engine()
	handler := h.Handler
	remove := el.AddEventListener(h.Event, func(ev *dom.Event) {
		e.Run(func() { handler(ev) })
	})
	rc.KeepAlive(reactive.ReleaseFunc(remove))
}

func appendAll(rc *reactive.RenderCtx, parent *dom.Node, nodes []*dom.Node) {
	for _, n := range nodes {
		if err := parent.AppendChild(n); err != nil {
			reactive.LogOrPanic(rc.Engine().Logger(), "R052", "parent", parent.HID(), "child", n.HID(), "error", err)
		}
	}
}
