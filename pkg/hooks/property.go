package hooks

import (
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/vdom"
)

// AttrHook keeps one attribute of an element in sync with a callback.
type AttrHook struct {
	owned
	el   *dom.Node
	name string
	fn   func(rc *reactive.RenderCtx) (string, bool)

	value string
	set   bool
}

// CreateAttr binds the attribute name of el to fn. The attribute is removed
// while fn reports false.
func CreateAttr(rc *reactive.RenderCtx, el *dom.Node, name string, fn func(rc *reactive.RenderCtx) (string, bool)) reactive.HookKey {
	return install(rc, &AttrHook{el: el, name: name, fn: fn})
}

func (h *AttrHook) init(e *reactive.Engine, self reactive.HookKey) {
	h.Update(e, self)
}

func (h *AttrHook) Update(e *reactive.Engine, self reactive.HookKey) reactive.UpdateResult {
	rc := h.begin(e, self)
	var (
		v  string
		ok bool
	)
	e.Track(self, func() { v, ok = h.fn(rc) })

	switch {
	case ok && (!h.set || v != h.value):
		h.el.SetAttribute(h.name, v)
	case !ok && h.set:
		h.el.RemoveAttribute(h.name)
	}
	h.value, h.set = v, ok
	return h.finish(rc)
}

// ClassHook keeps one class of an element in sync with a callback. A class
// that was already on the element is never removed by the hook.
type ClassHook struct {
	owned
	el    *dom.Node
	fn    func(rc *reactive.RenderCtx) string
	prev  string
	added bool
}

// CreateClass binds one class of el to fn. "" means no class.
func CreateClass(rc *reactive.RenderCtx, el *dom.Node, fn func(rc *reactive.RenderCtx) string) reactive.HookKey {
	return install(rc, &ClassHook{el: el, fn: fn})
}

func (h *ClassHook) init(e *reactive.Engine, self reactive.HookKey) {
	h.Update(e, self)
}

func (h *ClassHook) Update(e *reactive.Engine, self reactive.HookKey) reactive.UpdateResult {
	rc := h.begin(e, self)
	var next string
	e.Track(self, func() { next = h.fn(rc) })

	if next != h.prev {
		cl := h.el.ClassList()
		switch {
		case next != "" && cl.Contains(next):
			if h.added {
				cl.Remove(h.prev)
			}
			h.added = false
		case h.added && next != "":
			if !cl.Replace(h.prev, next) {
				cl.Add(next)
			}
		case h.added:
			cl.Remove(h.prev)
			h.added = false
		case next != "":
			cl.Add(next)
			h.added = true
		}
		h.prev = next
	}
	return h.finish(rc)
}

// CSSVarHook keeps a CSS custom property of an element in sync with a
// callback.
type CSSVarHook struct {
	owned
	el   *dom.Node
	prop string
	fn   func(rc *reactive.RenderCtx) vdom.CSSValue
}

// CreateCSSVar binds the custom property --name of el to fn. A nil value
// removes the property.
func CreateCSSVar(rc *reactive.RenderCtx, el *dom.Node, name string, fn func(rc *reactive.RenderCtx) vdom.CSSValue) reactive.HookKey {
	return install(rc, &CSSVarHook{el: el, prop: "--" + name, fn: fn})
}

func (h *CSSVarHook) init(e *reactive.Engine, self reactive.HookKey) {
	h.Update(e, self)
}

func (h *CSSVarHook) Update(e *reactive.Engine, self reactive.HookKey) reactive.UpdateResult {
	rc := h.begin(e, self)
	var v vdom.CSSValue
	e.Track(self, func() { v = h.fn(rc) })

	if v == nil {
		h.el.Style().RemoveProperty(h.prop)
	} else {
		h.el.Style().SetProperty(h.prop, v.CSS())
	}
	return h.finish(rc)
}
