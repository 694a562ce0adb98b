package vdom

import (
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindDynamic               // Reactive child rendered by a node hook
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindDynamic:
		return "Dynamic"
	default:
		return "Unknown"
	}
}

// RenderFunc renders a reactive child. Every signal it reads subscribes the
// node hook that owns the child.
type RenderFunc func(rc *reactive.RenderCtx) *VNode

// VNode describes an element, a text node, a fragment or a dynamic child.
type VNode struct {
	Kind     VKind
	Tag      string
	Attrs    []Attr
	Bindings []Binding
	Handlers []EventHandler
	Children []*VNode
	Text     string
	Render   RenderFunc
}

// Attr is a static attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// BindingKind selects the hook a Binding becomes.
type BindingKind uint8

const (
	BindAttr BindingKind = iota
	BindClass
	BindCSSVar
)

// Binding is a reactive attribute, class or CSS custom property.
type Binding struct {
	Kind  BindingKind
	Name  string
	Attr  func(rc *reactive.RenderCtx) (string, bool)
	Class func(rc *reactive.RenderCtx) string
	CSS   func(rc *reactive.RenderCtx) CSSValue
}

// EventHandler attaches a handler for a DOM event type.
type EventHandler struct {
	Event   string
	Handler func(*dom.Event)
}

// Attr returns the value of a static attribute.
func (v *VNode) Attr(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, a := range v.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// IsInteractive returns true if the node has event handlers.
func (v *VNode) IsInteractive() bool {
	return v != nil && v.Kind == KindElement && len(v.Handlers) > 0
}
