package vdom

import (
	"strings"

	"github.com/vango-dev/cells/pkg/reactive"
)

func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the inline style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Disabled sets the boolean disabled attribute.
func Disabled() Attr { return attr("disabled", "") }

// AttrFunc binds an attribute to a callback. The attribute is removed while
// fn reports false.
func AttrFunc(name string, fn func(rc *reactive.RenderCtx) (string, bool)) Binding {
	return Binding{Kind: BindAttr, Name: name, Attr: fn}
}

// ClassFunc binds one class to a callback. The previous class is swapped for
// the new one on each change; "" means no class.
func ClassFunc(fn func(rc *reactive.RenderCtx) string) Binding {
	return Binding{Kind: BindClass, Class: fn}
}

// CSSVar binds the custom property --name to a callback. A nil value removes
// the property.
func CSSVar(name string, fn func(rc *reactive.RenderCtx) CSSValue) Binding {
	return Binding{Kind: BindCSSVar, Name: strings.TrimPrefix(name, "--"), CSS: fn}
}
