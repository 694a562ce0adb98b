package vdom

import (
	"testing"

	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
)

func TestCreateElement(t *testing.T) {
	clicked := false
	node := Div(
		ID("app"),
		nil,
		[]Attr{Class("a", "b"), {}},
		OnClick(func(*dom.Event) { clicked = true }),
		EventHandler{Event: "noop"},
		"hello",
		Span("x"),
		[]*VNode{nil, P()},
		AttrFunc("title", func(*reactive.RenderCtx) (string, bool) { return "t", true }),
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("node = %+v", node)
	}
	if v, _ := node.Attr("class"); v != "a b" {
		t.Errorf("class = %q", v)
	}
	if len(node.Attrs) != 2 {
		t.Errorf("Attrs = %v", node.Attrs)
	}
	if len(node.Children) != 3 || node.Children[0].Kind != KindText {
		t.Errorf("Children = %v", node.Children)
	}
	if len(node.Handlers) != 1 || !node.IsInteractive() {
		t.Errorf("Handlers = %v", node.Handlers)
	}
	node.Handlers[0].Handler(nil)
	if !clicked {
		t.Error("handler not kept")
	}
	if len(node.Bindings) != 1 || node.Bindings[0].Kind != BindAttr {
		t.Errorf("Bindings = %v", node.Bindings)
	}
}

func TestVoidElementDropsChildren(t *testing.T) {
	if n := Input(Type("text"), "ignored"); len(n.Children) != 0 {
		t.Errorf("void element kept children: %v", n.Children)
	}
	if !IsVoidElement("br") || IsVoidElement("div") {
		t.Error("IsVoidElement wrong")
	}
}

func TestFragmentAndConditionals(t *testing.T) {
	f := Fragment("a", nil, Text("b"), []*VNode{Text("c")})
	if f.Kind != KindFragment || len(f.Children) != 3 {
		t.Errorf("Fragment = %+v", f)
	}
	if If(false, Text("x")) != nil || If(true, Text("x")) == nil {
		t.Error("If wrong")
	}
	if IfElse(false, Text("a"), Text("b")).Text != "b" {
		t.Error("IfElse wrong")
	}
	called := false
	When(false, func() *VNode { called = true; return nil })
	if called {
		t.Error("When evaluated a false branch")
	}
	items := Range([]string{"x", "y"}, func(i int, s string) *VNode { return Li(s) })
	if len(items) != 2 {
		t.Errorf("Range = %v", items)
	}
}

func TestDynamic(t *testing.T) {
	d := DynText(func() string { return "t" })
	if d.Kind != KindDynamic || d.Render(nil).Text != "t" {
		t.Errorf("DynText = %+v", d)
	}
}

func TestCSSValues(t *testing.T) {
	tests := []struct {
		v    CSSValue
		want string
	}{
		{Px(12), "12px"},
		{Px(1.5), "1.5px"},
		{Rem(2), "2rem"},
		{Percent(50), "50%"},
		{RGB{255, 0, 10}, "rgb(255, 0, 10)"},
		{CSSRaw("calc(1px + 2em)"), "calc(1px + 2em)"},
	}
	for _, tt := range tests {
		if got := tt.v.CSS(); got != tt.want {
			t.Errorf("CSS() = %q, want %q", got, tt.want)
		}
	}
	if b := CSSVar("--accent", nil); b.Name != "accent" || b.Kind != BindCSSVar {
		t.Errorf("CSSVar = %+v", b)
	}
}

func TestVKindString(t *testing.T) {
	if KindDynamic.String() != "Dynamic" || VKind(99).String() != "Unknown" {
		t.Error("unexpected VKind strings")
	}
}
