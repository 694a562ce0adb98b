package hooks

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/vdom"
)

func ptr(n int) *int { return &n }

func TestGuardSomeRerendersOnlyInnerHook(t *testing.T) {
	e, doc := newEnv(t)
	val := reactive.NewSignal(ptr(0))

	outer := 0
	h := mount(t, e, doc, func(rc *reactive.RenderCtx) *vdom.VNode {
		outer++
		get, ok := reactive.GuardSome(rc, val)
		if !ok {
			return vdom.Text("none")
		}
		return vdom.Span(vdom.DynText(func() string { return strconv.Itoa(get()) }))
	})
	span := h.Node()
	if got := doc.Body().TextContent(); got != "0" {
		t.Fatalf("initial text = %q, want 0", got)
	}

	e.Run(func() { val.Set(ptr(1)) })
	if outer != 1 {
		t.Errorf("outer rendered %d times, want 1", outer)
	}
	if h.Node() != span {
		t.Error("outer node was replaced for a change inside the guard")
	}
	if got := doc.Body().TextContent(); got != "1" {
		t.Errorf("text = %q, want 1", got)
	}

	e.Run(func() { val.Set(nil) })
	if outer != 2 {
		t.Errorf("outer rendered %d times after nil, want 2", outer)
	}
	if got := doc.Body().TextContent(); got != "none" {
		t.Errorf("text = %q, want none", got)
	}

	e.Run(func() { val.Set(ptr(2)) })
	if outer != 3 {
		t.Errorf("outer rendered %d times after value, want 3", outer)
	}
	if got := doc.Body().TextContent(); got != "2" {
		t.Errorf("text = %q, want 2", got)
	}
}

func TestGuardAccessorOutsideBranchIsReported(t *testing.T) {
	reactive.ResetPanicked()
	t.Cleanup(reactive.ResetPanicked)
	var buf bytes.Buffer
	e := reactive.NewEngine(reactive.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	doc := dom.NewDocument()
	val := reactive.NewSignal(ptr(5))

	var get func() int
	mount(t, e, doc, func(rc *reactive.RenderCtx) *vdom.VNode {
		g, ok := reactive.GuardSome(rc, val)
		if ok {
			get = g
		}
		return vdom.Text("x")
	})
	if get == nil {
		t.Fatal("guard rejected a non-nil value")
	}

	val.Set(nil)
	if got := get(); got != 0 {
		t.Errorf("get() = %d, want zero value", got)
	}
	if !strings.Contains(buf.String(), "R006") {
		t.Errorf("expected R006 log, got %q", buf.String())
	}
}
