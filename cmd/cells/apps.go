package main

import (
	"context"
	"strconv"
	"time"

	"github.com/vango-dev/cells/pkg/component"
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/vdom"
)

// counterApp is a button and the number of times it was clicked.
type counterApp struct {
	count *reactive.Signal[int]
}

func newCounterApp() counterApp {
	return counterApp{count: reactive.NewSignal(0)}
}

func counterView(c *component.Ctx[counterApp]) *vdom.VNode {
	count := c.Data().count
	return vdom.Div(vdom.ID("counter"),
		vdom.Button(vdom.ID("inc"), vdom.Text("+1"), vdom.OnClick(func(*dom.Event) {
			count.Update(func(n int) int { return n + 1 })
		})),
		vdom.Span(vdom.ClassFunc(func(*reactive.RenderCtx) string {
			if count.Get()%2 == 0 {
				return "even"
			}
			return "odd"
		}), vdom.DynText(func() string { return strconv.Itoa(count.Get()) })),
	)
}

// toggleApp renders one of two branches. The hidden branch's hooks are
// dropped when it is switched out.
type toggleApp struct {
	show  *reactive.Signal[bool]
	count *reactive.Signal[int]
}

func newToggleApp() toggleApp {
	return toggleApp{show: reactive.NewSignal(true), count: reactive.NewSignal(0)}
}

func toggleView(c *component.Ctx[toggleApp]) *vdom.VNode {
	d := c.Data()
	return vdom.Div(vdom.ID("toggle"),
		vdom.Button(vdom.ID("flip"), vdom.Text("toggle"), vdom.OnClick(func(*dom.Event) {
			d.show.Update(func(b bool) bool { return !b })
		})),
		vdom.Button(vdom.ID("inc"), vdom.Text("+1"), vdom.OnClick(func(*dom.Event) {
			d.count.Update(func(n int) int { return n + 1 })
		})),
		vdom.Dynamic(func(*reactive.RenderCtx) *vdom.VNode {
			if !d.show.Get() {
				return vdom.Em(vdom.Text("hidden"))
			}
			return vdom.Strong(vdom.DynText(func() string { return "count " + strconv.Itoa(d.count.Get()) }))
		}),
	)
}

// delayedApp increments its counter a fixed delay after each click.
type delayedApp struct {
	count *reactive.Signal[int]
	delay time.Duration
}

func newDelayedApp(delay time.Duration) delayedApp {
	return delayedApp{count: reactive.NewSignal(0), delay: delay}
}

func delayedView(c *component.Ctx[delayedApp]) *vdom.VNode {
	d := c.Data()
	return vdom.Div(vdom.ID("delayed"),
		vdom.Button(vdom.ID("inc"), vdom.Text("+1 later"), vdom.OnClick(func(*dom.Event) {
			delay := d.delay
			c.Spawn(func(ctx context.Context, def *component.Deferred[delayedApp]) {
				if err := def.Sleep(ctx, delay); err != nil {
					return
				}
				def.Update(func(data *delayedApp) {
					data.count.Update(func(n int) int { return n + 1 })
				})
			})
		})),
		vdom.DynText(func() string { return strconv.Itoa(d.count.Get()) }),
	)
}

// findByID returns the first element under n whose id attribute is id.
func findByID(n *dom.Node, id string) *dom.Node {
	if v, ok := n.GetAttribute("id"); ok && v == id {
		return n
	}
	for _, c := range n.Children() {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
