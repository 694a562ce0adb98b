// Package vdom describes elements for the reactive builder.
//
// A VNode is a plain description: static tag, attributes and children, plus
// reactive parts that the builder turns into hooks. Dynamic children become
// node hooks, AttrFunc/ClassFunc/CSSVar become attribute, class and CSS
// variable hooks, and event handlers become DOM listeners that run as ticks.
//
//	Div(Class("counter"),
//	    Dynamic(func(rc *reactive.RenderCtx) *VNode {
//	        return Textf("%d", count.Get())
//	    }),
//	    Button(OnClick(func(*dom.Event) { count.Update(inc) }), "+"),
//	)
//
// Nothing here is diffed. A dynamic child is replaced wholesale when any
// signal it read changes.
package vdom
