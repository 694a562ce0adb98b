// Package component mounts reactive roots into the DOM and lets async code
// update them later.
//
// A Root owns the user data (a struct of signals), the engine with its hook
// store and a weak reference to itself. Deferred handles hold only that weak
// reference, so a pending task never keeps an unmounted component alive, and
// every update through them is a full tick on the root's host.
//
//	type counter struct{ n *reactive.Signal[int] }
//
//	h, err := component.Mount(counter{reactive.NewSignal(0)},
//	    component.Fn(func(c *component.Ctx[counter]) *vdom.VNode {
//	        return vdom.DynText(func() string { return strconv.Itoa(c.Data().n.Get()) })
//	    }),
//	    doc.Body())
package component
