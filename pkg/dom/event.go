package dom

// Event is a DOM event travelling from its target up to the body.
type Event struct {
	Type          string
	Value         string
	Target        *Node
	CurrentTarget *Node

	stopped bool
}

// StopPropagation prevents the event from reaching ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// EventHandler handles an event.
type EventHandler func(*Event)

type listener struct {
	fn      EventHandler
	removed bool
}

// AddEventListener registers fn for events of type typ on n.
// The returned function removes the listener.
func (n *Node) AddEventListener(typ string, fn EventHandler) (remove func()) {
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		ls := n.listeners[typ]
		for i, x := range ls {
			if x == l {
				n.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// DispatchEvent runs the listeners of n and its ancestors, innermost first.
func (n *Node) DispatchEvent(ev *Event) {
	ev.Target = n
	for cur := n; cur != nil && !ev.stopped; cur = cur.parent {
		ls := append([]*listener(nil), cur.listeners[ev.Type]...)
		ev.CurrentTarget = cur
		for _, l := range ls {
			if !l.removed {
				l.fn(ev)
			}
		}
	}
}
