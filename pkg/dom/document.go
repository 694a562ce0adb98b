// Package dom is a small in-process DOM: the concrete tree that reactive
// hooks patch.
//
// Every node gets a hydration id (HID). Mutations of nodes connected to the
// document body are recorded as Patches and delivered to the sinks
// registered with OnPatch, which is how the live bridge mirrors the tree
// into a browser.
//
// A Document is not safe for concurrent use. Mutate it from the host
// goroutine that runs the engine's ticks.
package dom

import (
	"slices"
	"strconv"
	"sync"
)

// Document owns a body element and the patch journal.
type Document struct {
	nextHID uint64
	body    *Node

	sinkMu   sync.Mutex
	sinks    map[int]PatchSink
	nextSink int
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.CreateElement("body")
	d.body.root = true
	return d
}

// Body returns the body element.
func (d *Document) Body() *Node {
	return d.body
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{doc: d, typ: ElementNode, tag: tag, hid: d.newHID()}
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *Node {
	return &Node{doc: d, typ: TextNode, text: text, hid: d.newHID()}
}

func (d *Document) newHID() string {
	d.nextHID++
	return "h" + strconv.FormatUint(d.nextHID, 10)
}

// OnPatch registers a sink for patches of connected nodes.
// The returned function unregisters it.
func (d *Document) OnPatch(sink PatchSink) (remove func()) {
	d.sinkMu.Lock()
	defer d.sinkMu.Unlock()
	if d.sinks == nil {
		d.sinks = make(map[int]PatchSink)
	}
	id := d.nextSink
	d.nextSink++
	d.sinks[id] = sink
	return func() {
		d.sinkMu.Lock()
		delete(d.sinks, id)
		d.sinkMu.Unlock()
	}
}

func (d *Document) emit(p Patch) {
	d.sinkMu.Lock()
	if len(d.sinks) == 0 {
		d.sinkMu.Unlock()
		return
	}
	ids := make([]int, 0, len(d.sinks))
	for id := range d.sinks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	sinks := make([]PatchSink, 0, len(ids))
	for _, id := range ids {
		sinks = append(sinks, d.sinks[id])
	}
	d.sinkMu.Unlock()

	for _, s := range sinks {
		s(p)
	}
}

// FindByHID returns the connected node with the given hydration id.
func (d *Document) FindByHID(hid string) *Node {
	var found *Node
	d.body.walk(func(n *Node) bool {
		if n.hid == hid {
			found = n
			return false
		}
		return true
	})
	return found
}

// Dispatch fires an event of type typ at the connected node hid. The event
// bubbles to the body unless a listener stops it. It reports whether the
// node was found.
func (d *Document) Dispatch(hid, typ, value string) bool {
	target := d.FindByHID(hid)
	if target == nil {
		return false
	}
	target.DispatchEvent(&Event{Type: typ, Value: value})
	return true
}

