package dom

import (
	"errors"
	"strings"
)

var (
	// ErrDetached is returned when a node that must have a parent has none.
	ErrDetached = errors.New("dom: node has no parent")

	// ErrNotChild is returned when the reference node is not a child.
	ErrNotChild = errors.New("dom: node is not a child of this node")

	// ErrHierarchy is returned when an operation would put a node inside
	// itself or give a text node children.
	ErrHierarchy = errors.New("dom: hierarchy request error")
)

// NodeType distinguishes elements from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// Attr is a single attribute of an element.
type Attr struct {
	Name  string
	Value string
}

// Node is an element or text node.
type Node struct {
	doc  *Document
	typ  NodeType
	tag  string
	text string
	hid  string
	root bool

	attrs     []Attr
	style     []Attr
	parent    *Node
	children  []*Node
	listeners map[string][]*listener
}

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag name, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// HID returns the node's hydration id.
func (n *Node) HID() string { return n.hid }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Data returns the text of a text node.
func (n *Node) Data() string { return n.text }

// IsConnected reports whether n is inside the document body.
func (n *Node) IsConnected() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.root {
			return true
		}
	}
	return false
}

func (n *Node) emit(p Patch) {
	if n.doc != nil && n.IsConnected() {
		n.doc.emit(p)
	}
}

// ---------------------------------------------------------------------------
// Attributes
// ---------------------------------------------------------------------------

// GetAttribute returns the value of the named attribute.
func (n *Node) GetAttribute(name string) (string, bool) {
	if name == "style" {
		if len(n.style) == 0 {
			return "", false
		}
		return n.styleText(), true
	}
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the named attribute is set.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// Attributes returns the attributes in insertion order. The style attribute
// is derived from the style properties.
func (n *Node) Attributes() []Attr {
	out := append([]Attr(nil), n.attrs...)
	if len(n.style) > 0 {
		out = append(out, Attr{Name: "style", Value: n.styleText()})
	}
	return out
}

// SetAttribute sets an attribute. Setting "style" replaces every style
// property.
func (n *Node) SetAttribute(name, value string) {
	if n.typ != ElementNode {
		return
	}
	if name == "style" {
		n.style = parseStyle(value)
		n.emit(Patch{Op: PatchSetAttr, HID: n.hid, Key: name, Value: n.styleText(), Target: n})
		return
	}
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			n.emit(Patch{Op: PatchSetAttr, HID: n.hid, Key: name, Value: value, Target: n})
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
	n.emit(Patch{Op: PatchSetAttr, HID: n.hid, Key: name, Value: value, Target: n})
}

// RemoveAttribute removes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	if name == "style" {
		if len(n.style) > 0 {
			n.style = nil
			n.emit(Patch{Op: PatchRemoveAttr, HID: n.hid, Key: name, Target: n})
		}
		return
	}
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			n.emit(Patch{Op: PatchRemoveAttr, HID: n.hid, Key: name, Target: n})
			return
		}
	}
}

// ---------------------------------------------------------------------------
// Tree mutation
// ---------------------------------------------------------------------------

// AppendChild appends child, detaching it from its previous parent.
func (n *Node) AppendChild(child *Node) error {
	if n.typ != ElementNode || child.contains(n) || child.root {
		return ErrHierarchy
	}
	if child.parent != nil {
		_ = child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	n.emit(Patch{Op: PatchInsertNode, HID: child.hid, ParentID: n.hid, HTML: child.OuterHTML(), Target: child})
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	i := n.indexOf(child)
	if i < 0 {
		return ErrNotChild
	}
	n.emit(Patch{Op: PatchRemoveNode, HID: child.hid, ParentID: n.hid, Target: child})
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	return nil
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		_ = n.parent.RemoveChild(n)
	}
}

// ReplaceChild puts newChild where oldChild is.
func (n *Node) ReplaceChild(newChild, oldChild *Node) error {
	i := n.indexOf(oldChild)
	if i < 0 {
		return ErrNotChild
	}
	if newChild == oldChild {
		return nil
	}
	if newChild.contains(n) || newChild.root {
		return ErrHierarchy
	}
	if newChild.parent != nil {
		_ = newChild.parent.RemoveChild(newChild)
		i = n.indexOf(oldChild)
	}
	n.children[i] = newChild
	newChild.parent = n
	oldChild.parent = nil
	n.emit(Patch{Op: PatchReplaceNode, HID: oldChild.hid, ParentID: n.hid, HTML: newChild.OuterHTML(), Target: oldChild})
	return nil
}

// ReplaceWith replaces n in its parent by other.
func (n *Node) ReplaceWith(other *Node) error {
	if n.parent == nil {
		return ErrDetached
	}
	return n.parent.ReplaceChild(other, n)
}

// SetTextContent sets the text of a text node, or replaces every child of an
// element with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.typ == TextNode {
		n.text = text
		n.emit(Patch{Op: PatchSetText, HID: n.hid, Value: text, Target: n})
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	if text != "" {
		t := n.doc.CreateTextNode(text)
		t.parent = n
		n.children = []*Node{t}
	}
	n.emit(Patch{Op: PatchSetText, HID: n.hid, Value: text, Target: n})
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.text
	}
	var b strings.Builder
	n.walk(func(c *Node) bool {
		if c.typ == TextNode {
			b.WriteString(c.text)
		}
		return true
	})
	return b.String()
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// contains reports whether other is n or one of its descendants.
func (n *Node) contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// walk visits n and its descendants depth-first until fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// OuterHTML serializes n. Elements carry their HID in data-hid.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for _, c := range n.children {
		c.writeHTML(&b)
	}
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	if n.typ == TextNode {
		b.WriteString(escapeHTML(n.text))
		return
	}
	b.WriteByte('<')
	b.WriteString(n.tag)
	b.WriteString(` data-hid="`)
	b.WriteString(n.hid)
	b.WriteByte('"')
	for _, a := range n.Attributes() {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if voidElements[n.tag] {
		return
	}
	for _, c := range n.children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}
