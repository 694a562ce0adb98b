package dom

import "strings"

// ClassList edits the class attribute of an element.
type ClassList struct {
	n *Node
}

// ClassList returns the class list of n.
func (n *Node) ClassList() ClassList {
	return ClassList{n: n}
}

func (c ClassList) names() []string {
	v, _ := c.n.GetAttribute("class")
	return strings.Fields(v)
}

func (c ClassList) set(names []string) {
	if len(names) == 0 {
		c.n.RemoveAttribute("class")
		return
	}
	c.n.SetAttribute("class", strings.Join(names, " "))
}

// Contains reports whether name is in the list.
func (c ClassList) Contains(name string) bool {
	for _, x := range c.names() {
		if x == name {
			return true
		}
	}
	return false
}

// Add appends names that are not present yet.
func (c ClassList) Add(names ...string) {
	cur := c.names()
	changed := false
	for _, name := range names {
		if name == "" || contains(cur, name) {
			continue
		}
		cur = append(cur, name)
		changed = true
	}
	if changed {
		c.set(cur)
	}
}

// Remove removes names from the list.
func (c ClassList) Remove(names ...string) {
	cur := c.names()
	out := cur[:0]
	for _, x := range cur {
		if !contains(names, x) {
			out = append(out, x)
		}
	}
	if len(out) != len(c.names()) {
		c.set(out)
	}
}

// Replace swaps oldName for newName in place. It reports whether oldName
// was present.
func (c ClassList) Replace(oldName, newName string) bool {
	cur := c.names()
	for i, x := range cur {
		if x == oldName {
			cur[i] = newName
			c.set(cur)
			return true
		}
	}
	return false
}

// Len returns the number of classes.
func (c ClassList) Len() int {
	return len(c.names())
}

// String returns the class attribute value.
func (c ClassList) String() string {
	return strings.Join(c.names(), " ")
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Style edits the inline style properties of an element.
type Style struct {
	n *Node
}

// Style returns the inline style of n.
func (n *Node) Style() Style {
	return Style{n: n}
}

// SetProperty sets a style property, including custom properties such as
// "--accent".
func (s Style) SetProperty(name, value string) {
	n := s.n
	for i, p := range n.style {
		if p.Name == name {
			n.style[i].Value = value
			n.emit(Patch{Op: PatchSetStyle, HID: n.hid, Key: name, Value: value, Target: n})
			return
		}
	}
	n.style = append(n.style, Attr{Name: name, Value: value})
	n.emit(Patch{Op: PatchSetStyle, HID: n.hid, Key: name, Value: value, Target: n})
}

// RemoveProperty removes a style property if present.
func (s Style) RemoveProperty(name string) {
	n := s.n
	for i, p := range n.style {
		if p.Name == name {
			n.style = append(n.style[:i], n.style[i+1:]...)
			n.emit(Patch{Op: PatchRemoveStyle, HID: n.hid, Key: name, Target: n})
			return
		}
	}
}

// GetPropertyValue returns the value of a style property, or "".
func (s Style) GetPropertyValue(name string) string {
	for _, p := range s.n.style {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

func (n *Node) styleText() string {
	parts := make([]string, 0, len(n.style))
	for _, p := range n.style {
		parts = append(parts, p.Name+": "+p.Value)
	}
	return strings.Join(parts, "; ")
}

func parseStyle(v string) []Attr {
	var out []Attr
	for _, decl := range strings.Split(v, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}
		out = append(out, Attr{Name: name, Value: value})
	}
	return out
}
