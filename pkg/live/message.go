package live

import (
	"github.com/vango-dev/cells/pkg/dom"
)

// MessageType is the kind of a server to browser message.
type MessageType string

const (
	// MessagePatch carries one patch for an element with a hydration id.
	MessagePatch MessageType = "patch"
	// MessageHTML replaces the inner HTML of an element.
	MessageHTML MessageType = "html"
	// MessageError reports that the reactive state is frozen.
	MessageError MessageType = "error"
)

// Message is sent to browsers as JSON.
type Message struct {
	Type  MessageType `json:"type"`
	Patch *dom.Patch  `json:"patch,omitempty"`
	HID   string      `json:"hid,omitempty"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Event is sent by browsers when the user interacts with an element.
type Event struct {
	HID   string `json:"hid"`
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// translate turns a patch into a message the browser can apply directly. It
// returns the hid of a parent to refresh instead when the patch targets a
// text node.
func translate(p dom.Patch) (msg *Message, refresh string) {
	textTarget := p.Target != nil && p.Target.Type() == dom.TextNode
	switch p.Op {
	case dom.PatchInsertNode:
		return &Message{Type: MessagePatch, Patch: &p}, ""
	case dom.PatchRemoveNode, dom.PatchReplaceNode:
		if textTarget {
			return nil, p.ParentID
		}
		return &Message{Type: MessagePatch, Patch: &p}, ""
	case dom.PatchSetText:
		if textTarget {
			if parent := p.Target.Parent(); parent != nil {
				return nil, parent.HID()
			}
			return nil, ""
		}
		return &Message{Type: MessagePatch, Patch: &p}, ""
	default:
		return &Message{Type: MessagePatch, Patch: &p}, ""
	}
}
