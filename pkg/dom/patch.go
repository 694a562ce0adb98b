package dom

// PatchOp is the type of mutation recorded in the patch journal.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchSetAttr     PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchInsertNode  PatchOp = 0x04 // Append a new child
	PatchRemoveNode  PatchOp = 0x05 // Remove node
	PatchReplaceNode PatchOp = 0x07 // Replace node entirely
	PatchSetStyle    PatchOp = 0x0C // Set a style property
	PatchRemoveStyle PatchOp = 0x0D // Remove a style property
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	case PatchSetStyle:
		return "SetStyle"
	case PatchRemoveStyle:
		return "RemoveStyle"
	default:
		return "Unknown"
	}
}

// Patch is one mutation of a node that is connected to the document body.
type Patch struct {
	Op       PatchOp `json:"op"`
	HID      string  `json:"hid"`
	Key      string  `json:"key,omitempty"`
	Value    string  `json:"value,omitempty"`
	HTML     string  `json:"html,omitempty"`
	ParentID string  `json:"parent,omitempty"`

	// Target is the mutated node (the replaced node for ReplaceNode).
	Target *Node `json:"-"`
}

// PatchSink receives patches synchronously, in mutation order.
type PatchSink func(Patch)
