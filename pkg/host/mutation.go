package host

import "fmt"

// Op identifies a host mutation.
type Op uint8

const (
	OpCreateElement  Op = 0x01 // Value = tag
	OpCreateText     Op = 0x02 // Value = text
	OpInsert         Op = 0x03 // Parent, Anchor (0 = append)
	OpRemove         Op = 0x04 // Parent
	OpSetAttr        Op = 0x05 // Name, Value
	OpRemoveAttr     Op = 0x06 // Name
	OpSetStyle       Op = 0x07 // Name, Value
	OpRemoveStyle    Op = 0x08 // Name
	OpSetClass       Op = 0x09 // Value
	OpAddListener    Op = 0x0A // Name = event type
	OpRemoveListener Op = 0x0B // Name = event type
	OpSetText        Op = 0x0C // Value
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetStyle:
		return "SetStyle"
	case OpRemoveStyle:
		return "RemoveStyle"
	case OpSetClass:
		return "SetClass"
	case OpAddListener:
		return "AddListener"
	case OpRemoveListener:
		return "RemoveListener"
	case OpSetText:
		return "SetText"
	default:
		return "Unknown"
	}
}

// Mutation records one applied host operation.
type Mutation struct {
	Op     Op
	Node   int64  // Target node
	Parent int64  // For Insert/Remove
	Anchor int64  // For Insert; 0 means append
	Name   string // Attribute, style property or event type
	Value  string // New value, tag or text
}

// String returns a compact, human-readable form of the mutation.
func (m Mutation) String() string {
	switch m.Op {
	case OpCreateElement, OpCreateText, OpSetClass, OpSetText:
		return fmt.Sprintf("%s #%d %q", m.Op, m.Node, m.Value)
	case OpInsert:
		if m.Anchor == 0 {
			return fmt.Sprintf("%s #%d into #%d", m.Op, m.Node, m.Parent)
		}
		return fmt.Sprintf("%s #%d into #%d before #%d", m.Op, m.Node, m.Parent, m.Anchor)
	case OpRemove:
		return fmt.Sprintf("%s #%d from #%d", m.Op, m.Node, m.Parent)
	case OpSetAttr, OpSetStyle:
		return fmt.Sprintf("%s #%d %s=%q", m.Op, m.Node, m.Name, m.Value)
	default:
		return fmt.Sprintf("%s #%d %s", m.Op, m.Node, m.Name)
	}
}

// IsStructural reports whether the op changes tree shape.
func (op Op) IsStructural() bool {
	return op == OpInsert || op == OpRemove
}
