package vdom

import "github.com/vango-dev/vnode/pkg/host"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement           VKind = iota // <div>, <button>, etc.
	KindText                           // Plain text node
	KindFunctionComponent              // Tag is a Go func
	KindClassComponent                 // Tag implements ClassComponent
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFunctionComponent:
		return "FunctionComponent"
	case KindClassComponent:
		return "ClassComponent"
	default:
		return "Unknown"
	}
}

// Shape classifies a node's children.
type Shape uint8

const (
	ShapeEmpty    Shape = iota // No children
	ShapeSingle                // Exactly one child in Children[0]
	ShapeMultiple              // Ordered list, possibly keyed
)

// String returns the string representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "Empty"
	case ShapeSingle:
		return "Single"
	case ShapeMultiple:
		return "Multiple"
	default:
		return "Unknown"
	}
}

// Reserved prop names.
const (
	PropKey   = "key"
	PropClass = "class"
	PropStyle = "style"

	// EventPrefix marks a prop as an event binding ("@click").
	EventPrefix = "@"
)

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Comp     any       // Component reference for component kinds
	Props    Props     // Attributes, style and event bindings
	Key      string    // Reconciliation key; "" means unkeyed
	Shape    Shape     // Children shape
	Children []*VNode  // Child nodes
	Text     string    // Payload for KindText
	Host     host.Node // Owned host node once mounted
}

// Props holds attributes, style and event handlers.
type Props map[string]any

// Style maps style property names to values.
type Style map[string]string

// Handler is an event handler with reference identity.
type Handler = host.Handler

// NewHandler wraps fn in a new Handler.
func NewHandler(fn func(event any)) *Handler {
	return host.NewHandler(fn)
}

// ClassComponent is a stateful component tag.
type ClassComponent interface {
	Render() *VNode
}

// Child returns the only child of a ShapeSingle node, or nil.
func (v *VNode) Child() *VNode {
	if v == nil || v.Shape != ShapeSingle || len(v.Children) == 0 {
		return nil
	}
	return v.Children[0]
}

// IsMounted reports whether the node currently owns a host node.
func (v *VNode) IsMounted() bool {
	return v != nil && v.Host != nil
}

// IsComponent reports whether the node is a function or class component.
func (v *VNode) IsComponent() bool {
	return v != nil && (v.Kind == KindFunctionComponent || v.Kind == KindClassComponent)
}

// IsEventProp reports whether a prop name binds an event handler.
func IsEventProp(name string) bool {
	return len(name) > len(EventPrefix) && name[:len(EventPrefix)] == EventPrefix
}

// EventType returns the event type of an event prop name ("@click" -> "click").
func EventType(name string) string {
	return name[len(EventPrefix):]
}
