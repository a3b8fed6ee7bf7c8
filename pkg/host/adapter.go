package host

// Node is a live node in the host tree.
type Node interface {
	// ID returns an identifier that is unique within the owning adapter.
	ID() int64
}

// Adapter exposes the primitive operations needed to build and mutate a
// host tree. Every mutating method reports failure through its error; the
// engine never retries.
type Adapter interface {
	// CreateElement creates a detached element of the given tag.
	CreateElement(tag string) (Node, error)

	// CreateText creates a detached text node.
	CreateText(text string) (Node, error)

	// AppendChild appends child as the last child of parent.
	AppendChild(parent, child Node) error

	// InsertBefore inserts child into parent immediately before anchor.
	// A nil anchor appends. If child is already attached it is moved.
	InsertBefore(parent, child, anchor Node) error

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node) error

	// NextSibling returns the node following n under its parent, or nil.
	NextSibling(n Node) Node

	SetAttribute(n Node, name, value string) error
	RemoveAttribute(n Node, name string) error

	SetStyle(n Node, name, value string) error
	RemoveStyle(n Node, name string) error

	SetClassName(n Node, value string) error

	AddEventListener(n Node, event string, h *Handler) error
	RemoveEventListener(n Node, event string, h *Handler) error

	// SetTextContent replaces the payload of a text node.
	SetTextContent(n Node, text string) error
}

// Handler is an event callback with reference identity.
type Handler struct {
	Fn func(event any)
}

// NewHandler wraps fn in a new Handler.
func NewHandler(fn func(event any)) *Handler {
	return &Handler{Fn: fn}
}

// Call invokes the handler. A nil handler or function is ignored.
func (h *Handler) Call(event any) {
	if h == nil || h.Fn == nil {
		return
	}
	h.Fn(event)
}
