package memhost

import (
	"sort"

	"github.com/vango-dev/vnode/pkg/host"
)

// NodeType distinguishes elements from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is a node of the in-memory tree.
type Node struct {
	id    int64
	typ   NodeType
	tag   string
	text  string
	class string

	attrs     map[string]string
	style     map[string]string
	listeners map[string][]*host.Handler

	parent   *Node
	children []*Node
}

// ID implements host.Node.
func (n *Node) ID() int64 { return n.id }

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the payload of a text node.
func (n *Node) Text() string { return n.text }

// ClassName returns the class string of an element.
func (n *Node) ClassName() string { return n.class }

// Parent returns the parent node, or nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attr returns an attribute value and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// AttrNames returns the set attribute names in sorted order.
func (n *Node) AttrNames() []string {
	return sortedKeys(n.attrs)
}

// Style returns a style property value and whether it is set.
func (n *Node) Style(name string) (string, bool) {
	v, ok := n.style[name]
	return v, ok
}

// StyleNames returns the set style property names in sorted order.
func (n *Node) StyleNames() []string {
	return sortedKeys(n.style)
}

// Listeners returns the handlers subscribed to an event type.
func (n *Node) Listeners(event string) []*host.Handler {
	out := make([]*host.Handler, len(n.listeners[event]))
	copy(out, n.listeners[event])
	return out
}

// TextContent returns the concatenated text of the subtree.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.text
	}
	var s string
	for _, c := range n.children {
		s += c.TextContent()
	}
	return s
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// contains reports whether other is n or one of its descendants.
func (n *Node) contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
