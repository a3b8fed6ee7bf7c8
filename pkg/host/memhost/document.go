package memhost

import (
	"errors"
	"fmt"

	"github.com/vango-dev/vnode/pkg/host"
)

// Document errors.
var (
	ErrForeignNode = errors.New("memhost: node does not belong to this document")
	ErrNotChild    = errors.New("memhost: node is not a child of parent")
	ErrNotText     = errors.New("memhost: node is not a text node")
	ErrNotElement  = errors.New("memhost: node is not an element")
	ErrCycle       = errors.New("memhost: insertion would create a cycle")
)

// RootTag is the tag of the container element created by NewDocument.
const RootTag = "root"

// Document is an in-memory host tree. It is not safe for concurrent use.
type Document struct {
	nextID    int64
	root      *Node
	nodes     map[int64]*Node
	mutations []host.Mutation
	faults    map[host.Op]error
}

var _ host.Adapter = (*Document)(nil)

// NewDocument creates a document with an empty root element.
func NewDocument() *Document {
	d := &Document{
		nodes:  make(map[int64]*Node),
		faults: make(map[host.Op]error),
	}
	d.root = d.newNode(ElementNode, RootTag, "")
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Node { return d.root }

// Node looks up a node by ID.
func (d *Document) Node(id int64) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Mutations returns a copy of the mutation log.
func (d *Document) Mutations() []host.Mutation {
	out := make([]host.Mutation, len(d.mutations))
	copy(out, d.mutations)
	return out
}

// Count returns how many logged mutations have the given op.
func (d *Document) Count(op host.Op) int {
	n := 0
	for _, m := range d.mutations {
		if m.Op == op {
			n++
		}
	}
	return n
}

// ResetLog clears the mutation log and returns what it held.
func (d *Document) ResetLog() []host.Mutation {
	out := d.mutations
	d.mutations = nil
	return out
}

// FailOn makes every subsequent operation of the given kind fail with err.
// Passing a nil err clears the fault.
func (d *Document) FailOn(op host.Op, err error) {
	if err == nil {
		delete(d.faults, op)
		return
	}
	d.faults[op] = err
}

// Dispatch invokes every listener bound to event on n, in subscription order.
func (d *Document) Dispatch(n host.Node, event string, payload any) error {
	node, err := d.resolve(n)
	if err != nil {
		return err
	}
	for _, h := range node.Listeners(event) {
		h.Call(payload)
	}
	return nil
}

func (d *Document) newNode(typ NodeType, tag, text string) *Node {
	d.nextID++
	n := &Node{id: d.nextID, typ: typ, tag: tag, text: text}
	if typ == ElementNode {
		n.attrs = make(map[string]string)
		n.style = make(map[string]string)
		n.listeners = make(map[string][]*host.Handler)
	}
	d.nodes[n.id] = n
	return n
}

func (d *Document) record(m host.Mutation) {
	d.mutations = append(d.mutations, m)
}

func (d *Document) fault(op host.Op) error {
	if err, ok := d.faults[op]; ok {
		return fmt.Errorf("memhost: %s: %w", op, err)
	}
	return nil
}

func (d *Document) resolve(n host.Node) (*Node, error) {
	node, ok := n.(*Node)
	if !ok || node == nil || d.nodes[node.id] != node {
		return nil, ErrForeignNode
	}
	return node, nil
}

func (d *Document) element(n host.Node) (*Node, error) {
	node, err := d.resolve(n)
	if err != nil {
		return nil, err
	}
	if node.typ != ElementNode {
		return nil, ErrNotElement
	}
	return node, nil
}

// CreateElement implements host.Adapter.
func (d *Document) CreateElement(tag string) (host.Node, error) {
	if err := d.fault(host.OpCreateElement); err != nil {
		return nil, err
	}
	n := d.newNode(ElementNode, tag, "")
	d.record(host.Mutation{Op: host.OpCreateElement, Node: n.id, Value: tag})
	return n, nil
}

// CreateText implements host.Adapter.
func (d *Document) CreateText(text string) (host.Node, error) {
	if err := d.fault(host.OpCreateText); err != nil {
		return nil, err
	}
	n := d.newNode(TextNode, "", text)
	d.record(host.Mutation{Op: host.OpCreateText, Node: n.id, Value: text})
	return n, nil
}

// AppendChild implements host.Adapter.
func (d *Document) AppendChild(parent, child host.Node) error {
	return d.InsertBefore(parent, child, nil)
}

// InsertBefore implements host.Adapter.
func (d *Document) InsertBefore(parent, child, anchor host.Node) error {
	if err := d.fault(host.OpInsert); err != nil {
		return err
	}
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.resolve(child)
	if err != nil {
		return err
	}
	if c.contains(p) {
		return ErrCycle
	}

	var a *Node
	if anchor != nil {
		if a, err = d.resolve(anchor); err != nil {
			return err
		}
		if a.parent != p {
			return ErrNotChild
		}
		// Inserting a node before itself leaves it where it is.
		if a == c {
			a = d.nextSibling(c)
		}
	}

	c.detach()
	if a == nil {
		p.children = append(p.children, c)
	} else {
		i := p.indexOf(a)
		p.children = append(p.children, nil)
		copy(p.children[i+1:], p.children[i:])
		p.children[i] = c
	}
	c.parent = p

	m := host.Mutation{Op: host.OpInsert, Node: c.id, Parent: p.id}
	if a != nil {
		m.Anchor = a.id
	}
	d.record(m)
	return nil
}

// RemoveChild implements host.Adapter.
func (d *Document) RemoveChild(parent, child host.Node) error {
	if err := d.fault(host.OpRemove); err != nil {
		return err
	}
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.resolve(child)
	if err != nil {
		return err
	}
	if c.parent != p {
		return ErrNotChild
	}
	c.detach()
	d.release(c)
	d.record(host.Mutation{Op: host.OpRemove, Node: c.id, Parent: p.id})
	return nil
}

// release forgets a removed subtree.
func (d *Document) release(n *Node) {
	delete(d.nodes, n.id)
	for _, c := range n.children {
		d.release(c)
	}
}

// NextSibling implements host.Adapter.
func (d *Document) NextSibling(n host.Node) host.Node {
	node, err := d.resolve(n)
	if err != nil {
		return nil
	}
	if next := d.nextSibling(node); next != nil {
		return next
	}
	return nil
}

func (d *Document) nextSibling(n *Node) *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// SetAttribute implements host.Adapter.
func (d *Document) SetAttribute(n host.Node, name, value string) error {
	if err := d.fault(host.OpSetAttr); err != nil {
		return err
	}
	node, err := d.element(n)
	if err != nil {
		return err
	}
	node.attrs[name] = value
	d.record(host.Mutation{Op: host.OpSetAttr, Node: node.id, Name: name, Value: value})
	return nil
}

// RemoveAttribute implements host.Adapter.
func (d *Document) RemoveAttribute(n host.Node, name string) error {
	if err := d.fault(host.OpRemoveAttr); err != nil {
		return err
	}
	node, err := d.element(n)
	if err != nil {
		return err
	}
	delete(node.attrs, name)
	d.record(host.Mutation{Op: host.OpRemoveAttr, Node: node.id, Name: name})
	return nil
}

// SetStyle implements host.Adapter.
func (d *Document) SetStyle(n host.Node, name, value string) error {
	if err := d.fault(host.OpSetStyle); err != nil {
		return err
	}
	node, err := d.element(n)
	if err != nil {
		return err
	}
	node.style[name] = value
	d.record(host.Mutation{Op: host.OpSetStyle, Node: node.id, Name: name, Value: value})
	return nil
}

// RemoveStyle implements host.Adapter.
func (d *Document) RemoveStyle(n host.Node, name string) error {
	if err := d.fault(host.OpRemoveStyle); err != nil {
		return err
	}
	node, err := d.element(n)
	if err != nil {
		return err
	}
	delete(node.style, name)
	d.record(host.Mutation{Op: host.OpRemoveStyle, Node: node.id, Name: name})
	return nil
}

// SetClassName implements host.Adapter.
func (d *Document) SetClassName(n host.Node, value string) error {
	if err := d.fault(host.OpSetClass); err != nil {
		return err
	}
	node, err := d.element(n)
	if err != nil {
		return err
	}
	node.class = value
	d.record(host.Mutation{Op: host.OpSetClass, Node: node.id, Value: value})
	return nil
}

// AddEventListener implements host.Adapter. Adding a handler that is
// already subscribed for the event is a no-op, as in the DOM.
func (d *Document) AddEventListener(n host.Node, event string, h *host.Handler) error {
	if err := d.fault(host.OpAddListener); err != nil {
		return err
	}
	node, err := d.element(n)
	if err != nil {
		return err
	}
	for _, existing := range node.listeners[event] {
		if existing == h {
			return nil
		}
	}
	node.listeners[event] = append(node.listeners[event], h)
	d.record(host.Mutation{Op: host.OpAddListener, Node: node.id, Name: event})
	return nil
}

// RemoveEventListener implements host.Adapter.
func (d *Document) RemoveEventListener(n host.Node, event string, h *host.Handler) error {
	if err := d.fault(host.OpRemoveListener); err != nil {
		return err
	}
	node, err := d.element(n)
	if err != nil {
		return err
	}
	list := node.listeners[event]
	for i, existing := range list {
		if existing == h {
			node.listeners[event] = append(list[:i], list[i+1:]...)
			if len(node.listeners[event]) == 0 {
				delete(node.listeners, event)
			}
			d.record(host.Mutation{Op: host.OpRemoveListener, Node: node.id, Name: event})
			return nil
		}
	}
	return nil
}

// SetTextContent implements host.Adapter.
func (d *Document) SetTextContent(n host.Node, text string) error {
	if err := d.fault(host.OpSetText); err != nil {
		return err
	}
	node, err := d.resolve(n)
	if err != nil {
		return err
	}
	if node.typ != TextNode {
		return ErrNotText
	}
	node.text = text
	d.record(host.Mutation{Op: host.OpSetText, Node: node.id, Value: text})
	return nil
}
