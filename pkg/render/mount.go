package render

import (
	"github.com/vango-dev/vnode/pkg/host"
	"github.com/vango-dev/vnode/pkg/vdom"
)

// mount creates the host subtree for node and inserts it into parent.
func (r *Renderer) mount(node *vdom.VNode, parent, anchor host.Node) error {
	if node == nil {
		return invalidNode("cannot mount a nil node")
	}

	switch node.Kind {
	case vdom.KindText:
		n, err := r.host.createText(node.Text)
		if err != nil {
			return err
		}
		node.Host = n
		return r.host.insert(parent, n, anchor)

	case vdom.KindElement:
		return r.mountElement(node, parent, anchor)

	case vdom.KindFunctionComponent, vdom.KindClassComponent:
		return unsupported(node)

	default:
		return invalidNode("unknown node kind %d", node.Kind)
	}
}

// mountElement builds the element and its children detached, then inserts
// the populated element once.
func (r *Renderer) mountElement(node *vdom.VNode, parent, anchor host.Node) error {
	if err := checkShape(node); err != nil {
		return err
	}

	el, err := r.host.createElement(node.Tag)
	if err != nil {
		return err
	}
	node.Host = el

	for _, name := range sortedProps(node.Props) {
		if err := r.patchProp(el, name, nil, node.Props[name]); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := r.mount(child, el, nil); err != nil {
			return err
		}
	}

	return r.host.insert(parent, el, anchor)
}

// checkShape rejects nodes whose Shape disagrees with their Children.
func checkShape(node *vdom.VNode) error {
	n := len(node.Children)
	switch node.Shape {
	case vdom.ShapeEmpty:
		if n == 0 {
			return nil
		}
	case vdom.ShapeSingle:
		if n == 1 && node.Children[0] != nil {
			return nil
		}
	case vdom.ShapeMultiple:
		if n > 0 {
			for _, c := range node.Children {
				if c == nil {
					return invalidNode("%s has a nil child", describe(node))
				}
			}
			return nil
		}
	}
	return invalidNode("%s has shape %s with %d children", describe(node), node.Shape, n)
}
