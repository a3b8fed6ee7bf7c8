package render

import (
	"github.com/vango-dev/vnode/pkg/host"
	"github.com/vango-dev/vnode/pkg/vdom"
)

// patch reconciles prev into next under parent.
func (r *Renderer) patch(prev, next *vdom.VNode, parent host.Node) error {
	if prev == nil || next == nil {
		return invalidNode("cannot patch %s into %s", describe(prev), describe(next))
	}
	if prev.Kind != next.Kind {
		return r.replace(prev, next, parent)
	}

	switch next.Kind {
	case vdom.KindElement:
		return r.patchElement(prev, next, parent)
	case vdom.KindText:
		return r.patchText(prev, next)
	case vdom.KindFunctionComponent, vdom.KindClassComponent:
		return unsupported(next)
	default:
		return invalidNode("unknown node kind %d", next.Kind)
	}
}

// replace removes prev's host node and mounts next where it stood.
func (r *Renderer) replace(prev, next *vdom.VNode, parent host.Node) error {
	if prev.Host == nil {
		return invalidNode("cannot replace %s: not mounted", describe(prev))
	}
	anchor := r.host.nextSibling(prev.Host)
	if err := r.host.remove(parent, prev.Host); err != nil {
		return err
	}
	return r.mount(next, parent, anchor)
}

func (r *Renderer) patchElement(prev, next *vdom.VNode, parent host.Node) error {
	if prev.Tag != next.Tag {
		return r.replace(prev, next, parent)
	}
	if prev.Host == nil {
		return invalidNode("cannot patch %s: not mounted", describe(prev))
	}
	if err := checkShape(next); err != nil {
		return err
	}

	el := prev.Host
	next.Host = el

	for _, name := range sortedProps(next.Props) {
		if err := r.patchProp(el, name, prev.Props[name], next.Props[name]); err != nil {
			return err
		}
	}
	for _, name := range sortedProps(prev.Props) {
		if _, ok := next.Props[name]; ok {
			continue
		}
		if err := r.patchProp(el, name, prev.Props[name], nil); err != nil {
			return err
		}
	}

	return r.patchChildren(prev, next, el)
}

func (r *Renderer) patchText(prev, next *vdom.VNode) error {
	if prev.Host == nil {
		return invalidNode("cannot patch text: not mounted")
	}
	next.Host = prev.Host
	if prev.Text == next.Text {
		return nil
	}
	return r.host.setText(next.Host, next.Text)
}
