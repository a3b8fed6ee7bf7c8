package render

import (
	stderrors "errors"

	"github.com/vango-dev/vnode/pkg/host"
)

var errNilNode = stderrors.New("adapter returned a nil node")

// guard wraps a host.Adapter so every failure becomes ErrHostAdapter and
// every applied mutation is counted.
type guard struct {
	a host.Adapter
	m *Metrics
}

func (g guard) done(op host.Op, name string, err error) error {
	if err != nil {
		return hostFailure(name, err)
	}
	g.m.mutation(op)
	return nil
}

func (g guard) createElement(tag string) (host.Node, error) {
	n, err := g.a.CreateElement(tag)
	if err == nil && n == nil {
		return nil, hostFailure("CreateElement", errNilNode)
	}
	return n, g.done(host.OpCreateElement, "CreateElement", err)
}

func (g guard) createText(text string) (host.Node, error) {
	n, err := g.a.CreateText(text)
	if err == nil && n == nil {
		return nil, hostFailure("CreateText", errNilNode)
	}
	return n, g.done(host.OpCreateText, "CreateText", err)
}

func (g guard) insert(parent, child, anchor host.Node) error {
	var err error
	if anchor == nil {
		err = g.a.AppendChild(parent, child)
	} else {
		err = g.a.InsertBefore(parent, child, anchor)
	}
	return g.done(host.OpInsert, "InsertBefore", err)
}

func (g guard) remove(parent, child host.Node) error {
	return g.done(host.OpRemove, "RemoveChild", g.a.RemoveChild(parent, child))
}

func (g guard) nextSibling(n host.Node) host.Node {
	return g.a.NextSibling(n)
}

func (g guard) setAttr(n host.Node, name, value string) error {
	return g.done(host.OpSetAttr, "SetAttribute", g.a.SetAttribute(n, name, value))
}

func (g guard) removeAttr(n host.Node, name string) error {
	return g.done(host.OpRemoveAttr, "RemoveAttribute", g.a.RemoveAttribute(n, name))
}

func (g guard) setStyle(n host.Node, name, value string) error {
	return g.done(host.OpSetStyle, "SetStyle", g.a.SetStyle(n, name, value))
}

func (g guard) removeStyle(n host.Node, name string) error {
	return g.done(host.OpRemoveStyle, "RemoveStyle", g.a.RemoveStyle(n, name))
}

func (g guard) setClass(n host.Node, value string) error {
	return g.done(host.OpSetClass, "SetClassName", g.a.SetClassName(n, value))
}

func (g guard) listen(n host.Node, event string, h *host.Handler) error {
	return g.done(host.OpAddListener, "AddEventListener", g.a.AddEventListener(n, event, h))
}

func (g guard) unlisten(n host.Node, event string, h *host.Handler) error {
	return g.done(host.OpRemoveListener, "RemoveEventListener", g.a.RemoveEventListener(n, event, h))
}

func (g guard) setText(n host.Node, text string) error {
	return g.done(host.OpSetText, "SetTextContent", g.a.SetTextContent(n, text))
}
