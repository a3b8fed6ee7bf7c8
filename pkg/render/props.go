package render

import (
	"sort"

	"github.com/vango-dev/vnode/pkg/host"
	"github.com/vango-dev/vnode/pkg/vdom"
)

// sortedProps returns prop names in a stable order so mutation logs are
// deterministic.
func sortedProps(props vdom.Props) []string {
	if len(props) == 0 {
		return nil
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// patchProp reconciles one prop on el. A nil prevVal means the prop was
// absent; a nil nextVal means it is being removed.
func (r *Renderer) patchProp(el host.Node, name string, prevVal, nextVal any) error {
	switch {
	case name == vdom.PropKey:
		return nil
	case name == vdom.PropStyle:
		return r.patchStyle(el, prevVal, nextVal)
	case name == vdom.PropClass:
		return r.patchClass(el, prevVal, nextVal)
	case vdom.IsEventProp(name):
		return r.patchEvent(el, vdom.EventType(name), prevVal, nextVal)
	default:
		return r.patchAttr(el, name, prevVal, nextVal)
	}
}

func (r *Renderer) patchAttr(el host.Node, name string, prevVal, nextVal any) error {
	if removesAttr(nextVal) {
		if removesAttr(prevVal) {
			return nil
		}
		return r.host.removeAttr(el, name)
	}
	next := vdom.Stringify(nextVal)
	if !removesAttr(prevVal) && vdom.Stringify(prevVal) == next {
		return nil
	}
	return r.host.setAttr(el, name, next)
}

// removesAttr reports whether a value means "attribute absent".
func removesAttr(v any) bool {
	if v == nil {
		return true
	}
	b, ok := v.(bool)
	return ok && !b
}

func (r *Renderer) patchClass(el host.Node, prevVal, nextVal any) error {
	if nextVal == nil {
		if prevVal == nil {
			return nil
		}
		return r.host.setClass(el, "")
	}
	next := vdom.Stringify(nextVal)
	if prevVal != nil && vdom.Stringify(prevVal) == next {
		return nil
	}
	return r.host.setClass(el, next)
}

func (r *Renderer) patchStyle(el host.Node, prevVal, nextVal any) error {
	prev, err := asStyle(prevVal)
	if err != nil {
		return err
	}
	next, err := asStyle(nextVal)
	if err != nil {
		return err
	}

	for _, name := range sortedKeys(next) {
		value := next[name]
		if old, ok := prev[name]; ok && old == value {
			continue
		}
		if err := r.host.setStyle(el, name, value); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(prev) {
		if _, ok := next[name]; ok {
			continue
		}
		if err := r.host.removeStyle(el, name); err != nil {
			return err
		}
	}
	return nil
}

func asStyle(v any) (vdom.Style, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case vdom.Style:
		return s, nil
	case map[string]string:
		return vdom.Style(s), nil
	case map[string]any:
		style := make(vdom.Style, len(s))
		for k, val := range s {
			if val != nil {
				style[k] = vdom.Stringify(val)
			}
		}
		return style, nil
	default:
		return nil, invalidNode("style must be a map of property names, got %T", v)
	}
}

func sortedKeys(s vdom.Style) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Renderer) patchEvent(el host.Node, event string, prevVal, nextVal any) error {
	prev, err := asHandler(prevVal)
	if err != nil {
		return err
	}
	next, err := asHandler(nextVal)
	if err != nil {
		return err
	}
	if prev == next {
		return nil
	}
	if prev != nil {
		if err := r.host.unlisten(el, event, prev); err != nil {
			return err
		}
	}
	if next != nil {
		return r.host.listen(el, event, next)
	}
	return nil
}

func asHandler(v any) (*host.Handler, error) {
	switch h := v.(type) {
	case nil:
		return nil, nil
	case *host.Handler:
		return h, nil
	default:
		return nil, invalidNode("event prop must be a *Handler, got %T", v)
	}
}
