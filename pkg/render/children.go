package render

import (
	"github.com/vango-dev/vnode/internal/errors"
	"github.com/vango-dev/vnode/pkg/host"
	"github.com/vango-dev/vnode/pkg/vdom"
)

// patchChildren dispatches on the (prev, next) children shapes.
func (r *Renderer) patchChildren(prev, next *vdom.VNode, parent host.Node) error {
	pc, nc := prev.Children, next.Children

	switch prev.Shape {
	case vdom.ShapeEmpty:
		switch next.Shape {
		case vdom.ShapeEmpty:
			return nil
		case vdom.ShapeSingle, vdom.ShapeMultiple:
			return r.mountAll(nc, parent)
		}

	case vdom.ShapeSingle:
		switch next.Shape {
		case vdom.ShapeEmpty:
			return r.removeAll(pc, parent)
		case vdom.ShapeSingle:
			return r.patch(pc[0], nc[0], parent)
		case vdom.ShapeMultiple:
			if err := r.removeAll(pc, parent); err != nil {
				return err
			}
			return r.mountAll(nc, parent)
		}

	case vdom.ShapeMultiple:
		switch next.Shape {
		case vdom.ShapeEmpty:
			return r.removeAll(pc, parent)
		case vdom.ShapeSingle:
			if err := r.removeAll(pc, parent); err != nil {
				return err
			}
			return r.mountAll(nc, parent)
		case vdom.ShapeMultiple:
			return r.patchList(pc, nc, parent)
		}
	}

	return invalidNode("unknown children shapes %s -> %s", prev.Shape, next.Shape)
}

func (r *Renderer) mountAll(children []*vdom.VNode, parent host.Node) error {
	for _, c := range children {
		if err := r.mount(c, parent, nil); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) removeAll(children []*vdom.VNode, parent host.Node) error {
	for _, c := range children {
		if err := r.removeChild(c, parent); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) removeChild(c *vdom.VNode, parent host.Node) error {
	if c == nil || c.Host == nil {
		return invalidNode("cannot remove %s: not mounted", describe(c))
	}
	return r.host.remove(parent, c.Host)
}

// patchList reconciles two non-empty child lists.
func (r *Renderer) patchList(prev, next []*vdom.VNode, parent host.Node) error {
	prevKeyed, err := r.checkKeys(prev)
	if err != nil {
		return err
	}
	nextKeyed, err := r.checkKeys(next)
	if err != nil {
		return err
	}

	if r.policy == KeyPolicyPositional && !prevKeyed && !nextKeyed {
		return r.patchPositional(prev, next, parent)
	}
	return r.patchKeyed(prev, next, parent)
}

// checkKeys enforces key uniqueness and the key policy for one list, and
// reports whether the list is keyed.
func (r *Renderer) checkKeys(list []*vdom.VNode) (bool, error) {
	seen := make(map[string]int, len(list))
	keyed, unkeyed := 0, 0

	for i, c := range list {
		if c.Key == "" {
			unkeyed++
			if r.policy == KeyPolicyStrict {
				return false, errors.New(errors.CodeMissingKey).
					WithDetailf("child %d (%s) has no key", i, describe(c))
			}
			continue
		}
		keyed++
		if j, dup := seen[c.Key]; dup {
			return false, errors.New(errors.CodeDuplicateKey).
				WithDetailf("key %q at positions %d and %d", c.Key, j, i)
		}
		seen[c.Key] = i
	}

	if r.policy == KeyPolicyPositional && keyed > 0 && unkeyed > 0 {
		return false, errors.New(errors.CodeMissingKey).
			WithDetailf("list mixes %d keyed and %d unkeyed children", keyed, unkeyed)
	}
	return keyed > 0, nil
}

// patchPositional pairs children by index.
func (r *Renderer) patchPositional(prev, next []*vdom.VNode, parent host.Node) error {
	common := min(len(prev), len(next))
	for i := 0; i < common; i++ {
		if err := r.patch(prev[i], next[i], parent); err != nil {
			return err
		}
	}
	if err := r.mountAll(next[common:], parent); err != nil {
		return err
	}
	return r.removeAll(prev[common:], parent)
}

// patchKeyed is a single left-to-right pass over next. A child whose key
// matches an old child is patched in place; it is moved only if its old
// index is below lastIndex, the highest old index matched so far, and then
// lands right after its new predecessor. Unmatched new children are mounted
// at their position; unmatched old children are removed at the end.
// Unkeyed children never match.
func (r *Renderer) patchKeyed(prev, next []*vdom.VNode, parent host.Node) error {
	index := make(map[string]int, len(prev))
	for j, c := range prev {
		if c.Key != "" {
			index[c.Key] = j
		}
	}
	matched := make([]bool, len(prev))
	lastIndex := 0

	for i, nc := range next {
		j, found := -1, false
		if nc.Key != "" {
			j, found = index[nc.Key]
		}

		if found {
			matched[j] = true
			if err := r.patch(prev[j], nc, parent); err != nil {
				return err
			}
			if j < lastIndex {
				anchor := r.host.nextSibling(next[i-1].Host)
				if err := r.host.insert(parent, nc.Host, anchor); err != nil {
					return err
				}
				r.metrics.move()
			} else {
				lastIndex = j
			}
			continue
		}

		var anchor host.Node
		if i == 0 {
			anchor = prev[0].Host
		} else {
			anchor = r.host.nextSibling(next[i-1].Host)
		}
		if err := r.mount(nc, parent, anchor); err != nil {
			return err
		}
	}

	for j, pc := range prev {
		if matched[j] {
			continue
		}
		if err := r.removeChild(pc, parent); err != nil {
			return err
		}
	}
	return nil
}
