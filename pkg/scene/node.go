package scene

import (
	"fmt"
	"sort"

	"github.com/vango-dev/vnode/pkg/vdom"
)

// NodeSpec describes one node of a step's tree.
type NodeSpec struct {
	Tag      string            `toml:"tag" json:"tag,omitempty"`
	Text     *string           `toml:"text" json:"text,omitempty"`
	Key      string            `toml:"key" json:"key,omitempty"`
	Class    string            `toml:"class" json:"class,omitempty"`
	Attrs    map[string]any    `toml:"attrs" json:"attrs,omitempty"`
	Style    map[string]string `toml:"style" json:"style,omitempty"`
	Events   map[string]string `toml:"events" json:"events,omitempty"`
	List     bool              `toml:"list" json:"list,omitempty"`
	Children []NodeSpec        `toml:"children" json:"children,omitempty"`
}

// IsText reports whether n describes a text node.
func (n *NodeSpec) IsText() bool {
	return n.Tag == "" && n.Text != nil
}

func (n *NodeSpec) validate(step int, at string) error {
	if n.Tag == "" {
		if n.Text == nil {
			return invalid(step, at, "node needs a tag or text")
		}
		if n.Key != "" || n.Class != "" || len(n.Attrs) > 0 || len(n.Style) > 0 ||
			len(n.Events) > 0 || n.List || len(n.Children) > 0 {
			return invalid(step, at, "text nodes take no key, props or children")
		}
		return nil
	}

	if n.Text != nil && len(n.Children) > 0 {
		return invalid(step, at, "element has both text and children")
	}
	for name := range n.Attrs {
		if name == vdom.PropKey || name == vdom.PropClass || name == vdom.PropStyle || vdom.IsEventProp(name) {
			return invalid(step, at, fmt.Sprintf("attribute %q is reserved", name))
		}
	}
	for event, handler := range n.Events {
		if event == "" || handler == "" {
			return invalid(step, at, "event bindings need an event and a handler name")
		}
	}

	for i := range n.Children {
		if err := n.Children[i].validate(step, fmt.Sprintf("%s.children[%d]", at, i)); err != nil {
			return err
		}
	}
	return nil
}

// Build returns a fresh tree for step i, or nil for an unmount step.
// Every call builds new VNodes, since rendering records host nodes on them.
func (s *Scene) Build(i int) (*vdom.VNode, error) {
	if i < 0 || i >= len(s.Steps) {
		return nil, fmt.Errorf("scene: step %d out of range [0,%d)", i, len(s.Steps))
	}
	step := s.Steps[i]
	if step.Unmount {
		return nil, nil
	}
	return s.build(step.Root), nil
}

func (s *Scene) build(n *NodeSpec) *vdom.VNode {
	if n.IsText() {
		return vdom.TextVNode(*n.Text)
	}

	var props vdom.Props
	set := func(name string, value any) {
		if props == nil {
			props = make(vdom.Props)
		}
		props[name] = value
	}

	if n.Key != "" {
		set(vdom.PropKey, n.Key)
	}
	if n.Class != "" {
		set(vdom.PropClass, n.Class)
	}
	if len(n.Style) > 0 {
		style := make(vdom.Style, len(n.Style))
		for k, v := range n.Style {
			style[k] = v
		}
		set(vdom.PropStyle, style)
	}
	for name, value := range n.Attrs {
		set(name, value)
	}
	events := make([]string, 0, len(n.Events))
	for event := range n.Events {
		events = append(events, event)
	}
	sort.Strings(events)
	for _, event := range events {
		set(vdom.EventPrefix+event, s.Handler(n.Events[event]))
	}

	switch {
	case n.Text != nil:
		return vdom.CreateVNode(n.Tag, props, vdom.TextVNode(*n.Text))
	case len(n.Children) == 1 && !n.List:
		return vdom.CreateVNode(n.Tag, props, s.build(&n.Children[0]))
	default:
		children := make([]*vdom.VNode, 0, len(n.Children))
		for i := range n.Children {
			children = append(children, s.build(&n.Children[i]))
		}
		return vdom.CreateVNode(n.Tag, props, children)
	}
}
