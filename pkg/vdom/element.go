package vdom

// H builds an element from variadic arguments.
//
// Arguments can be: nil, Attr, []Attr, EventHandler, Style, *VNode,
// []*VNode, or a string / other value (text). A lone child argument that is
// a *VNode or text produces ShapeSingle; a []*VNode argument or more than
// one child produces ShapeMultiple.
func H(tag string, args ...any) *VNode {
	var (
		props    Props
		children []*VNode
		spread   bool
	)

	setProp := func(key string, value any) {
		if props == nil {
			props = make(Props)
		}
		props[key] = value
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if v.Key != "" {
				mergeAttr(setProp, props, v)
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					mergeAttr(setProp, props, a)
				}
			}
		case EventHandler:
			if v.Event != "" && v.Handler != nil {
				setProp(EventPrefix+v.Event, v.Handler)
			}
		case Style:
			for name, value := range v {
				mergeAttr(setProp, props, StyleProp(name, value))
			}
		case *VNode:
			if v != nil {
				children = append(children, v)
			}
		case []*VNode:
			spread = true
			for _, c := range v {
				if c != nil {
					children = append(children, c)
				}
			}
		default:
			children = append(children, TextVNode(Stringify(v)))
		}
	}

	switch {
	case len(children) == 0 && !spread:
		return CreateVNode(tag, props, nil)
	case len(children) == 1 && !spread:
		return CreateVNode(tag, props, children[0])
	default:
		return CreateVNode(tag, props, children)
	}
}

// mergeAttr stores an attribute, folding style properties into one Style map.
func mergeAttr(set func(string, any), props Props, a Attr) {
	if sp, ok := a.Value.(styleProp); ok {
		style := make(Style)
		if props != nil {
			if prev, ok := props[PropStyle].(Style); ok {
				for k, v := range prev {
					style[k] = v
				}
			}
		}
		style[sp.name] = sp.value
		set(PropStyle, style)
		return
	}
	set(a.Key, a.Value)
}

// Text creates a text node.
func Text(content string) *VNode {
	return TextVNode(content)
}

// Element helpers.

func Div(args ...any) *VNode      { return H("div", args...) }
func Span(args ...any) *VNode     { return H("span", args...) }
func P(args ...any) *VNode        { return H("p", args...) }
func A(args ...any) *VNode        { return H("a", args...) }
func Ul(args ...any) *VNode       { return H("ul", args...) }
func Ol(args ...any) *VNode       { return H("ol", args...) }
func Li(args ...any) *VNode       { return H("li", args...) }
func Button(args ...any) *VNode   { return H("button", args...) }
func Input(args ...any) *VNode    { return H("input", args...) }
func Label(args ...any) *VNode    { return H("label", args...) }
func Section(args ...any) *VNode  { return H("section", args...) }
func H1(args ...any) *VNode       { return H("h1", args...) }
func H2(args ...any) *VNode       { return H("h2", args...) }
func Table(args ...any) *VNode    { return H("table", args...) }
func Tr(args ...any) *VNode       { return H("tr", args...) }
func Td(args ...any) *VNode       { return H("td", args...) }
func Br(args ...any) *VNode       { return H("br", args...) }
