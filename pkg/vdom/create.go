package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// CreateVNode builds a VNode from a tag, a prop bag and a children argument.
//
// The kind follows the tag: a string is an element, a ClassComponent is a
// class component, a Go func is a function component, and anything else
// (including nil) yields a text node whose payload is the stringified
// children.
//
// Children normalize as follows: nil or an empty slice is ShapeEmpty; a
// non-empty slice or array of any element type ([]*VNode, []any,
// []string, [3]int, ...) is ShapeMultiple, with non-VNode items
// stringified into text nodes and nil items dropped; a single *VNode is
// ShapeSingle; any other value, []byte included, is stringified and
// wrapped in a text node (ShapeSingle).
func CreateVNode(tag any, props Props, children any) *VNode {
	node := &VNode{Props: props}

	switch t := tag.(type) {
	case string:
		node.Kind = KindElement
		node.Tag = t
	case ClassComponent:
		node.Kind = KindClassComponent
		node.Comp = t
	default:
		if tag != nil && reflect.TypeOf(tag).Kind() == reflect.Func {
			node.Kind = KindFunctionComponent
			node.Comp = tag
		} else {
			node.Kind = KindText
			if children != nil {
				node.Text = Stringify(children)
			}
			return node
		}
	}

	if props != nil {
		if k, ok := props[PropKey]; ok && k != nil {
			node.Key = Stringify(k)
		}
	}

	node.Shape, node.Children = normalizeChildren(children)
	return node
}

// TextVNode creates a text node carrying text.
func TextVNode(text string) *VNode {
	return &VNode{
		Kind:  KindText,
		Text:  text,
		Shape: ShapeEmpty,
	}
}

func normalizeChildren(children any) (Shape, []*VNode) {
	switch c := children.(type) {
	case nil:
		return ShapeEmpty, nil
	case *VNode:
		if c == nil {
			return ShapeEmpty, nil
		}
		return ShapeSingle, []*VNode{c}
	case []*VNode:
		list := make([]*VNode, 0, len(c))
		for _, child := range c {
			if child != nil {
				list = append(list, child)
			}
		}
		if len(list) == 0 {
			return ShapeEmpty, nil
		}
		return ShapeMultiple, list
	case []any:
		return listShape(len(c), func(i int) any { return c[i] })
	case []byte:
		if len(c) == 0 {
			return ShapeEmpty, nil
		}
		return ShapeSingle, []*VNode{TextVNode(string(c))}
	}

	if rv := reflect.ValueOf(children); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return listShape(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	}
	return ShapeSingle, []*VNode{TextVNode(Stringify(children))}
}

// listShape normalizes n list items: nil items are dropped, *VNode items
// kept and anything else stringified into a text node.
func listShape(n int, item func(int) any) (Shape, []*VNode) {
	list := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		switch v := item(i).(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				list = append(list, v)
			}
		default:
			list = append(list, TextVNode(Stringify(v)))
		}
	}
	if len(list) == 0 {
		return ShapeEmpty, nil
	}
	return ShapeMultiple, list
}

// Stringify converts a prop or child value to its host string form.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
