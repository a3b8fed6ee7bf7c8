// Package vdom provides the virtual node model.
//
// A VNode is a detached description of one position in a UI tree: an
// element with props and children, or a text payload. Package render
// materializes VNodes into a host tree and reconciles successive trees.
//
// # Construction
//
// CreateVNode is the primitive factory. It classifies the node kind from
// the tag, normalizes the children argument into a Shape, and lifts the
// "key" prop into VNode.Key:
//
//	CreateVNode("ul", Props{"class": "list"}, []*VNode{
//	    CreateVNode("li", Props{"key": "a"}, "Apples"),
//	    CreateVNode("li", Props{"key": "b"}, "Pears"),
//	})
//
// H and the element helpers offer the variadic form:
//
//	Ul(Class("list"),
//	    Li(Key("a"), "Apples"),
//	    Li(Key("b"), "Pears"),
//	)
//
// # Props
//
// Props maps names to values. Three names are reserved:
//
//   - "key" is the reconciliation identity and never reaches the host
//   - "class" is written as the node's class string
//   - "style" holds a Style map of property name to value
//
// Names starting with "@" bind event handlers; the remainder is the event
// type ("@click"). Handler values must be *Handler so they compare by
// reference. Every other prop is a plain attribute, stringified on write.
//
// # Components
//
// Function and class component tags are recognized and classified, but the
// reconciler does not render them.
package vdom
