// Package scene loads scene files: a named sequence of virtual trees that
// a renderer replays into one container, step by step.
//
// Scenes are written in TOML or JSON. A TOML scene looks like:
//
//	name = "reorder"
//	key_policy = "positional"
//
//	[[step]]
//	name = "initial"
//	[step.root]
//	tag = "ul"
//	  [[step.root.children]]
//	  tag = "li"
//	  key = "a"
//	  text = "A"
//
// A node with a tag is an element; a node with only text is a text node.
// Event bindings name a handler ("click" = "save"). Handlers with the same
// name resolve to the same *host.Handler for the lifetime of the Scene, so
// re-rendering a binding to the same name is a no-op.
package scene
