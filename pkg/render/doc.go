// Package render materializes virtual trees into a host tree and keeps them
// in sync.
//
// A Renderer drives a host.Adapter. The first Render into a Container
// mounts the tree; every later Render patches the container's current tree
// into the new one, applying only the host mutations needed:
//
//	doc := memhost.NewDocument()
//	r := render.New(doc, render.WithKeyPolicy(render.KeyPolicyStrict))
//	c := render.NewContainer(doc.Root())
//
//	if err := r.Render(ctx, view(state), c); err != nil {
//	    return err
//	}
//
// # Patching
//
// Nodes of a different kind or tag are replaced in place: the old host node
// is removed and the new subtree is mounted before the old node's next
// sibling. Matching elements keep their host node and have props and
// children reconciled. Text nodes are rewritten only when the payload
// changes.
//
// Children are diffed by shape (empty, single, multiple). Two multiple
// lists go through keyed reconciliation: a single left-to-right pass over
// the new list that matches old children by key, patches them in place and
// moves a match only when it appears before one already placed. New keys
// are mounted at their position and unmatched old children are removed.
// KeyPolicy decides what happens to unkeyed lists.
//
// # Props
//
// "class" is written whole. "style" is diffed per property and removed
// properties are cleared. "@event" props subscribe and unsubscribe handlers
// by reference. Everything else is an attribute: nil or false removes it.
// Unchanged values produce no host mutation, so rendering an identical tree
// twice is a no-op.
//
// # Errors
//
// Component nodes fail with ErrUnsupportedNodeKind. Adapter failures are
// wrapped as ErrHostAdapter and stop the render; nothing is rolled back.
//
// # Concurrency
//
// A Renderer holds no per-render state, but a Container and the host tree
// it points into must only be rendered from one goroutine at a time.
package render
