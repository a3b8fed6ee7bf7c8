// Package host defines the boundary between the reconciler and a concrete
// host tree.
//
// The reconciler never touches a real tree directly. Every structural edit,
// attribute write and listener change goes through an Adapter, so the same
// engine can drive a browser document, a terminal widget tree or the
// in-memory tree in package memhost.
//
// # Nodes
//
// Node is an opaque handle owned by the adapter. The only thing the engine
// asks of it is a stable ID, used for logging and for mutation records.
//
// # Handlers
//
// Event handlers are compared by reference. Handler wraps a function in a
// pointer so two bindings of "the same" closure are distinguishable, and
// rebinding the same *Handler is a no-op.
//
// # Mutations
//
// Mutation is a flat record of one applied host operation. Adapters that
// record their work (memhost does) expose a []Mutation log which package
// protocol can encode for transport.
package host
