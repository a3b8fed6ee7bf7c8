// Package replay renders the steps of a scene, in order, into a single
// in-memory container and records what each step did to the host tree.
package replay
