package render

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vnode/internal/errors"
	"github.com/vango-dev/vnode/pkg/host"
	"github.com/vango-dev/vnode/pkg/vdom"
)

// TracerName is the instrumentation name used when no tracer is supplied.
const TracerName = "github.com/vango-dev/vnode/pkg/render"

// Renderer mounts and patches virtual trees against a host adapter.
type Renderer struct {
	host    guard
	policy  KeyPolicy
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithKeyPolicy sets how multi-child lists are reconciled.
func WithKeyPolicy(p KeyPolicy) Option {
	return func(r *Renderer) {
		r.policy = p
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the OpenTelemetry tracer. Default: the global provider's
// tracer named TracerName.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// New creates a Renderer over the given adapter.
func New(adapter host.Adapter, opts ...Option) *Renderer {
	r := &Renderer{
		policy: KeyPolicyPositional,
		logger: slog.Default(),
		tracer: otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.host = guard{a: adapter, m: r.metrics}
	return r
}

// Policy returns the configured key policy.
func (r *Renderer) Policy() KeyPolicy {
	return r.policy
}

// Container is a mount target: a host node plus the tree last rendered
// into it.
type Container struct {
	root    host.Node
	current *vdom.VNode
}

// NewContainer creates a container over an existing host node.
func NewContainer(root host.Node) *Container {
	return &Container{root: root}
}

// Root returns the container's host node.
func (c *Container) Root() host.Node {
	return c.root
}

// Current returns the tree last rendered into the container, or nil.
func (c *Container) Current() *vdom.VNode {
	return c.current
}

// Render mounts node into the container, or patches the container's current
// tree into node if one exists. On success node becomes the current tree.
// On failure the host tree may be partially updated and the container keeps
// its previous record. Rendering a nil node unmounts.
func (r *Renderer) Render(ctx context.Context, node *vdom.VNode, c *Container) error {
	if node == nil {
		return r.Unmount(ctx, c)
	}
	if c == nil || c.root == nil {
		return errors.New(errors.CodeNoContainerRoot)
	}

	path := "mount"
	if c.current != nil {
		path = "patch"
	}

	_, span := r.tracer.Start(ctx, "vnode.render", trace.WithAttributes(
		attribute.String("vnode.path", path),
		attribute.String("vnode.kind", node.Kind.String()),
		attribute.String("vnode.tag", node.Tag),
	))
	defer span.End()

	start := time.Now()
	var err error
	if c.current != nil {
		err = r.patch(c.current, node, c.root)
	} else {
		err = r.mount(node, c.root, nil)
	}
	r.finish(span, path, time.Since(start), err)
	if err != nil {
		return err
	}

	c.current = node
	return nil
}

// Unmount removes the container's current tree from the host and clears
// the record. Unmounting an empty container is a no-op.
func (r *Renderer) Unmount(ctx context.Context, c *Container) error {
	if c == nil || c.root == nil {
		return errors.New(errors.CodeNoContainerRoot)
	}
	if c.current == nil {
		return nil
	}

	_, span := r.tracer.Start(ctx, "vnode.unmount")
	defer span.End()

	start := time.Now()
	var err error
	if c.current.Host == nil {
		err = invalidNode("current tree %s is not mounted", describe(c.current))
	} else {
		err = r.host.remove(c.root, c.current.Host)
	}
	r.finish(span, "unmount", time.Since(start), err)
	if err != nil {
		return err
	}

	c.current = nil
	return nil
}

// Mount materializes node and inserts it into parent before anchor, or at
// the end when anchor is nil.
func (r *Renderer) Mount(node *vdom.VNode, parent, anchor host.Node) error {
	return r.mount(node, parent, anchor)
}

// Patch reconciles prev into next. prev must be mounted under parent; on
// success next owns the host node(s) prev owned.
func (r *Renderer) Patch(prev, next *vdom.VNode, parent host.Node) error {
	return r.patch(prev, next, parent)
}

func (r *Renderer) finish(span trace.Span, path string, d time.Duration, err error) {
	code := ""
	if err != nil {
		code = errors.CodeOf(err)
		if code == "" {
			code = "unknown"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("vnode.error_code", code))
		r.logger.Warn("render failed", "path", path, "code", code, "error", err)
	} else {
		r.logger.Debug("render", "path", path, "duration", d)
	}
	r.metrics.observeRender(path, d, code)
}
