package render

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vnode/pkg/host"
)

// MetricsConfig configures the renderer's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vnode").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the renderer's Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vnode",
		Subsystem: "render",
		Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the renderer's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	mutations      *prometheus.CounterVec
	moves          prometheus.Counter
}

// NewMetrics creates and registers the renderer metrics:
//
//   - vnode_render_renders_total: renders by path (mount, patch, unmount) and status
//   - vnode_render_duration_seconds: render duration by path
//   - vnode_render_errors_total: failed renders by error code
//   - vnode_render_host_mutations_total: applied host mutations by op
//   - vnode_render_moves_total: keyed children moved to a new position
//
// Registering twice against the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of renders by path and status",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of failed renders by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_mutations_total",
			Help:        "Total number of host mutations applied by op",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		moves: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "moves_total",
			Help:        "Total number of keyed children moved",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observeRender(path string, d time.Duration, code string) {
	if m == nil {
		return
	}
	status := "success"
	if code != "" {
		status = "error"
		m.renderErrors.WithLabelValues(code).Inc()
	}
	m.rendersTotal.WithLabelValues(path, status).Inc()
	m.renderDuration.WithLabelValues(path).Observe(d.Seconds())
}

func (m *Metrics) mutation(op host.Op) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op.String()).Inc()
}

func (m *Metrics) move() {
	if m == nil {
		return
	}
	m.moves.Inc()
}
