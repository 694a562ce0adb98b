// Package telemetry exports engine ticks as Prometheus metrics and
// OpenTelemetry spans.
//
// A Collector implements reactive.Observer. Attach it to every mounted root:
//
//	reg := prometheus.NewRegistry()
//	tel := telemetry.New(telemetry.WithRegistry(reg))
//	defer tel.WatchPanics()()
//	h, err := component.Mount(data, view, doc.Body(), component.WithObserver(tel))
//
// The tracer comes from the global OpenTelemetry provider, so spans are
// no-ops until the application installs one with otel.SetTracerProvider.
package telemetry

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/cells/pkg/reactive"
)

const defaultTracerName = "cells"

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "cells").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reactive").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the tick duration histogram buckets.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the metrics.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerName is the OpenTelemetry tracer name (default: "cells").
	TracerName string
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithBuckets sets the tick duration buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) { c.TracerName = name }
}

func defaultConfig() Config {
	return Config{
		Namespace:  "cells",
		Subsystem:  "reactive",
		Buckets:    prometheus.DefBuckets,
		Registry:   prometheus.DefaultRegisterer,
		TracerName: defaultTracerName,
	}
}

// Collector records tick statistics.
type Collector struct {
	registry prometheus.Registerer
	tracer   trace.Tracer

	ticks        *prometheus.CounterVec
	tickDuration prometheus.Histogram
	updates      prometheus.Counter
	misses       prometheus.Counter
	removed      prometheus.Counter
	pending      prometheus.Histogram
	rejected     *prometheus.CounterVec
	panics       prometheus.Counter
}

// New registers the collector's metrics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	if config.TracerName == "" {
		config.TracerName = defaultTracerName
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Collector{
		registry: config.Registry,
		tracer:   otel.Tracer(config.TracerName),

		ticks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ticks_total",
			Help:        "Total number of reactive ticks",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tick_duration_seconds",
			Help:        "Tick duration in seconds, including propagation",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		updates: counter("hook_updates_total", "Total number of hook updates run"),
		misses:  counter("hook_misses_total", "Total number of dirty hooks that were already removed"),
		removed: counter("hooks_removed_total", "Total number of hooks removed during propagation"),

		pending: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tick_dirty_hooks",
			Help:        "Number of hooks marked dirty per tick",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 10),
		}),

		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deferred_rejected_total",
			Help:        "Total number of deferred updates that could not run",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		panics: counter("panics_total", "Total number of panics that froze reactive state"),
	}
}

// BeginTick starts a span and returns the func that records the tick.
func (c *Collector) BeginTick() func(reactive.TickStats) {
	_, span := c.tracer.Start(context.Background(), "cells.tick",
		trace.WithSpanKind(trace.SpanKindInternal))

	return func(s reactive.TickStats) {
		status := "ok"
		if s.Panicked {
			status = "panic"
			span.SetStatus(codes.Error, "tick panicked")
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(
			attribute.Int("cells.dirty", s.Dirty),
			attribute.Int("cells.updated", s.Updated),
			attribute.Int("cells.missed", s.Missed),
			attribute.Int("cells.removed", s.Removed),
		)
		span.End()

		c.ticks.WithLabelValues(status).Inc()
		c.tickDuration.Observe(s.Duration.Seconds())
		c.pending.Observe(float64(s.Dirty))
		c.updates.Add(float64(s.Updated))
		c.misses.Add(float64(s.Missed))
		c.removed.Add(float64(s.Removed))
	}
}

// DeferredRejected counts a rejected deferred update.
func (c *Collector) DeferredRejected(reason string) {
	c.rejected.WithLabelValues(reason).Inc()
}

// WatchPanics counts process-wide panics until the returned func is called.
func (c *Collector) WatchPanics() (remove func()) {
	return reactive.OnPanic(func(any) { c.panics.Inc() })
}

// Handler serves the collector's registry in the Prometheus text format.
// Registries that are not gatherers fall back to the default gatherer.
func (c *Collector) Handler() http.Handler {
	g, ok := c.registry.(prometheus.Gatherer)
	if !ok {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

var _ reactive.Observer = (*Collector)(nil)
