// Package metrics exports per-operation outcome counters and latencies to Prometheus.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation names observed by the HTTP, MCP and CLI surfaces.
const (
	OpResolve       = "resolve"
	OpRecord        = "record"
	OpCompose       = "compose"
	OpAddIngredient = "add_ingredient"
	OpWeighIn       = "weigh_in"
	OpTotals        = "totals"
	OpImport        = "import"
)

// Recorder observes operation outcomes.
type Recorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Nop discards every observation.
type Nop struct{}

func (Nop) Observe(context.Context, string, bool, time.Duration) {}

// Prometheus is a Recorder backed by its own registry.
type Prometheus struct {
	registry *prometheus.Registry
	results  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheus builds a Prometheus recorder with process and Go runtime
// collectors registered alongside the operation metrics.
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	p := &Prometheus{
		registry: registry,
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nutrilog",
			Name:      "operations_total",
			Help:      "Engine operations by outcome.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nutrilog",
			Name:      "operation_duration_seconds",
			Help:      "Engine operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	registry.MustRegister(
		p.results,
		p.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Observe records one operation outcome.
func (p *Prometheus) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	result := "error"
	if success {
		result = "success"
	}
	p.results.WithLabelValues(operation, result).Inc()
	p.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Track runs fn and observes its outcome under operation.
func Track(ctx context.Context, r Recorder, operation string, fn func() error) error {
	if r == nil {
		return fn()
	}
	started := time.Now()
	err := fn()
	r.Observe(ctx, operation, err == nil, time.Since(started))
	return err
}
