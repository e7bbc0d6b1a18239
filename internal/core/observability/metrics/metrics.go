// Package metrics exports behavior tree tick statistics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zeusync/behave/internal/core/bt"
)

const namespace = "behave"

// Observer implements bt.Observer.
type Observer struct {
	registry *prometheus.Registry
	ticks    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ bt.Observer = (*Observer)(nil)

// NewObserver creates an observer with its own registry, so several
// observers never collide on metric names.
func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tree_ticks_total",
				Help:      "Behavior tree ticks by resulting status.",
			},
			[]string{"tree", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tree_tick_duration_seconds",
				Help:      "Wall time spent in one behavior tree tick.",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"tree"},
		),
	}
	o.registry.MustRegister(o.ticks, o.duration)
	return o
}

func (o *Observer) ObserveTick(tree string, status bt.Status, elapsed time.Duration) {
	o.ticks.WithLabelValues(tree, status.String()).Inc()
	o.duration.WithLabelValues(tree).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry for additional collectors.
func (o *Observer) Registry() *prometheus.Registry { return o.registry }

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}
