// Package metrics exports service activity to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "moneroreq"

// PrometheusCollector implements paymentrequest.MetricsCollector.
type PrometheusCollector struct {
	duration *prometheus.HistogramVec
	results  *prometheus.CounterVec
	cache    *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

// NewPrometheusCollector creates the collectors and registers them on reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of payment request operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Payment request operations by result.",
		}, []string{"operation", "result"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Decoded code cache lookups by outcome.",
		}, []string{"operation", "outcome"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed payment request operations by error code.",
		}, []string{"operation", "code"}),
	}
	reg.MustRegister(c.duration, c.results, c.cache, c.errors)
	return c
}

func (c *PrometheusCollector) RecordOperationDuration(operation string, d time.Duration) {
	c.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordOperationResult(operation, result string) {
	c.results.WithLabelValues(operation, result).Inc()
}

func (c *PrometheusCollector) RecordCacheHit(operation string) {
	c.cache.WithLabelValues(operation, "hit").Inc()
}

func (c *PrometheusCollector) RecordCacheMiss(operation string) {
	c.cache.WithLabelValues(operation, "miss").Inc()
}

func (c *PrometheusCollector) RecordError(operation, code string) {
	c.errors.WithLabelValues(operation, code).Inc()
}
