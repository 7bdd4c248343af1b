package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart engine operation outcomes.
type CartMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	items    *prometheus.GaugeVec
}

// NewCartMetrics registers the cart metrics on the provided registerer. A nil
// registerer yields a no-op recorder, which keeps worker wiring optional.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_operation_duration_seconds",
		Help:    "Duration of cart engine operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "cart_kind"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operation_success",
		Help: "Successful cart engine operations.",
	}, []string{"operation", "cart_kind"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operation_failure",
		Help: "Failed cart engine operations.",
	}, []string{"operation", "cart_kind"})
	items := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cart_total_items",
		Help: "Item count of the most recently mutated cart.",
	}, []string{"cart_kind"})
	reg.MustRegister(duration, success, failure, items)
	return &CartMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		items:    items,
	}
}

// ObserveDuration records how long the named operation took.
func (c *CartMetrics) ObserveDuration(operation, kind string, d time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(operation), normalizeLabel(kind)).Observe(d.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (c *CartMetrics) IncSuccess(operation, kind string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(operation), normalizeLabel(kind)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (c *CartMetrics) IncFailure(operation, kind string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(operation), normalizeLabel(kind)).Inc()
}

// SetTotalItems records the item count after a mutation.
func (c *CartMetrics) SetTotalItems(kind string, count int) {
	if c == nil || c.items == nil {
		return
	}
	c.items.WithLabelValues(normalizeLabel(kind)).Set(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
