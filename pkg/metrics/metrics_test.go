package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilRegistererIsNoOp(t *testing.T) {
	t.Parallel()

	m := NewCartMetrics(nil)
	m.IncSuccess("add_item", "pharmacy")
	m.IncFailure("add_item", "pharmacy")
	m.ObserveDuration("add_item", "pharmacy", time.Millisecond)
	m.SetTotalItems("pharmacy", 3)
}

func TestCountersIncrement(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.IncSuccess("add_item", "pharmacy")
	m.IncSuccess("add_item", "pharmacy")
	m.IncFailure("clear", "")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.success.WithLabelValues("add_item", "pharmacy")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.failure.WithLabelValues("clear", "unknown")))
}

func TestGaugeTracksLastValue(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.SetTotalItems("diagnostics", 5)
	m.SetTotalItems("diagnostics", 2)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.items.WithLabelValues("diagnostics")))
}
