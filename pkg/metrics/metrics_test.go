package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", "200", time.Millisecond)
		m.IncReservationOutcome("create", "ok")
		m.ObserveStoreOperation("load", "ok", time.Millisecond)
		m.IncStoreRetry("load")
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "test")

	m.IncReservationOutcome("create", "slot_full")
	m.IncReservationOutcome("create", "slot_full")
	m.IncStoreRetry("overwrite")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("create", "slot_full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeRetries.WithLabelValues("overwrite")))
}
