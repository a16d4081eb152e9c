package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordDelivery(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordDelivery("delivered", false, 0.2)
	m.RecordDelivery("delivered", true, 0.3)
	m.RecordDelivery("", false, 0.1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues("delivered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Redeliveries))
}

func TestMetrics_RecordGate(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordGateDecision(true)
	m.RecordGateDecision(false)
	m.RecordGateDecision(false)
	m.RecordGateConfigFault(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GateDecisions.WithLabelValues("allowed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GateDecisions.WithLabelValues("blocked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GateConfigFaults.WithLabelValues("fail_open")))
}

func TestMetrics_RecordSwept_IgnoresNonPositive(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordSwept(50)
	m.RecordSwept(0)
	m.RecordSwept(-3)

	assert.Equal(t, 50.0, testutil.ToFloat64(m.SweptRecords))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordDelivery("failed", true, 1)
		m.RecordGateDecision(true)
		m.RecordGateConfigFault(false)
		m.RecordRateLimitWait("delivery")
		m.RecordSwept(3)
		m.RecordKafkaMessage()
		m.RecordKafkaError("content.delivered")
		m.RecordKafkaConsumed("content.ingested", true)
	})
}

func TestGetDefaultMetrics_Singleton(t *testing.T) {
	assert.Same(t, GetDefaultMetrics(), GetDefaultMetrics())
}
