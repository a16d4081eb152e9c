package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gate service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	// Gate metrics
	GateDecisions    *prometheus.CounterVec
	GateConfigFaults *prometheus.CounterVec

	// Delivery metrics
	DeliveriesTotal  *prometheus.CounterVec
	Redeliveries     prometheus.Counter
	DeliveryDuration prometheus.Histogram
	RateLimitWaits   *prometheus.CounterVec

	// Ledger metrics
	SweptRecords prometheus.Counter

	// Kafka metrics
	KafkaMessagesProduced prometheus.Counter
	KafkaProduceErrors    *prometheus.CounterVec
	KafkaMessagesConsumed *prometheus.CounterVec
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance registered on the
// default Prometheus registry
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// NewMetrics creates and registers every collector on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GateDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gate_service_gate_decisions_total",
				Help: "Total number of access gate decisions",
			},
			[]string{"result"},
		),
		GateConfigFaults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gate_service_gate_config_faults_total",
				Help: "Total number of channels the bot could not inspect",
			},
			[]string{"policy"},
		),

		DeliveriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gate_service_deliveries_total",
				Help: "Total number of delivery attempts by outcome",
			},
			[]string{"outcome"},
		),
		Redeliveries: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_service_redeliveries_total",
			Help: "Total number of deliveries that replaced an earlier one",
		}),
		DeliveryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gate_service_delivery_duration_seconds",
			Help:    "Duration of delivery attempts in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RateLimitWaits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gate_service_rate_limit_waits_total",
				Help: "Total number of platform requested backoff waits",
			},
			[]string{"stage"},
		),

		SweptRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_service_ledger_swept_records_total",
			Help: "Total number of delivery records removed by retention",
		}),

		KafkaMessagesProduced: factory.NewCounter(prometheus.CounterOpts{
			Name: "gate_service_kafka_messages_produced_total",
			Help: "Total number of messages produced to Kafka",
		}),
		KafkaProduceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gate_service_kafka_produce_errors_total",
				Help: "Total number of Kafka produce errors",
			},
			[]string{"topic"},
		),
		KafkaMessagesConsumed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gate_service_kafka_messages_consumed_total",
				Help: "Total number of Kafka messages consumed",
			},
			[]string{"topic", "status"},
		),
	}
}

// RecordGateDecision records the result of a membership check
func (m *Metrics) RecordGateDecision(allowed bool) {
	if m == nil {
		return
	}
	result := "blocked"
	if allowed {
		result = "allowed"
	}
	m.GateDecisions.WithLabelValues(result).Inc()
}

// RecordGateConfigFault records a channel that could not be inspected
func (m *Metrics) RecordGateConfigFault(failOpen bool) {
	if m == nil {
		return
	}
	policy := "fail_closed"
	if failOpen {
		policy = "fail_open"
	}
	m.GateConfigFaults.WithLabelValues(policy).Inc()
}

// RecordDelivery records a delivery outcome with its duration
func (m *Metrics) RecordDelivery(outcome string, redelivered bool, duration float64) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.DeliveriesTotal.WithLabelValues(outcome).Inc()
	if redelivered {
		m.Redeliveries.Inc()
	}
	m.DeliveryDuration.Observe(duration)
}

// RecordRateLimitWait records a backoff wait at the given stage
func (m *Metrics) RecordRateLimitWait(stage string) {
	if m == nil {
		return
	}
	m.RateLimitWaits.WithLabelValues(stage).Inc()
}

// RecordSwept records records removed by the retention sweep
func (m *Metrics) RecordSwept(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.SweptRecords.Add(float64(n))
}

// RecordKafkaMessage records a produced Kafka message
func (m *Metrics) RecordKafkaMessage() {
	if m == nil {
		return
	}
	m.KafkaMessagesProduced.Inc()
}

// RecordKafkaError records a Kafka production error
func (m *Metrics) RecordKafkaError(topic string) {
	if m == nil {
		return
	}
	m.KafkaProduceErrors.WithLabelValues(topic).Inc()
}

// RecordKafkaConsumed records a consumed Kafka message and how it was handled
func (m *Metrics) RecordKafkaConsumed(topic string, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.KafkaMessagesConsumed.WithLabelValues(topic, status).Inc()
}
