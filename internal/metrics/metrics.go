// Package metrics provides Prometheus instrumentation for the
// ingestion pipeline. All metrics are exposed on the /metrics HTTP
// endpoint for scraping.
//
// Metrics exposed:
//   - motion_mqtt_messages_received_total: Counter of inbound messages by topic
//   - motion_decode_failures_total: Counter of dropped malformed payloads by topic
//   - motion_samples_stored_total: Counter of stored samples by stream
//   - motion_connection_state: Gauge of the broker session state (0=disconnected, 1=connecting, 2=connected, 3=failed)
//   - motion_history_clears_total: Counter of clear-history commands
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"motion-backend/internal/models"
)

type Metrics struct {
	MessagesReceived *prometheus.CounterVec
	DecodeFailures   *prometheus.CounterVec
	SamplesStored    *prometheus.CounterVec
	ConnectionState  prometheus.Gauge
	HistoryClears    prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		MessagesReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "motion_mqtt_messages_received_total",
			Help: "Total number of MQTT messages received by topic",
		}, []string{"topic"}),

		DecodeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "motion_decode_failures_total",
			Help: "Total number of malformed payloads dropped by topic",
		}, []string{"topic"}),

		SamplesStored: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "motion_samples_stored_total",
			Help: "Total number of samples written to the store by stream",
		}, []string{"stream"}),

		ConnectionState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "motion_connection_state",
			Help: "Current broker session state (0=disconnected, 1=connecting, 2=connected, 3=failed)",
		}),

		HistoryClears: promauto.NewCounter(prometheus.CounterOpts{
			Name: "motion_history_clears_total",
			Help: "Total number of clear-history commands processed",
		}),
	}
}

func (m *Metrics) RecordMessage(topic string) {
	m.MessagesReceived.WithLabelValues(topic).Inc()
}

func (m *Metrics) RecordDecodeFailure(topic string) {
	m.DecodeFailures.WithLabelValues(topic).Inc()
}

func (m *Metrics) RecordSampleStored(stream string) {
	m.SamplesStored.WithLabelValues(stream).Inc()
}

func (m *Metrics) SetConnectionState(state models.ConnectionState) {
	m.ConnectionState.Set(float64(state))
}

func (m *Metrics) RecordHistoryClear() {
	m.HistoryClears.Inc()
}
