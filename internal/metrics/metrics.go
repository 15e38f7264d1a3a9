// Package metrics provides Prometheus metrics for the messaging server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

var (
	// ActiveConnections tracks authenticated push connections per transport.
	ActiveConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "slashdm_active_connections",
			Help: "Number of currently registered push connections",
		},
		[]string{"transport"},
	)

	// AuthFailures counts rejected handshakes.
	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slashdm_auth_failures_total",
			Help: "Total number of rejected push handshakes",
		},
		[]string{"transport"},
	)

	// BroadcastEvents counts chat updates handed to the broadcaster.
	BroadcastEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slashdm_broadcast_events_total",
			Help: "Total number of chat update events broadcast",
		},
		[]string{"type"},
	)

	// DroppedPushes counts deliveries skipped because a connection was full or closed.
	DroppedPushes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slashdm_dropped_pushes_total",
			Help: "Total number of event pushes dropped",
		},
	)
)

// RecordConnectionOpened increments the active connection gauge.
func RecordConnectionOpened(transport string) {
	ActiveConnections.WithLabelValues(transport).Inc()
}

// RecordConnectionClosed decrements the active connection gauge.
func RecordConnectionClosed(transport string) {
	ActiveConnections.WithLabelValues(transport).Dec()
}

// RecordAuthFailure increments the handshake rejection counter.
func RecordAuthFailure(transport string) {
	AuthFailures.WithLabelValues(transport).Inc()
}

// RecordBroadcast increments the broadcast counter for the update type.
func RecordBroadcast(updateType string) {
	BroadcastEvents.WithLabelValues(updateType).Inc()
}

// RecordDroppedPush increments the dropped push counter.
func RecordDroppedPush() {
	DroppedPushes.Inc()
}
