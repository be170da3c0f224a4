// Package observability provides Prometheus collectors for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionActions counts connection workflow actions by action and outcome.
	ConnectionActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venturelink_connection_actions_total",
		Help: "Total connection workflow actions by action and outcome",
	}, []string{"action", "outcome"})

	// NotificationsCreated counts notifications written by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venturelink_notifications_created_total",
		Help: "Total notifications created by type",
	}, []string{"type"})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "venturelink_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venturelink_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// RecordConnectionAction increments the connection action counter.
func RecordConnectionAction(action, outcome string) {
	ConnectionActions.WithLabelValues(action, outcome).Inc()
}

// RecordNotificationCreated increments the notification counter for the type.
func RecordNotificationCreated(notificationType string) {
	NotificationsCreated.WithLabelValues(notificationType).Inc()
}
