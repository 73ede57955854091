// Package metrics exposes Prometheus collectors for the mail pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesReceived counts inbound messages that parsed successfully.
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailtrash",
		Subsystem: "intake",
		Name:      "messages_received_total",
		Help:      "Inbound messages accepted and stored.",
	})

	// MessagesDropped counts messages discarded because parsing failed.
	MessagesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailtrash",
		Subsystem: "intake",
		Name:      "messages_dropped_total",
		Help:      "Inbound messages dropped due to parse failures.",
	})

	// NotificationsSent counts successfully delivered notifications.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailtrash",
		Subsystem: "notify",
		Name:      "notifications_sent_total",
		Help:      "Notifications delivered to the configured channel.",
	})

	// NotificationErrors counts notification attempts that failed.
	NotificationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailtrash",
		Subsystem: "notify",
		Name:      "notification_errors_total",
		Help:      "Notification attempts that returned an error.",
	})

	// MessagesExpired counts entries reclaimed by the store sweeper.
	MessagesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailtrash",
		Subsystem: "store",
		Name:      "messages_expired_total",
		Help:      "Stored messages removed after their TTL elapsed.",
	})

	// StoreSize tracks the number of messages currently held in memory.
	StoreSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mailtrash",
		Subsystem: "store",
		Name:      "messages",
		Help:      "Messages currently held in the in-memory store.",
	})

	// ViewHits counts web view lookups that found a live message.
	ViewHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailtrash",
		Subsystem: "web",
		Name:      "view_hits_total",
		Help:      "Web view requests that found a live message.",
	})

	// ViewMisses counts web view lookups for unknown or expired ids.
	ViewMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailtrash",
		Subsystem: "web",
		Name:      "view_misses_total",
		Help:      "Web view requests for unknown or expired messages.",
	})
)
