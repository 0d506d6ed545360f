package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpdatesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "financeapp_updates_received_total",
		Help: "Authorized webhook updates accepted for processing.",
	})

	IntentsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financeapp_intents_resolved_total",
		Help: "Resolved intents by action, including unknown.",
	}, []string{"action"})

	TransportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "financeapp_model_transport_failures_total",
		Help: "Generative-model calls that failed at the transport level.",
	})

	RemindersDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "financeapp_reminders_delivered_total",
		Help: "Reminders delivered and consumed by the sweep job.",
	})
)
