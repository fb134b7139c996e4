// Package metrics exposes Prometheus counters for store operations,
// emitted events, and storage write failures.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts state container operations by name.
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "satpocket_operations_total",
		Help: "State container operations invoked, by operation name.",
	}, []string{"op"})

	// EventsTotal counts events emitted on the bus by event name.
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "satpocket_events_total",
		Help: "Events emitted on the state bus, by event name.",
	}, []string{"event"})

	// StorageWriteFailures counts failed durable writes by operation.
	StorageWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "satpocket_storage_write_failures_total",
		Help: "Durable storage writes that failed, by operation.",
	}, []string{"op"})

	// ListenerPanics counts recovered panics in event listeners.
	ListenerPanics = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "satpocket_listener_panics_total",
		Help: "Panics recovered from event listeners, by event name.",
	}, []string{"event"})
)
