// Package metrics holds the prometheus instruments for the aggregator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsUpserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agendaveiro_events_upserted_total",
		Help: "Events written to the store, by source.",
	}, []string{"source"})

	AdapterRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agendaveiro_adapter_runs_total",
		Help: "Adapter executions, by adapter name and outcome.",
	}, []string{"adapter", "status"})

	StoreEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agendaveiro_store_events",
		Help: "Total events in the store after the last run.",
	})

	StoreFutureEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agendaveiro_store_future_events",
		Help: "Events in the future view after the last run.",
	})
)
