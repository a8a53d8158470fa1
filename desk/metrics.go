package desk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settledQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "desk_settled_queries_total",
		Help: "Queries that survived duplicate suppression and the audit window",
	}, []string{"view"})
	staleResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "desk_stale_results_discarded_total",
		Help: "Filter computations abandoned because a newer one was issued",
	}, []string{"view"})
	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "desk_mutations_total",
		Help: "Create/update submissions by outcome",
	}, []string{"kind", "op", "outcome"})
	openDesks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "desk_operator_sessions",
		Help: "Connected operator desks",
	})
)
