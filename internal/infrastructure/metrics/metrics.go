package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters. HTTP-level metrics live in the middleware package.
var (
	// RecalcsRun counts full balance replays by ledger kind
	// ("party" or "bank").
	RecalcsRun = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradeledger_recalcs_total",
			Help: "Total number of balance replays",
		},
		[]string{"ledger"},
	)

	// SourceEventsProcessed counts source document writes by kind and
	// operation.
	SourceEventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradeledger_source_events_total",
			Help: "Total number of source document operations",
		},
		[]string{"kind", "operation"},
	)

	// DerivedEntriesWritten counts ledger entries regenerated from
	// source documents.
	DerivedEntriesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradeledger_derived_entries_total",
		Help: "Total number of derived ledger entries written",
	})

	// MirrorFailures counts bank mirror updates that failed and were
	// logged instead of propagated.
	MirrorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradeledger_mirror_failures_total",
		Help: "Total number of failed bank mirror updates",
	})

	// ConsistencyDiscrepancies counts cached balances that disagreed
	// with a replay.
	ConsistencyDiscrepancies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradeledger_consistency_discrepancies_total",
		Help: "Total number of cached balance discrepancies detected",
	})

	// AuthAttempts counts login attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradeledger_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	// DBRetries counts transactions retried after transient database
	// errors.
	DBRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradeledger_db_retries_total",
		Help: "Total number of retried database transactions",
	})
)
