// Package metrics exposes a small set of prometheus counters describing
// pg-embed's own lifecycle, not the embedded server's internals: lifecycle
// status transitions, acquisition outcomes (hit/miss/failure), and command
// executor exit classes. This is ambient observability — analogous to how
// cloudnative-pg-cloudnative-pg and quay-claircore expose
// prometheus.Counter/CounterVec for their own control loops — not the SQL
// wire protocol or query metrics spec.md's Non-goals exclude.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// LifecycleTransitions counts Server status transitions by target
	// state (e.g. "Started", "Failure").
	LifecycleTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pg_embed",
		Name:      "lifecycle_transitions_total",
		Help:      "Count of lifecycle manager status transitions, by target status.",
	}, []string{"status"})

	// AcquisitionOutcomes counts acquisition coordinator results by
	// outcome: "hit" (cache already populated when Setup began), "miss"
	// (cache not yet populated when Setup began), "failure".
	AcquisitionOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pg_embed",
		Name:      "acquisition_outcomes_total",
		Help:      "Count of acquisition coordinator outcomes, by outcome.",
	}, []string{"outcome"})

	// ExecutorExits counts command executor completions by class: "ok",
	// "exit_failure", "timeout", "pump_error", "process_error".
	ExecutorExits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pg_embed",
		Name:      "executor_exits_total",
		Help:      "Count of command executor completions, by exit class.",
	}, []string{"command", "class"})
)

// MustRegister registers all pg-embed metrics with reg. Callers that embed
// pg-embed inside a larger service with its own prometheus.Registry are
// expected to call this once; it is never called implicitly so that
// repeated Server construction in tests doesn't panic on duplicate
// registration.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(LifecycleTransitions, AcquisitionOutcomes, ExecutorExits)
}
