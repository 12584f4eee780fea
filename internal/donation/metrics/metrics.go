package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the donation lifecycle engine.
// Tracks transition outcomes and ledger round-trip durations.
type Metrics struct {
	Transitions       *prometheus.CounterVec
	Rollbacks         prometheus.Counter
	StaleMarks        prometheus.Counter
	BusyRejections    prometheus.Counter
	LedgerDuration    prometheus.Histogram
	ReconcileDuration prometheus.Histogram
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the lifecycle metrics on reg. Tests pass a fresh
// registry so repeated construction cannot collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inkind_donation_transitions_total",
			Help: "Donation transition requests by target status and outcome",
		}, []string{"to", "outcome"}),
		Rollbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "inkind_donation_rollbacks_total",
			Help: "Optimistic updates rolled back after a ledger veto",
		}),
		StaleMarks: factory.NewCounter(prometheus.CounterOpts{
			Name: "inkind_donation_stale_marks_total",
			Help: "View entries flagged stale after an ambiguous write or failed reconcile",
		}),
		BusyRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "inkind_donation_busy_rejections_total",
			Help: "Transition requests refused because one was already in flight",
		}),
		LedgerDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "inkind_ledger_write_duration_seconds",
			Help:    "Duration of ledger write calls",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ReconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "inkind_reconcile_duration_seconds",
			Help:    "Duration of post-write reconcile reads",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// RecordTransition counts one finished transition request.
func (m *Metrics) RecordTransition(to, outcome string) {
	m.Transitions.WithLabelValues(to, outcome).Inc()
}

// ObserveLedgerWrite records the duration of a ledger write.
// Call with time.Now() at the start of the call.
func (m *Metrics) ObserveLedgerWrite(start time.Time) {
	m.LedgerDuration.Observe(time.Since(start).Seconds())
}

// ObserveReconcile records the duration of a reconcile read.
func (m *Metrics) ObserveReconcile(start time.Time) {
	m.ReconcileDuration.Observe(time.Since(start).Seconds())
}
