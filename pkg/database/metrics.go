package database

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the session's Prometheus collectors. A nil *metrics records
// nothing.
type metrics struct {
	statements   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	transactions *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		statements: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_statements_total",
				Help: "Total number of executed SQL statements",
			},
			[]string{"kind", "outcome"},
		)),
		duration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "strata_statement_duration_seconds",
				Help:    "Duration of SQL statements in seconds",
				Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"kind"},
		)),
		transactions: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strata_transactions_total",
				Help: "Total number of transactions by outcome",
			},
			[]string{"outcome"},
		)),
	}
}

// register registers c, reusing an identical collector that is already
// registered so several sessions can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) observeStatement(kind string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.statements.WithLabelValues(kind, outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *metrics) observeTransaction(outcome string) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(outcome).Inc()
}
