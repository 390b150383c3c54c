// Copyright 2025 Certen Protocol
//
// Package metrics registers the operational counters and histograms of a
// Ledger Client. The Ledger Client increments TransactionsSubmitted; nothing
// in this module calls ObserveQuorumApprovals or ObserveTransportCallSeconds,
// so those two are recorded only by embedders that call them. Mirrors the
// teacher's use of
// github.com/prometheus/client_golang for service observability. Wiring is
// opt-in: a nil *Metrics is safe to call methods on and simply does
// nothing, so the library stays usable with zero Prometheus dependency at
// runtime for embedders that don't want it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the counters/histograms a Ledger Client instance reports.
type Metrics struct {
	TransactionsSubmitted prometheus.Counter
	QuorumApprovals       prometheus.Histogram
	TransportCallSeconds  prometheus.Histogram
}

// Register creates and registers the metrics on reg. A nil reg returns a nil
// *Metrics, whose methods are safe to call and record nothing.
func Register(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		TransactionsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vdr_transactions_submitted_total",
			Help: "Number of transactions submitted through the ledger client.",
		}),
		QuorumApprovals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vdr_quorum_approvals",
			Help:    "Distribution of approval counts observed per quorum verification.",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),
		TransportCallSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "vdr_transport_call_duration_seconds",
			Help: "Latency of individual transport calls.",
		}),
	}
	reg.MustRegister(m.TransactionsSubmitted, m.QuorumApprovals, m.TransportCallSeconds)
	return m
}

func (m *Metrics) IncTransactionsSubmitted() {
	if m == nil {
		return
	}
	m.TransactionsSubmitted.Inc()
}

func (m *Metrics) ObserveQuorumApprovals(n int) {
	if m == nil {
		return
	}
	m.QuorumApprovals.Observe(float64(n))
}

func (m *Metrics) ObserveTransportCallSeconds(seconds float64) {
	if m == nil {
		return
	}
	m.TransportCallSeconds.Observe(seconds)
}
