// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for vote traffic.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Read outcomes
const (
	ReadFound     = "found"
	ReadNotFound  = "not_found"
	ReadMalformed = "malformed"
	ReadError     = "error"
)

// VoteMetrics counts accepted, rejected and read votes.
// The zero value is usable; counters only reach Prometheus after Register.
type VoteMetrics struct {
	accepted      prometheus.Counter
	rejected      *prometheus.CounterVec
	storageErrors prometheus.Counter
	duplicates    prometheus.Counter
	reads         *prometheus.CounterVec
	nonceRounds   prometheus.Histogram
	registerOnce  sync.Once
}

// Register registers the counters with the given registry.
// If registry is nil, this is a no-op. Subsequent calls are no-ops.
func (m *VoteMetrics) Register(registry prometheus.Registerer) {
	if m == nil || registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.accepted = factory.NewCounter(prometheus.CounterOpts{
			Name: "czoodle_votes_accepted_total",
			Help: "Total number of votes stored",
		})
		m.rejected = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "czoodle_votes_rejected_total",
			Help: "Total number of votes rejected by validation, by offending field",
		}, []string{"field"})
		m.storageErrors = factory.NewCounter(prometheus.CounterOpts{
			Name: "czoodle_votes_storage_errors_total",
			Help: "Total number of votes that failed to be stored",
		})
		m.duplicates = factory.NewCounter(prometheus.CounterOpts{
			Name: "czoodle_votes_duplicate_total",
			Help: "Total number of votes rejected because the uuid was already used",
		})
		m.reads = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "czoodle_vote_reads_total",
			Help: "Total number of vote reads, by outcome",
		}, []string{"outcome"})
		m.nonceRounds = factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "czoodle_vote_nonce_rounds",
			Help:    "Proof-of-work rounds carried by accepted votes",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		})
	})
}

// IncAccepted records a stored vote and its proof-of-work length
func (m *VoteMetrics) IncAccepted(rounds int) {
	if m == nil || m.accepted == nil {
		return
	}
	m.accepted.Inc()
	m.nonceRounds.Observe(float64(rounds))
}

// IncRejected records a validation failure on field
func (m *VoteMetrics) IncRejected(field string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(field).Inc()
}

// IncStorageError records a failed write
func (m *VoteMetrics) IncStorageError() {
	if m == nil || m.storageErrors == nil {
		return
	}
	m.storageErrors.Inc()
}

// IncDuplicate records a write refused because the uuid exists
func (m *VoteMetrics) IncDuplicate() {
	if m == nil || m.duplicates == nil {
		return
	}
	m.duplicates.Inc()
}

// IncRead records a read with one of the Read* outcomes
func (m *VoteMetrics) IncRead(outcome string) {
	if m == nil || m.reads == nil {
		return
	}
	m.reads.WithLabelValues(outcome).Inc()
}
