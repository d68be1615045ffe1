// Package metrics exposes Prometheus counters for the enrichment path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Lookups counts outbound enrichment calls by provider and outcome
	// (ok, error).
	Lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netpulse_lookups_total",
		Help: "Outbound enrichment lookups by provider and outcome.",
	}, []string{"provider", "outcome"})

	// CacheResults counts lookup cache reads by provider and result
	// (hit, miss).
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netpulse_lookup_cache_total",
		Help: "Lookup cache reads by provider and result.",
	}, []string{"provider", "result"})
)
