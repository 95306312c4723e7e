package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream request outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// UpstreamRequests counts calls to the external protein databases,
	// partitioned by source (uniprot, string, pdb, alphafold) and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "protein_explorer_upstream_requests_total",
		Help: "Upstream API requests by source and outcome.",
	}, []string{"source", "outcome"})

	// UpstreamDuration tracks upstream call latency per source.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "protein_explorer_upstream_request_duration_seconds",
		Help:    "Upstream API request duration by source.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
)
