package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "calendar_import"

var (
	Imports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "Import attempts by provider and outcome.",
	}, []string{"source", "outcome"})

	ImportedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_imported_total",
		Help:      "Events written by imports.",
	}, []string{"source"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Time spent fetching a remote calendar.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	RelayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "google_relay_requests_total",
		Help:      "Google relay requests by response status.",
	}, []string{"status"})
)
