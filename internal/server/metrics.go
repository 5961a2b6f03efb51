package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	suggestRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "powerbench_suggest_requests_total",
		Help: "Completed component suggestion requests by class.",
	}, []string{"class"})

	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "powerbench_sweeps_total",
		Help: "Completed permutation sweeps.",
	})

	simulationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "powerbench_simulations_total",
		Help: "Individual combination simulations started.",
	})

	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "powerbench_sweep_duration_seconds",
		Help:    "Wall-clock duration of completed sweeps.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})
)
