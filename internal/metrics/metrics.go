package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbc_analyses_total",
			Help: "Total number of analyzed documents by outcome status",
		},
		[]string{"status"},
	)

	AnalysesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbc_analyses_failed_total",
			Help: "Total number of analyses aborted by a fatal error",
		},
		[]string{"reason"},
	)

	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbc_generation_requests_total",
			Help: "Total number of generation backend calls",
		},
		[]string{"provider", "result"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sbc_generation_duration_seconds",
			Help:    "Duration of generation backend calls in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 60, 90, 120, 180},
		},
		[]string{"provider"},
	)

	ExtractionRegions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sbc_extraction_regions_total",
			Help: "Tagged regions found in generation replies by region and state",
		},
		[]string{"region", "state"},
	)
)
