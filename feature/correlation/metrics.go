package correlation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// runsTotal counts runs by mode and outcome (ok, invalid, failed).
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "correlator",
		Subsystem: "runs",
		Name:      "total",
		Help:      "Correlation runs by mode and outcome",
	}, []string{"mode", "outcome"})

	// runDuration measures complete runs, source loading included.
	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "correlator",
		Subsystem: "runs",
		Name:      "duration_seconds",
		Help:      "Correlation run duration in seconds",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"mode"})

	// bucketElements counts report elements by bucket.
	bucketElements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "correlator",
		Subsystem: "report",
		Name:      "elements_total",
		Help:      "Elements classified into each report bucket",
	}, []string{"bucket"})

	// sourceLoads counts source loads by kind and whether the cache served them.
	sourceLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "correlator",
		Subsystem: "sources",
		Name:      "loads_total",
		Help:      "Record set loads by source kind and cache result",
	}, []string{"kind", "cache"})
)

// modeInvalid labels runs whose request failed validation.
const modeInvalid = "invalid"

// Bucket label values.
const (
	bucketOneToOne       = "one_to_one"
	bucketOneToMany      = "one_to_many"
	bucketNoCorrelationA = "no_correlation_a"
	bucketNoCorrelationB = "no_correlation_b"
)
