package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the prediction pipeline.
type Metrics struct {
	Predictions      *prometheus.CounterVec // labels: outcome={predicted,fallback_error,fallback_non_positive}
	Matches          *prometheus.CounterVec // labels: outcome={matched,fallback_area}
	MatchScore       prometheus.Histogram
	PipelineErrors   prometheus.Counter
	PipelineDuration prometheus.Histogram
	CatalogRecords   prometheus.Gauge
}

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(
		m.Predictions,
		m.Matches,
		m.MatchScore,
		m.PipelineErrors,
		m.PipelineDuration,
		m.CatalogRecords,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "complaints_ml",
			Name:      "predictions_total",
			Help:      "Predictions served, by whether the model value or the fallback constant was used.",
		}, []string{"outcome"}),
		Matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "complaints_ml",
			Name:      "address_matches_total",
			Help:      "Address matches, by whether the matched area or the fallback area was used.",
		}, []string{"outcome"}),
		MatchScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "complaints_ml",
			Name:      "match_score",
			Help:      "Raw fuzzy match score of incoming addresses.",
			Buckets:   scoreBuckets,
		}),
		PipelineErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "complaints_ml",
			Name:      "pipeline_errors_total",
			Help:      "Prediction requests that failed outright.",
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "complaints_ml",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of a full address-to-prediction run.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		}),
		CatalogRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "complaints_ml",
			Name:      "catalog_records",
			Help:      "Number of historical complaint records loaded at startup.",
		}),
	}
}
