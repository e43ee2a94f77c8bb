package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	SelectionsConsumed prometheus.Counter
	ResultsProduced    prometheus.Counter
	SelectionMisses    prometheus.Counter // no full moon for the selected date
	SelectionErrors    prometheus.Counter // malformed selection payloads
	PipelineRunning    prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// HTTP API metrics.
	APIComputations *prometheus.CounterVec // labels: system={tropical,sidereal,unknown}, outcome={ok,not_found,invalid}
	APIRateLimited  prometheus.Counter

	// Reference data.
	TablesLoaded prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.SelectionsConsumed,
		m.ResultsProduced,
		m.SelectionMisses,
		m.SelectionErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.APIComputations,
		m.APIRateLimited,
		m.TablesLoaded,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SelectionsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moon_house",
			Name:      "selections_consumed_total",
			Help:      "Total selection messages read from the source topic.",
		}),
		ResultsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moon_house",
			Name:      "results_produced_total",
			Help:      "Total results written to the sink topic.",
		}),
		SelectionMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moon_house",
			Name:      "selection_misses_total",
			Help:      "Selections skipped because no full moon matches the date.",
		}),
		SelectionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moon_house",
			Name:      "selection_errors_total",
			Help:      "Selections skipped because the payload was malformed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "moon_house",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "moon_house",
			Name:      "batch_size",
			Help:      "Number of selections per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "moon_house",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-compute-load cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		APIComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moon_house",
			Name:      "api_computations_total",
			Help:      "House computations served over HTTP by system and outcome.",
		}, []string{"system", "outcome"}),
		APIRateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moon_house",
			Name:      "api_rate_limited_total",
			Help:      "HTTP API requests rejected by the rate limiter.",
		}),
		TablesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "moon_house",
			Name:      "reference_tables_loaded",
			Help:      "1 once the reference tables are loaded and validated.",
		}),
	}
}
