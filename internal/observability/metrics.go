package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for loading
// bridge data and planning inspections.
type Metrics struct {
	RowsExtracted   prometheus.Counter
	RecordsLoaded   prometheus.Counter
	NormalizeErrors prometheus.Counter
	StoreSize       prometheus.Gauge
	LoadDuration    prometheus.Histogram

	// Assignment metrics.
	BridgesAssigned     *prometheus.CounterVec // labels: tier={high,medium,low}
	InspectorsPlanned   prometheus.Counter
	InspectorsSaturated prometheus.Counter
	AssignDuration      prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsExtracted,
		m.RecordsLoaded,
		m.NormalizeErrors,
		m.StoreSize,
		m.LoadDuration,
		m.BridgesAssigned,
		m.InspectorsPlanned,
		m.InspectorsSaturated,
		m.AssignDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bridge_inspection",
			Name:      "rows_extracted_total",
			Help:      "Raw CSV rows read from the export.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bridge_inspection",
			Name:      "records_loaded_total",
			Help:      "Normalized bridge records loaded into the store.",
		}),
		NormalizeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bridge_inspection",
			Name:      "normalize_errors_total",
			Help:      "Rows that failed normalization and aborted a load.",
		}),
		StoreSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bridge_inspection",
			Name:      "store_records",
			Help:      "Bridge records currently held in memory.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bridge_inspection",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete extract-normalize-load run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		BridgesAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bridge_inspection",
			Name:      "bridges_assigned_total",
			Help:      "Bridges assigned to inspectors by priority tier.",
		}, []string{"tier"}),
		InspectorsPlanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bridge_inspection",
			Name:      "inspectors_planned_total",
			Help:      "Inspectors processed by the assigner.",
		}),
		InspectorsSaturated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bridge_inspection",
			Name:      "inspectors_saturated_total",
			Help:      "Inspectors that reached the per-inspector capacity.",
		}),
		AssignDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bridge_inspection",
			Name:      "assign_duration_seconds",
			Help:      "Duration of one assignment run across all inspectors.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

// WriteTextfile writes every metric in the default registry to path in the
// node_exporter textfile format. Batch runs use this instead of a scrape endpoint.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
