package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the paper catalog service.
// Metrics are organized by subsystem: dataset loading, catalog queries,
// browse sessions, and formula rendering. All counters and histograms are
// registered via promauto for automatic registration with the default
// Prometheus registry.
type Metrics struct {
	// DatasetsLoaded counts dataset documents that loaded successfully.
	DatasetsLoaded prometheus.Counter

	// DatasetsFailed counts dataset documents that failed to fetch or parse.
	DatasetsFailed prometheus.Counter

	// PapersLoaded counts paper records added to the collection at load time.
	PapersLoaded prometheus.Counter

	// SearchesTotal counts catalog search evaluations by kind ("query", "session").
	SearchesTotal *prometheus.CounterVec

	// SearchDuration observes search evaluation duration in seconds.
	SearchDuration prometheus.Histogram

	// SearchResults observes the distribution of result counts per search.
	SearchResults prometheus.Histogram

	// SuggestionsTotal counts suggestion lookups.
	SuggestionsTotal prometheus.Counter

	// SessionsCreated counts browse sessions created.
	SessionsCreated prometheus.Counter

	// SessionsExpired counts browse sessions removed by the idle sweeper.
	SessionsExpired prometheus.Counter

	// FormulasRendered counts formulas rendered successfully.
	FormulasRendered prometheus.Counter

	// FormulasFailed counts formulas that fell back to their literal source.
	FormulasFailed prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// Dataset loading
		DatasetsLoaded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_loaded_total",
			Help:      "Total number of dataset documents loaded successfully",
		}),
		DatasetsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_failed_total",
			Help:      "Total number of dataset documents that failed to load",
		}),
		PapersLoaded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "papers_loaded_total",
			Help:      "Total number of paper records loaded into the collection",
		}),

		// Catalog queries
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of catalog searches evaluated by kind",
		}, []string{"kind"}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of catalog search evaluations in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		SearchResults: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of papers matched per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		SuggestionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_total",
			Help:      "Total number of suggestion lookups",
		}),

		// Browse sessions
		SessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Total number of browse sessions created",
		}),
		SessionsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Total number of browse sessions expired by the idle sweeper",
		}),

		// Formula rendering
		FormulasRendered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formulas_rendered_total",
			Help:      "Total number of formulas rendered successfully",
		}),
		FormulasFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formulas_failed_total",
			Help:      "Total number of formulas that fell back to literal source",
		}),
	}
}

// RecordDatasetLoaded records a successfully loaded dataset document and the
// number of papers it contributed.
func (m *Metrics) RecordDatasetLoaded(paperCount int) {
	m.DatasetsLoaded.Inc()
	m.PapersLoaded.Add(float64(paperCount))
}

// RecordDatasetFailed records a dataset document that failed to load.
func (m *Metrics) RecordDatasetFailed() {
	m.DatasetsFailed.Inc()
}

// RecordSearch records a search evaluation.
func (m *Metrics) RecordSearch(kind string, resultCount int, durationSeconds float64) {
	m.SearchesTotal.WithLabelValues(kind).Inc()
	m.SearchDuration.Observe(durationSeconds)
	m.SearchResults.Observe(float64(resultCount))
}

// RecordSuggestion records a suggestion lookup.
func (m *Metrics) RecordSuggestion() {
	m.SuggestionsTotal.Inc()
}

// RecordSessionCreated records a browse session creation.
func (m *Metrics) RecordSessionCreated() {
	m.SessionsCreated.Inc()
}

// RecordSessionsExpired records browse sessions removed by the idle sweeper.
func (m *Metrics) RecordSessionsExpired(count int) {
	m.SessionsExpired.Add(float64(count))
}

// RecordFormulaRendered records a successfully rendered formula.
func (m *Metrics) RecordFormulaRendered() {
	m.FormulasRendered.Inc()
}

// RecordFormulaFailed records a formula that degraded to its literal source.
func (m *Metrics) RecordFormulaFailed() {
	m.FormulasFailed.Inc()
}
