package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the research gap analysis
// service. Metrics are organized by subsystem: analyses, searches, and paper
// sources. All counters and histograms are registered via promauto for
// automatic registration with the default Prometheus registry.
type Metrics struct {
	// AnalysesStarted counts the total number of comprehensive analyses initiated.
	AnalysesStarted prometheus.Counter

	// AnalysesCompleted counts analyses that produced a full result.
	AnalysesCompleted prometheus.Counter

	// AnalysesDegraded counts analyses that returned the degraded fallback result.
	AnalysesDegraded prometheus.Counter

	// AnalysisDuration observes the end-to-end duration of analyses in seconds.
	AnalysisDuration prometheus.Histogram

	// SearchesStarted counts aggregated searches initiated.
	SearchesStarted prometheus.Counter

	// PapersPerSearch observes the distribution of deduplicated papers per search.
	PapersPerSearch prometheus.Histogram

	// PapersDuplicate counts duplicate papers dropped during deduplication.
	PapersDuplicate prometheus.Counter

	// MockFallbacks counts the times mock data was substituted, labeled by reason
	// ("source_error", "no_results").
	MockFallbacks *prometheus.CounterVec

	// SourceRequestsTotal counts HTTP requests to paper source APIs, labeled by
	// source and endpoint.
	SourceRequestsTotal *prometheus.CounterVec

	// SourceRequestsFailed counts failed HTTP requests to paper source APIs,
	// labeled by source, endpoint, and error type.
	SourceRequestsFailed *prometheus.CounterVec

	// SourceRequestDuration observes HTTP request duration to paper source APIs
	// in seconds, labeled by source and endpoint.
	SourceRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		AnalysesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_started_total",
			Help:      "Total number of comprehensive analyses started",
		}),
		AnalysesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_completed_total",
			Help:      "Total number of comprehensive analyses completed successfully",
		}),
		AnalysesDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_degraded_total",
			Help:      "Total number of analyses that returned the degraded fallback",
		}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
		SearchesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Total number of aggregated paper searches started",
		}),
		PapersPerSearch: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "papers_per_search",
			Help:      "Distribution of deduplicated papers returned per search",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 10},
		}),
		PapersDuplicate: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "papers_duplicate_total",
			Help:      "Total number of duplicate papers dropped during deduplication",
		}),
		MockFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mock_fallbacks_total",
			Help:      "Total number of mock data substitutions by reason",
		}, []string{"reason"}),
		SourceRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Total HTTP requests to paper source APIs",
		}, []string{"source", "endpoint"}),
		SourceRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_failed_total",
			Help:      "Total failed HTTP requests to paper source APIs",
		}, []string{"source", "endpoint", "error_type"}),
		SourceRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_request_duration_seconds",
			Help:      "HTTP request duration to paper source APIs in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "endpoint"}),
	}
}

// RecordAnalysisStarted increments the started counter.
func (m *Metrics) RecordAnalysisStarted() {
	m.AnalysesStarted.Inc()
}

// RecordAnalysisCompleted records a completed analysis and its duration.
func (m *Metrics) RecordAnalysisCompleted(durationSeconds float64) {
	m.AnalysesCompleted.Inc()
	m.AnalysisDuration.Observe(durationSeconds)
}

// RecordAnalysisDegraded records an analysis that returned the degraded fallback.
func (m *Metrics) RecordAnalysisDegraded(durationSeconds float64) {
	m.AnalysesDegraded.Inc()
	m.AnalysisDuration.Observe(durationSeconds)
}

// RecordSearch records an aggregated search and its deduplicated paper count.
func (m *Metrics) RecordSearch(papers int) {
	m.SearchesStarted.Inc()
	m.PapersPerSearch.Observe(float64(papers))
}

// RecordDuplicate increments the duplicate paper counter.
func (m *Metrics) RecordDuplicate() {
	m.PapersDuplicate.Inc()
}

// RecordMockFallback records a mock data substitution with the given reason.
func (m *Metrics) RecordMockFallback(reason string) {
	m.MockFallbacks.WithLabelValues(reason).Inc()
}

// RecordSourceRequest records a successful source API request.
func (m *Metrics) RecordSourceRequest(source, endpoint string, durationSeconds float64) {
	m.SourceRequestsTotal.WithLabelValues(source, endpoint).Inc()
	m.SourceRequestDuration.WithLabelValues(source, endpoint).Observe(durationSeconds)
}

// RecordSourceRequestFailed records a failed source API request.
func (m *Metrics) RecordSourceRequestFailed(source, endpoint, errorType string) {
	m.SourceRequestsFailed.WithLabelValues(source, endpoint, errorType).Inc()
}
