package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/formsearch/internal/domain/search/mode"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formsearch",
			Name:      "search_requests_total",
			Help:      "Total number of catalog searches",
		},
		[]string{"mode", "limited"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "formsearch",
			Name:      "search_duration_seconds",
			Help:      "Catalog search latency in seconds",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"mode"},
	)

	SearchTotalMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "formsearch",
			Name:      "search_total_matches",
			Help:      "Matches per search before truncation",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	IndexRebuildsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "formsearch",
			Name:      "index_rebuilds_total",
			Help:      "Total number of search index rebuilds",
		},
	)

	IndexRebuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "formsearch",
			Name:      "index_rebuild_duration_seconds",
			Help:      "Search index rebuild duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	IndexForms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "formsearch",
			Name:      "index_forms",
			Help:      "Number of forms in the search index",
		},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers Prometheus search metrics on the default registry.
// Repeated calls are no-ops.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SearchTotalMatches)
		prometheus.MustRegister(IndexRebuildsTotal)
		prometheus.MustRegister(IndexRebuildDuration)
		prometheus.MustRegister(IndexForms)
	})
}

// SearchObserver feeds search and index telemetry into Prometheus.
type SearchObserver struct{}

// NewSearchObserver creates an observer backed by the package metrics.
func NewSearchObserver() *SearchObserver {
	return &SearchObserver{}
}

// ObserveSearch records one completed search.
func (SearchObserver) ObserveSearch(m mode.Mode, latency time.Duration, totalMatches int, limited bool) {
	lim := "false"
	if limited {
		lim = "true"
	}
	SearchRequestsTotal.WithLabelValues(string(m), lim).Inc()
	SearchDuration.WithLabelValues(string(m)).Observe(latency.Seconds())
	SearchTotalMatches.Observe(float64(totalMatches))
}

// ObserveRebuild records one index rebuild.
func (SearchObserver) ObserveRebuild(size int, latency time.Duration) {
	IndexRebuildsTotal.Inc()
	IndexRebuildDuration.Observe(latency.Seconds())
	IndexForms.Set(float64(size))
}
