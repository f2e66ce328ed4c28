package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumedex",
			Name:      "searches_total",
			Help:      "Total number of candidate searches",
		},
		[]string{"status"}, // "ok" / "empty" / "unavailable"
	)

	SearchStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumedex",
			Name:      "search_stage_duration_seconds",
			Help:      "Search pipeline stage duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"stage"}, // "analyze" / "retrieve" / "rerank"
	)

	VariantProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumedex",
			Name:      "variant_probes_total",
			Help:      "Total retrieval probes issued per query variant outcome",
		},
		[]string{"status"}, // "ok" / "failed"
	)

	PooledCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resumedex",
			Name:      "pooled_candidates",
			Help:      "Number of raw candidate hits pooled per search before dedup",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 200},
		},
	)

	FollowupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumedex",
			Name:      "followups_total",
			Help:      "Total follow-up questions answered per archetype",
		},
		[]string{"archetype"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchStageDuration)
	prometheus.MustRegister(VariantProbesTotal)
	prometheus.MustRegister(PooledCandidates)
	prometheus.MustRegister(FollowupsTotal)
	searchMetricsRegistered = true
}
