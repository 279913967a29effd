// Package metrics exposes Prometheus instrumentation for the recommenders.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_recommend_requests_total",
			Help: "Recommendation requests by recommender and outcome (ok, empty, error)",
		},
		[]string{"recommender", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_recommend_duration_seconds",
			Help:    "Time spent producing one ranked list",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms .. ~40s
		},
		[]string{"recommender"},
	)

	ScannedDocuments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_scanned_documents_total",
			Help: "Documents read by full-collection scans",
		},
		[]string{"collection"},
	)

	MemoLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_memo_lookups_total",
			Help: "Memoized result lookups by entity and result (hit, miss)",
		},
		[]string{"entity", "result"},
	)

	MemoWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_memo_writes_total",
			Help: "Memoized results written back, by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)

	ProfileFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_profile_fetches_total",
			Help: "Live profile fetches from the extraction service",
		},
		[]string{"outcome"},
	)
)

// ObserveRecommend records one finished recommendation call.
func ObserveRecommend(recommender string, start time.Time, n int, err error) {
	RecommendDuration.WithLabelValues(recommender).Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		RecommendRequests.WithLabelValues(recommender, "error").Inc()
	case n == 0:
		RecommendRequests.WithLabelValues(recommender, "empty").Inc()
	default:
		RecommendRequests.WithLabelValues(recommender, "ok").Inc()
	}
}

// Memo records a memo lookup.
func Memo(entity string, hit bool) {
	if hit {
		MemoLookups.WithLabelValues(entity, "hit").Inc()
		return
	}
	MemoLookups.WithLabelValues(entity, "miss").Inc()
}
