// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_queries_total",
			Help: "Total number of search queries executed",
		},
		[]string{"entity"},
	)

	SearchQueriesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_queries_failed_total",
			Help: "Total number of search queries that failed",
		},
		[]string{"entity"},
	)

	SearchQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "search_query_duration_seconds",
			Help: "Duration of search query execution in seconds",
		},
		[]string{"entity"},
	)

	SearchResultRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_result_rows",
			Help:    "Number of rows returned per search page",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"entity"},
	)
)
