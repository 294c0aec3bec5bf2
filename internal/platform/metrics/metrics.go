// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics declares the Prometheus collectors exported on /metrics.

Collectors are registered on the default registry at package init via promauto,
so importing the package is enough to expose them.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ranoberead"

// Label values shared with callers.
const (
	ResultCreated = "created"
	ResultUpdated = "updated"
	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultError   = "error"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Library writes
	ChapterUpsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chapter",
			Name:      "upserts_total",
			Help:      "Total number of chapter upserts by outcome",
		},
		[]string{"result"},
	)

	BookmarkSetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookmark",
			Name:      "sets_total",
			Help:      "Total number of bookmarks set",
		},
	)

	// Projection cache
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of projection cache lookups by result",
		},
		[]string{"projection", "result"},
	)
)

// RecordChapterUpsert counts one upsert as created or updated.
func RecordChapterUpsert(created bool) {
	result := ResultUpdated
	if created {
		result = ResultCreated
	}
	ChapterUpsertsTotal.WithLabelValues(result).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
