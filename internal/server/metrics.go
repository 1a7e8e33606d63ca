// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	searchResults  prometheus.Histogram
	partial        prometheus.Counter
}

// newMetrics registers the service collectors on a private registry so
// several servers can coexist in one process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bibgraph",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bibgraph",
			Name:      "search_duration_seconds",
			Help:      "Search latency by mode and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode", "outcome"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bibgraph",
			Name:      "search_results",
			Help:      "Number of documents returned per successful search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		partial: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bibgraph",
			Name:      "partial_extractions_total",
			Help:      "Listings that skipped at least one malformed document.",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.searchDuration,
		m.searchResults,
		m.partial,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// modeLabel bounds the label cardinality of free-form search modes.
func modeLabel(mode string) string {
	switch mode {
	case "author", "concept", "reference":
		return mode
	case "":
		return "none"
	}
	return "other"
}
