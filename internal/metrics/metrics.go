package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookview_upstream_requests_total",
		Help: "Total number of requests issued to the Open Library API",
	}, []string{"endpoint", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookview_upstream_request_duration_seconds",
		Help:    "Duration of Open Library API requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookview_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookview_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	StaleResponsesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookview_loader_stale_responses_total",
		Help: "Fetch results discarded because a newer key superseded them",
	})
)
