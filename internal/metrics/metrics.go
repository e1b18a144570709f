package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Time taken to serve HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})

	// PolicyDecisions conta as decisões de visibilidade e autoria.
	// outcome: allowed, denied, not_found.
	PolicyDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policy_decisions_total",
		Help: "Visibility and authorization decisions",
	}, []string{"operation", "outcome"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the per-IP rate limiter",
	})
)
