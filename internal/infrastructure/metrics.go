package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ComponentCache       = "cache"
	ComponentRateLimiter = "rate_limiter"
	ComponentQueue       = "queue"
)

// Metrics tracks performance data
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	RateLimited     prometheus.Counter
	BackendFailures *prometheus.CounterVec
	EmailJobs       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notes_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notes_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notes_cache_lookups_total",
			Help: "Note list cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "notes_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}),
		BackendFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notes_backend_failures_total",
			Help: "Swallowed infrastructure failures by component.",
		}, []string{"component"}),
		EmailJobs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notes_email_jobs_total",
			Help: "Email jobs by outcome (submitted, sent, failed).",
		}, []string{"outcome"}),
	}
}
