package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a Prometheus registry and the service's collectors.
type Metrics struct {
	Registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	predictorCalls *prometheus.CounterVec
	predictorTime  *prometheus.HistogramVec
	cacheEvents    *prometheus.CounterVec
	rateLimited    *prometheus.CounterVec
}

// NewMetrics creates a registry with Go runtime and process collectors plus
// the flowdesk collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowdesk_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		predictorCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowdesk_predictor_calls_total",
			Help: "Predictor invocations by predictor and outcome.",
		}, []string{"predictor", "outcome"}),
		predictorTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowdesk_predictor_duration_seconds",
			Help:    "Predictor latency by predictor.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"predictor"}),
		cacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowdesk_cache_events_total",
			Help: "Response cache hits, misses and stores.",
		}, []string{"event"}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowdesk_ratelimit_blocks_total",
			Help: "Requests rejected by the rate limiter, by limiter source.",
		}, []string{"source"}),
	}
}

// RecordRequest records one finished HTTP request
func (m *Metrics) RecordRequest(method, path string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordPredictorCall records one predictor invocation
func (m *Metrics) RecordPredictorCall(predictor string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.predictorCalls.WithLabelValues(predictor, outcome).Inc()
	m.predictorTime.WithLabelValues(predictor).Observe(d.Seconds())
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() { m.cacheEvents.WithLabelValues("hit").Inc() }

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() { m.cacheEvents.WithLabelValues("miss").Inc() }

// IncrementCacheStore counts responses written to the cache
func (m *Metrics) IncrementCacheStore() { m.cacheEvents.WithLabelValues("store").Inc() }

// RecordRateLimitBlock counts a rejected request; source is "redis" or "memory".
func (m *Metrics) RecordRateLimitBlock(source string) {
	m.rateLimited.WithLabelValues(source).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
