package monitoring

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "faleproxy"

// Metrics holds all Prometheus metrics on a private registry
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Pipeline metrics
	RewritesTotal  *prometheus.CounterVec
	RewriteErrors  *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	Replacements   prometheus.Counter
	UpstreamStatus *prometheus.CounterVec
	UpstreamBytes  prometheus.Histogram

	startTime time.Time

	// Snapshot for the JSON stats endpoint
	mu       sync.RWMutex
	snapshot Snapshot
}

// Snapshot holds running totals for the JSON stats endpoint
type Snapshot struct {
	TotalRequests     int64
	TotalErrors       int64
	TotalRewrites     int64
	FailedRewrites    int64
	TotalReplacements int64
	TotalDuration     float64 // seconds, sum over requests
}

// NewMetrics creates a metrics collector with its own registry, so several
// instances can coexist in one process
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		RewritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rewrites_total",
				Help:      "Total number of rewrite pipeline runs by outcome",
			},
			[]string{"outcome"},
		),
		RewriteErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rewrite_errors_total",
				Help:      "Total number of failed rewrites by error kind",
			},
			[]string{"kind"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Pipeline stage duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"stage"},
		),
		Replacements: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replacements_total",
				Help:      "Total number of token occurrences replaced",
			},
		),
		UpstreamStatus: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_responses_total",
				Help:      "Upstream responses by status class",
			},
			[]string{"class"},
		),
		UpstreamBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_body_bytes",
				Help:      "Size of fetched upstream bodies in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler serves the Prometheus exposition format for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status >= 400 {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// ObserveStage records how long a pipeline stage took
func (m *Metrics) ObserveStage(stage string, duration time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRewrite records a completed pipeline run
func (m *Metrics) RecordRewrite(replacements int) {
	m.RewritesTotal.WithLabelValues("success").Inc()
	m.Replacements.Add(float64(replacements))

	m.mu.Lock()
	m.snapshot.TotalRewrites++
	m.snapshot.TotalReplacements += int64(replacements)
	m.mu.Unlock()
}

// RecordRewriteError records a failed pipeline run
func (m *Metrics) RecordRewriteError(kind string) {
	m.RewritesTotal.WithLabelValues("failure").Inc()
	m.RewriteErrors.WithLabelValues(kind).Inc()

	m.mu.Lock()
	m.snapshot.TotalRewrites++
	m.snapshot.FailedRewrites++
	m.mu.Unlock()
}

// RecordUpstream records the status and size of a fetched page
func (m *Metrics) RecordUpstream(status int, size int) {
	m.UpstreamStatus.WithLabelValues(StatusClass(status)).Inc()
	m.UpstreamBytes.Observe(float64(size))
}

// Snapshot returns a copy of the running totals
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Uptime returns time since the collector was created
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}

// StatusClass buckets an HTTP status code as "2xx", "4xx" and so on
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}
