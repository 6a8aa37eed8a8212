package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for VenueOps.
type Metrics struct {
	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Report metrics
	ReportBuilds   *prometheus.CounterVec
	ReportDuration prometheus.Histogram

	// External source metrics
	BookingsFetched  prometheus.Counter
	AdsFetchFailures *prometheus.CounterVec
	AdsCacheHits     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"path", "method", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		ReportBuilds: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "marketing_report_builds_total",
				Help:      "Total number of marketing overview builds",
			},
			[]string{"status"},
		),
		ReportDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "marketing_report_duration_seconds",
				Help:      "Time spent assembling a marketing overview",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		BookingsFetched: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_fetched_total",
				Help:      "Total number of bookings read for reports",
			},
		),
		AdsFetchFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ads_fetch_failures_total",
				Help:      "Total number of failed ad-platform fetches",
			},
			[]string{"source"},
		),
		AdsCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ads_cache_hits_total",
				Help:      "Ad report cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(path, method string, status int, latency time.Duration) {
	m.HTTPRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(path).Observe(latency.Seconds())
}

// RecordReportBuild records one marketing overview build.
func (m *Metrics) RecordReportBuild(status string, latency time.Duration) {
	m.ReportBuilds.WithLabelValues(status).Inc()
	m.ReportDuration.Observe(latency.Seconds())
}

// RecordBookingsFetched adds fetched bookings to the counter.
func (m *Metrics) RecordBookingsFetched(n int) {
	m.BookingsFetched.Add(float64(n))
}

// RecordAdsFetchFailure records a failed ad-platform fetch for a source.
func (m *Metrics) RecordAdsFetchFailure(source string) {
	m.AdsFetchFailures.WithLabelValues(source).Inc()
}

// RecordRateLimitHit records a rejected request.
func (m *Metrics) RecordRateLimitHit(path string) {
	m.RateLimitHits.WithLabelValues(path).Inc()
}
