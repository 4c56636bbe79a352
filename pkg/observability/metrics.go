package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Database metrics
	DBConnectionsActive prometheus.Gauge
	DBConnectionsIdle   prometheus.Gauge

	// Business metrics
	CompaniesTotal         prometheus.Gauge
	ProjectsTotal          prometheus.Gauge
	PagesTotal             prometheus.Gauge
	PageSavesTotal         *prometheus.CounterVec
	SnippetsGeneratedTotal *prometheus.CounterVec
	TryItRequestsTotal     *prometheus.CounterVec
	TryItRequestDuration   *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dochub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dochub_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dochub_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dochub_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dochub_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache_type"},
		),

		DBConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dochub_db_connections_active",
				Help: "Number of active database connections",
			},
		),
		DBConnectionsIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dochub_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),

		CompaniesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dochub_companies_total",
				Help: "Total number of companies",
			},
		),
		ProjectsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dochub_projects_total",
				Help: "Total number of documentation projects",
			},
		),
		PagesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dochub_pages_total",
				Help: "Total number of documentation pages",
			},
		),
		PageSavesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dochub_page_saves_total",
				Help: "Total number of page content saves",
			},
			[]string{"template_type"},
		),
		SnippetsGeneratedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dochub_snippets_generated_total",
				Help: "Total number of code snippets generated",
			},
			[]string{"target"},
		),
		TryItRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dochub_tryit_requests_total",
				Help: "Total number of try-it proxy requests",
			},
			[]string{"method", "status"},
		),
		TryItRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dochub_tryit_request_duration_seconds",
				Help:    "Try-it proxy request duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.DBConnectionsActive,
		m.DBConnectionsIdle,
		m.CompaniesTotal,
		m.ProjectsTotal,
		m.PagesTotal,
		m.PageSavesTotal,
		m.SnippetsGeneratedTotal,
		m.TryItRequestsTotal,
		m.TryItRequestDuration,
	)

	return m
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(rw.bytesWritten))
		})
	}
}

// RegisterMetricsEndpoint registers the /metrics endpoint
func RegisterMetricsEndpoint(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
