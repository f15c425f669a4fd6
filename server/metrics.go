package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// reportsTotal counts generated reports, partitioned by aggregation
	// level and outcome.
	reportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frp_reports_total",
		Help: "Total number of portfolio reports generated",
	}, []string{"level", "status"})

	// reportDuration tracks end-to-end report generation latency.
	reportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "frp_report_duration_seconds",
		Help:    "Report generation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// httpRequestsTotal counts HTTP requests by method, path, and status.
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frp_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// httpRequestDuration tracks request duration by method and path.
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "frp_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// metricsHandler returns the Prometheus scrape endpoint.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

// metricsMiddleware records per-request counters and latency.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// statusWriter captures the response status code for metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
