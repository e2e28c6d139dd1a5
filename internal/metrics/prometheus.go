package metrics

import (
	"strconv"
	"time"

	"jobtrack/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder with the Prometheus client library.
// Registration errors are logged, never propagated.
type PrometheusRecorder struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	storeOperationsTotal   *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec

	statsCacheTotal *prometheus.CounterVec

	logger logger.Logger
}

func NewPrometheusRecorder(reg prometheus.Registerer, log logger.Logger) *PrometheusRecorder {
	r := &PrometheusRecorder{
		logger: log.With(logger.String("component", "metrics")),
	}
	r.initHTTPMetrics(reg)
	r.initStoreMetrics(reg)
	r.initCacheMetrics(reg)
	return r
}

func (r *PrometheusRecorder) initHTTPMetrics(reg prometheus.Registerer) {
	r.httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobtrack_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	r.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobtrack_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	r.register(reg, r.httpRequestsTotal, "jobtrack_http_requests_total")
	r.register(reg, r.httpRequestDuration, "jobtrack_http_request_duration_seconds")
}

func (r *PrometheusRecorder) initStoreMetrics(reg prometheus.Registerer) {
	r.storeOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobtrack_store_operations_total",
		Help: "Total number of job store operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	r.storeOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobtrack_store_operation_duration_seconds",
		Help:    "Job store operation latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"operation"})

	r.register(reg, r.storeOperationsTotal, "jobtrack_store_operations_total")
	r.register(reg, r.storeOperationDuration, "jobtrack_store_operation_duration_seconds")
}

func (r *PrometheusRecorder) initCacheMetrics(reg prometheus.Registerer) {
	r.statsCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobtrack_stats_cache_requests_total",
		Help: "Stats report cache lookups by result.",
	}, []string{"result"})

	r.register(reg, r.statsCacheTotal, "jobtrack_stats_cache_requests_total")
}

func (r *PrometheusRecorder) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		r.logger.Warn("failed to register metric",
			logger.String("metric", name),
			logger.Error(err))
	}
}

func (r *PrometheusRecorder) HTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (r *PrometheusRecorder) StoreOperation(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.storeOperationsTotal.WithLabelValues(operation, outcome).Inc()
	r.storeOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (r *PrometheusRecorder) StatsCache(result string) {
	r.statsCacheTotal.WithLabelValues(result).Inc()
}
