package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the snapshot store.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	snapshotDuration *prometheus.HistogramVec
	snapshotFailures *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	snapshotDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_save_duration_seconds",
		Help:    "Duration of snapshot store saves",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})

	snapshotFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_save_failures_total",
		Help: "Total failed snapshot store saves",
	}, []string{"collection"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, snapshotDuration, snapshotFailures, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		snapshotDuration: snapshotDuration,
		snapshotFailures: snapshotFailures,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// ObserveSnapshotSave records one snapshot store save, implementing the
// directory's flush observer.
func (s *MetricsService) ObserveSnapshotSave(name string, duration time.Duration, err error) {
	s.snapshotDuration.WithLabelValues(name).Observe(duration.Seconds())
	if err != nil {
		s.snapshotFailures.WithLabelValues(name).Inc()
	}
}
