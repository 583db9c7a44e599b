package multihost

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for dispatched requests and
// endpoint registrations. It is safe for concurrent use; a nil collector
// records nothing.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	errorsTotal *prometheus.CounterVec

	registrationsTotal *prometheus.CounterVec
	registryEntries    prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registerer prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(registerer)

	mc := &MetricsCollector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multihost_requests_total",
				Help: "Total number of HTTP requests dispatched",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "multihost_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "multihost_requests_in_flight",
				Help: "Number of HTTP requests currently holding a transport session",
			},
			[]string{"method", "endpoint"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multihost_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type", "method", "endpoint"},
		),
		registrationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multihost_registrations_total",
				Help: "Total number of endpoint registrations",
			},
			[]string{"endpoint", "result"},
		),
		registryEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "multihost_registry_entries",
				Help: "Number of distinct endpoints in the registry",
			},
		),
	}

	if reg, ok := registerer.(*prometheus.Registry); ok {
		mc.registry = reg
	}

	return mc
}

// RecordRequest records request count and duration.
func (mc *MetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if mc == nil {
		return
	}

	statusCodeStr := strconv.Itoa(statusCode)
	mc.requestsTotal.WithLabelValues(method, statusCodeStr, endpoint).Inc()
	mc.requestDuration.WithLabelValues(method, statusCodeStr, endpoint).Observe(duration.Seconds())
}

// RecordRequestStart increments in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordRequestEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordError increments error counter by type.
func (mc *MetricsCollector) RecordError(errorType, method, endpoint string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}

// RecordRegistration counts a registration and sets the registry size gauge.
func (mc *MetricsCollector) RecordRegistration(endpoint string, created bool, size int) {
	if mc == nil {
		return
	}

	result := "existing"
	if created {
		result = "new"
	}
	mc.registrationsTotal.WithLabelValues(endpoint, result).Inc()
	mc.registryEntries.Set(float64(size))
}

// GetRegistry exposes the underlying prometheus registry, or nil when the
// collector was built on a Registerer that is not a *prometheus.Registry.
func (mc *MetricsCollector) GetRegistry() *prometheus.Registry {
	if mc == nil {
		return nil
	}
	return mc.registry
}
