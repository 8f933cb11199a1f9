package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder for Prometheus
type PrometheusRecorder struct {
	transactions    *prometheus.CounterVec
	imports         *prometheus.CounterVec
	imported        *prometheus.CounterVec
	exports         *prometheus.CounterVec
	alerts          *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder creates the collectors under namespace. Call Register to expose them.
func NewPrometheusRecorder(namespace string) *PrometheusRecorder {
	return &PrometheusRecorder{
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_recorded_total",
				Help:      "Total number of transactions recorded per type",
			},
			[]string{"type"},
		),
		imports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "imports_total",
				Help:      "Total number of import attempts per format and outcome",
			},
			[]string{"format", "status"},
		),
		imported: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_imported_total",
				Help:      "Total number of transactions loaded by successful imports per format",
			},
			[]string{"format"},
		),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Total number of exports per format",
			},
			[]string{"format"},
		),
		alerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "budget_alerts_total",
				Help:      "Total number of budget alerts raised per level",
			},
			[]string{"level"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests per route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
			},
			[]string{"method", "route"},
		),
	}
}

// Register registers all metrics with the given Prometheus registry
func (r *PrometheusRecorder) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		r.transactions,
		r.imports,
		r.imported,
		r.exports,
		r.alerts,
		r.requests,
		r.requestDuration,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *PrometheusRecorder) RecordTransactions(kind string, count int) {
	r.transactions.WithLabelValues(kind).Add(float64(count))
}

func (r *PrometheusRecorder) RecordImport(format string, success bool, count int) {
	if !success {
		r.imports.WithLabelValues(format, "failure").Inc()
		return
	}
	r.imports.WithLabelValues(format, "success").Inc()
	r.imported.WithLabelValues(format).Add(float64(count))
}

func (r *PrometheusRecorder) RecordExport(format string) {
	r.exports.WithLabelValues(format).Inc()
}

func (r *PrometheusRecorder) RecordAlert(level string) {
	r.alerts.WithLabelValues(level).Inc()
}

func (r *PrometheusRecorder) RecordRequest(method, route string, status int, duration time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
