package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	AnalyticsPasses       *prometheus.CounterVec
	AnalyticsPassDuration *prometheus.HistogramVec
	RecordIssues          *prometheus.CounterVec
	RiskAssessments       *prometheus.CounterVec
	ForecastBuckets       *prometheus.CounterVec
	BalanceLabels         *prometheus.CounterVec
	CoverageAdequate      prometheus.Gauge
	SnapshotCacheAccess   *prometheus.CounterVec

	ActiveRequests  *prometheus.GaugeVec
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec
}

// NewMetrics creates the Prometheus metrics and registers them with reg.
// A nil registerer uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AnalyticsPasses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadetops_analytics_passes_total",
				Help: "Total number of analytics passes.",
			},
			[]string{"source", "outcome"},
		),
		AnalyticsPassDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cadetops_analytics_pass_duration_seconds",
				Help:    "Duration of analytics passes.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		RecordIssues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadetops_record_issues_total",
				Help: "Total number of records skipped or not computed.",
			},
			[]string{"record_type", "code"},
		),
		RiskAssessments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadetops_risk_assessments_total",
				Help: "Total number of risk assessments, by applicability.",
			},
			[]string{"applicable"},
		),
		ForecastBuckets: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadetops_forecasts_total",
				Help: "Total number of inventory forecasts, by bucket.",
			},
			[]string{"bucket"},
		),
		BalanceLabels: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadetops_workload_records_total",
				Help: "Total number of workload records, by balance label.",
			},
			[]string{"label"},
		),
		CoverageAdequate: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cadetops_coverage_adequate",
				Help: "1 when the latest coverage analysis was adequate, 0 otherwise.",
			},
		),
		SnapshotCacheAccess: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadetops_snapshot_cache_access_total",
				Help: "Total number of snapshot cache lookups.",
			},
			[]string{"layer", "result"},
		),
		ActiveRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cadetops_http_active_requests",
				Help: "Number of in-flight HTTP requests.",
			},
			[]string{"path", "method"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cadetops_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method", "status"},
		),
		RequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadetops_http_request_errors_total",
				Help: "Total number of HTTP responses with status >= 400.",
			},
			[]string{"path", "method", "status"},
		),
	}
}

// RecordPass records an analytics pass outcome and its latency.
func (m *Metrics) RecordPass(source, outcome string, duration time.Duration) {
	m.AnalyticsPasses.WithLabelValues(source, outcome).Inc()
	m.AnalyticsPassDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func (m *Metrics) ActiveRequestsInc(path, method string) {
	m.ActiveRequests.WithLabelValues(path, method).Inc()
}

func (m *Metrics) ActiveRequestsDec(path, method string) {
	m.ActiveRequests.WithLabelValues(path, method).Dec()
}

func (m *Metrics) ObserveRequestDuration(path, method string, status int, seconds float64) {
	m.RequestDuration.WithLabelValues(path, method, strconv.Itoa(status)).Observe(seconds)
}

func (m *Metrics) IncRequestErrors(path, method string, status int) {
	m.RequestErrors.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

//Personal.AI order the ending
