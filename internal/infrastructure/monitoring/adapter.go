// Package monitoring provides adapters to connect the domain's metrics interface with a concrete implementation like Prometheus.
package monitoring

import (
	"strconv"
	"time"

	"github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/constants"
)

// MetricsAdapter implements the domain's service.Metrics interface, sending metrics to a Prometheus backend.
// This adapter translates the domain-specific metric calls into the appropriate Prometheus client calls.
// MetricsAdapter 实现了域的 service.Metrics 接口，将指标发送到 Prometheus 后端。
// 此适配器将特定于域的指标调用转换为适当的 Prometheus 客户端调用。
type MetricsAdapter struct {
	metrics *Metrics
}

// NewMetricsAdapter creates a new adapter that wraps a concrete Prometheus Metrics object,
// satisfying the domain's Metrics interface.
// NewMetricsAdapter 创建一个包装具体 Prometheus Metrics 对象的新适配器，
// 满足域的 Metrics 接口。
func NewMetricsAdapter(metrics *Metrics) service.Metrics {
	return &MetricsAdapter{metrics: metrics}
}

// RecordAnalyticsPass delegates the call to the underlying Prometheus Metrics object.
// RecordAnalyticsPass 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordAnalyticsPass(source, outcome string, duration time.Duration) {
	a.metrics.RecordPass(source, outcome, duration)
}

// RecordRecordIssue increments the issue counter for the record type and code.
// RecordRecordIssue 按记录类型和错误码递增问题计数器。
func (a *MetricsAdapter) RecordRecordIssue(recordType constants.RecordType, code constants.ErrorCode) {
	a.metrics.RecordIssues.WithLabelValues(string(recordType), string(code)).Inc()
}

// RecordRiskAssessment increments the assessment counter by applicability.
// RecordRiskAssessment 按适用性递增评估计数器。
func (a *MetricsAdapter) RecordRiskAssessment(applicable bool) {
	a.metrics.RiskAssessments.WithLabelValues(strconv.FormatBool(applicable)).Inc()
}

// RecordForecastBucket increments the forecast counter by bucket.
// RecordForecastBucket 按分类递增预测计数器。
func (a *MetricsAdapter) RecordForecastBucket(bucket constants.ForecastBucket) {
	a.metrics.ForecastBuckets.WithLabelValues(string(bucket)).Inc()
}

// RecordBalanceLabel increments the workload counter by label.
// RecordBalanceLabel 按标签递增工作负载计数器。
func (a *MetricsAdapter) RecordBalanceLabel(label constants.BalanceLabel) {
	a.metrics.BalanceLabels.WithLabelValues(string(label)).Inc()
}

// SetCoverageAdequate sets the coverage gauge to 1 or 0.
// SetCoverageAdequate 将覆盖仪表盘设置为 1 或 0。
func (a *MetricsAdapter) SetCoverageAdequate(adequate bool) {
	if adequate {
		a.metrics.CoverageAdequate.Set(1)
		return
	}
	a.metrics.CoverageAdequate.Set(0)
}

// RecordSnapshotCache increments the cache counter for the layer.
// RecordSnapshotCache 递增某一缓存层的计数器。
func (a *MetricsAdapter) RecordSnapshotCache(layer string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	a.metrics.SnapshotCacheAccess.WithLabelValues(layer, result).Inc()
}
