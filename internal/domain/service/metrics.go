// Package service holds the pure analytics engine and the interfaces it is observed through.
package service

import (
	"time"

	"github.com/turtacn/cadetops/pkg/constants"
)

// Metrics defines the interface for collecting analytics metrics.
// This abstraction allows the application layer to remain independent of the specific monitoring implementation (e.g., Prometheus).
// Metrics 定义了收集分析指标的接口。
// 这种抽象使应用层能够独立于具体的监控实现（例如 Prometheus）。
type Metrics interface {
	// RecordAnalyticsPass records one analytics pass by snapshot source and outcome.
	// RecordAnalyticsPass 按快照来源和结果记录一次分析过程。
	RecordAnalyticsPass(source, outcome string, duration time.Duration)

	// RecordRecordIssue records a record that was skipped or could not be computed.
	// RecordRecordIssue 记录被跳过或无法计算的记录。
	RecordRecordIssue(recordType constants.RecordType, code constants.ErrorCode)

	// RecordRiskAssessment records whether a risk assessment produced a score.
	// RecordRiskAssessment 记录风险评估是否产生了分数。
	RecordRiskAssessment(applicable bool)

	// RecordForecastBucket records the bucket of an inventory forecast.
	// RecordForecastBucket 记录库存预测的分类。
	RecordForecastBucket(bucket constants.ForecastBucket)

	// RecordBalanceLabel records the balance label of a workload record.
	// RecordBalanceLabel 记录工作负载记录的平衡标签。
	RecordBalanceLabel(label constants.BalanceLabel)

	// SetCoverageAdequate updates the gauge for the latest coverage adequacy.
	// SetCoverageAdequate 更新最近一次覆盖充足性的仪表盘。
	SetCoverageAdequate(adequate bool)

	// RecordSnapshotCache records a snapshot cache hit or miss for a cache layer.
	// RecordSnapshotCache 记录某一缓存层的快照缓存命中或未命中。
	RecordSnapshotCache(layer string, hit bool)
}

// NoopMetrics discards every observation.
type NoopMetrics struct{}

func (NoopMetrics) RecordAnalyticsPass(string, string, time.Duration) {}
func (NoopMetrics) RecordRecordIssue(constants.RecordType, constants.ErrorCode) {}
func (NoopMetrics) RecordRiskAssessment(bool) {}
func (NoopMetrics) RecordForecastBucket(constants.ForecastBucket) {}
func (NoopMetrics) RecordBalanceLabel(constants.BalanceLabel) {}
func (NoopMetrics) SetCoverageAdequate(bool) {}
func (NoopMetrics) RecordSnapshotCache(string, bool) {}
