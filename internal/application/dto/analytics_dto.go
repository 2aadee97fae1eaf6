package dto

import (
	"github.com/turtacn/cadetops/internal/domain/models"
)

// RiskResponse 风险评估结果
type RiskResponse struct {
	SnapshotID  string                  `json:"snapshotId"`
	Assessments []models.RiskAssessment `json:"riskAssessments"`
	Issues      []models.RecordIssue    `json:"issues"`
}

// InsightsResponse 群体洞察与高风险警报
type InsightsResponse struct {
	SnapshotID    string                `json:"snapshotId"`
	Insights      []models.Insight      `json:"insights"`
	HighRiskAlert *models.HighRiskAlert `json:"highRiskAlert,omitempty"`
	Issues        []models.RecordIssue  `json:"issues"`
}

// ForecastResponse 库存预测结果
type ForecastResponse struct {
	SnapshotID string                  `json:"snapshotId"`
	Forecasts  []models.ForecastResult `json:"forecasts"`
	Issues     []models.RecordIssue    `json:"issues"`
}

// WorkloadResponse 员工工作负载结果
type WorkloadResponse struct {
	SnapshotID string                  `json:"snapshotId"`
	Workloads  []models.WorkloadRecord `json:"workloads"`
	Issues     []models.RecordIssue    `json:"issues"`
}

// CoverageResponse 人员覆盖分析结果
type CoverageResponse struct {
	SnapshotID string                `json:"snapshotId"`
	Coverage   models.CoverageReport `json:"coverage"`
	Issues     []models.RecordIssue  `json:"issues"`
}
