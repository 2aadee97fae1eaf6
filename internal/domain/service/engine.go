package service

import (
	"github.com/turtacn/cadetops/internal/domain/models"
)

// Engine bundles the analytics components under one policy. It holds no mutable state;
// every call is a fresh computation over the snapshot it is given.
// Engine 在同一策略下组合所有分析组件。它不持有可变状态；每次调用都是对给定快照的全新计算。
type Engine struct {
	policy     AnalyticsPolicy
	normalizer *RecordNormalizer
	risk       *RiskScorer
	insights   *InsightGenerator
	forecaster *InventoryForecaster
	workload   *WorkloadAnalyzer
	coverage   *CoverageAnalyzer
}

// NewEngine creates an Engine for the given policy.
// NewEngine 为给定策略创建 Engine。
func NewEngine(policy AnalyticsPolicy) *Engine {
	return &Engine{
		policy:     policy,
		normalizer: NewRecordNormalizer(),
		risk:       NewRiskScorer(policy.Risk),
		insights:   NewInsightGenerator(policy.Insights),
		forecaster: NewInventoryForecaster(policy.Inventory),
		workload:   NewWorkloadAnalyzer(policy.Workload),
		coverage:   NewCoverageAnalyzer(policy.Insights, policy.Coverage),
	}
}

func (e *Engine) Policy() AnalyticsPolicy { return e.policy }
func (e *Engine) Normalizer() *RecordNormalizer { return e.normalizer }
func (e *Engine) RiskScorer() *RiskScorer { return e.risk }
func (e *Engine) InsightGenerator() *InsightGenerator { return e.insights }
func (e *Engine) InventoryForecaster() *InventoryForecaster { return e.forecaster }
func (e *Engine) WorkloadAnalyzer() *WorkloadAnalyzer { return e.workload }
func (e *Engine) CoverageAnalyzer() *CoverageAnalyzer { return e.coverage }

// Today is the reference date for tenure and week filtering: the snapshot capture date.
// Today 是任期与周过滤的参考日期，即快照采集日期。
func Today(ns *models.NormalizedSnapshot) models.Date {
	return models.NewDate(ns.CapturedAt)
}

// ShiftsByStaff groups schedule entries per staff member, keeping only the current ISO week
// when the workload policy asks for it.
// ShiftsByStaff 按员工分组排班条目；当策略要求时只保留当前 ISO 周。
func (e *Engine) ShiftsByStaff(ns *models.NormalizedSnapshot) map[string][]models.ScheduleEntry {
	if !e.policy.Workload.CurrentWeekOnly {
		return ns.ShiftsByStaff()
	}
	today := Today(ns)
	out := make(map[string][]models.ScheduleEntry, len(ns.Staff))
	for _, entry := range ns.Schedule {
		if InWeekOf(entry, today) {
			out[entry.StaffID] = append(out[entry.StaffID], entry)
		}
	}
	return out
}

// Coverage runs the coverage analysis over the full population and computed workloads.
// Coverage 在完整群体和已计算的工作负载上运行覆盖分析。
func (e *Engine) Coverage(ns *models.NormalizedSnapshot, workloads []models.WorkloadRecord) models.CoverageReport {
	return e.coverage.Analyze(e.coverage.Inputs(ns.Cadets, ns.Staff, workloads))
}
