package service

import (
	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/utils"
)

// WorkloadAnalyzer turns schedule entries into per-staff utilization.
// WorkloadAnalyzer 将排班条目转换为每位员工的利用率。
type WorkloadAnalyzer struct {
	policy WorkloadPolicy
}

// NewWorkloadAnalyzer creates a new WorkloadAnalyzer.
// NewWorkloadAnalyzer 创建一个新的 WorkloadAnalyzer。
func NewWorkloadAnalyzer(policy WorkloadPolicy) *WorkloadAnalyzer {
	return &WorkloadAnalyzer{policy: policy}
}

// Analyze computes the workload record for one staff member from the shifts assigned to them.
// Analyze 根据分配给员工的班次计算其工作负载记录。
func (w *WorkloadAnalyzer) Analyze(staff models.StaffMember, shifts []models.ScheduleEntry) models.WorkloadRecord {
	var scheduled float64
	for _, e := range shifts {
		scheduled += e.Duration().Hours()
	}

	weekly := float64(len(shifts)) * w.policy.HoursPerShift
	util := utils.ClampFloat(weekly/w.policy.ReferenceWorkweekHours*100, 0, 100)
	label := w.Label(util)

	return models.WorkloadRecord{
		StaffID:            staff.ID,
		StaffName:          staff.Name,
		WeeklyHours:        weekly,
		ScheduledHours:     utils.Round2(scheduled),
		UtilizationPercent: utils.Round2(util),
		ShiftCount:         len(shifts),
		BalanceLabel:       label,
		Color:              label.Color(),
		Recommendation:     recommendationFor(label),
	}
}

// Label classifies utilization. Values exactly on a boundary are WellBalanced.
// Label 对利用率分类。恰好位于边界上的值为 WellBalanced。
func (w *WorkloadAnalyzer) Label(utilization float64) constants.BalanceLabel {
	switch {
	case utilization > w.policy.ReduceLoadAbove:
		return constants.BalanceReduceLoad
	case utilization < w.policy.CanTakeMoreBelow:
		return constants.BalanceCanTakeMore
	default:
		return constants.BalanceWellBalanced
	}
}

// InWeekOf reports whether the entry falls in the same ISO week as day.
// InWeekOf 判断条目是否与给定日期处于同一 ISO 周。
func InWeekOf(e models.ScheduleEntry, day models.Date) bool {
	y1, w1 := e.Date.ISOWeek()
	y2, w2 := day.ISOWeek()
	return y1 == y2 && w1 == w2
}

func recommendationFor(label constants.BalanceLabel) string {
	switch label {
	case constants.BalanceReduceLoad:
		return "Redistribute shifts to reduce this staff member's load"
	case constants.BalanceCanTakeMore:
		return "Available for additional assignments"
	default:
		return "Workload is well balanced"
	}
}
