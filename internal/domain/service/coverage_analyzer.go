package service

import (
	"fmt"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/pkg/utils"
)

// CoverageAnalyzer cross-references high-risk individuals against experienced staff.
// CoverageAnalyzer 将高风险个体与有经验的员工进行交叉比对。
type CoverageAnalyzer struct {
	insights InsightPolicy
	policy   CoveragePolicy
}

// NewCoverageAnalyzer creates a new CoverageAnalyzer. High-risk uses the insight threshold.
// NewCoverageAnalyzer 创建一个新的 CoverageAnalyzer。高风险判定使用洞察阈值。
func NewCoverageAnalyzer(insights InsightPolicy, policy CoveragePolicy) *CoverageAnalyzer {
	return &CoverageAnalyzer{insights: insights, policy: policy}
}

// Inputs derives the aggregate counts from the normalized population and workload records.
// Only active cadets are counted.
// Inputs 从规范化群体和工作负载记录中推导汇总计数。仅统计在读学员。
func (a *CoverageAnalyzer) Inputs(cadets []models.Cadet, staff []models.StaffMember, workloads []models.WorkloadRecord) models.CoverageInput {
	in := models.CoverageInput{StaffCount: len(staff)}
	for _, c := range cadets {
		if !c.IsActive() {
			continue
		}
		in.IndividualCount++
		if c.BehaviorScore <= a.insights.HighRiskMaxBehavior {
			in.HighRiskCount++
		}
	}
	for _, s := range staff {
		if s.ExperienceYears >= a.policy.ExperiencedStaffYears {
			in.ExperiencedStaffCount++
		}
	}
	in.Utilizations = make([]float64, len(workloads))
	for i, w := range workloads {
		in.Utilizations[i] = w.UtilizationPercent
	}
	return in
}

// Analyze computes the coverage report. Empty populations yield zero ratios, never a fault.
// Analyze 计算覆盖报告。空群体返回零比率，而不是错误。
func (a *CoverageAnalyzer) Analyze(in models.CoverageInput) models.CoverageReport {
	report := models.CoverageReport{
		HighRiskCount:          in.HighRiskCount,
		ExperiencedStaffCount:  in.ExperiencedStaffCount,
		StaffCount:             in.StaffCount,
		IndividualCount:        in.IndividualCount,
		StaffToIndividualRatio: utils.Round2(utils.SafeRatio(float64(in.StaffCount), float64(in.IndividualCount))),
		CoverageAdequate:       in.ExperiencedStaffCount >= in.HighRiskCount,
		Recommendations:        []string{},
	}

	var total float64
	for _, u := range in.Utilizations {
		total += u
	}
	report.AverageUtilization = utils.Round2(utils.SafeRatio(total, float64(len(in.Utilizations))))
	report.HighUtilization = report.AverageUtilization > a.policy.AverageUtilizationAdvisory

	if !report.CoverageAdequate {
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"Assign %d more experienced staff member(s) to cover %d high-risk cadet(s)",
			in.HighRiskCount-in.ExperiencedStaffCount, in.HighRiskCount))
	}
	if report.HighUtilization {
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"Average staff utilization is %.0f%%; consider adding staff or redistributing shifts", report.AverageUtilization))
	}
	return report
}
