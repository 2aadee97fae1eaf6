package models

import "github.com/turtacn/cadetops/pkg/constants"

// WorkloadRecord is the utilization summary for one staff member.
type WorkloadRecord struct {
	StaffID            string                 `json:"staffId"`
	StaffName          string                 `json:"staffName,omitempty"`
	WeeklyHours        float64                `json:"weeklyHours"`
	ScheduledHours     float64                `json:"scheduledHours"`
	UtilizationPercent float64                `json:"utilizationPercent"`
	ShiftCount         int                    `json:"shiftCount"`
	BalanceLabel       constants.BalanceLabel `json:"balanceLabel"`
	Color              string                 `json:"color"`
	Recommendation     string                 `json:"recommendation"`
}

// CoverageInput holds the aggregate counts the coverage analysis works from.
type CoverageInput struct {
	HighRiskCount         int
	ExperiencedStaffCount int
	StaffCount            int
	IndividualCount       int
	Utilizations          []float64
}

// CoverageReport cross-references high-risk individuals against experienced staff.
type CoverageReport struct {
	HighRiskCount          int      `json:"highRiskCount"`
	ExperiencedStaffCount  int      `json:"experiencedStaffCount"`
	StaffCount             int      `json:"staffCount"`
	IndividualCount        int      `json:"individualCount"`
	StaffToIndividualRatio float64  `json:"staffToIndividualRatio"`
	CoverageAdequate       bool     `json:"coverageAdequate"`
	AverageUtilization     float64  `json:"averageUtilization"`
	HighUtilization        bool     `json:"highUtilization"`
	Recommendations        []string `json:"recommendations"`
}
