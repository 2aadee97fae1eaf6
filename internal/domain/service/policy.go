package service

import (
	"fmt"
	"sync"

	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/errors"
)

// AnalyticsPolicy holds every tunable constant the analytics engine uses.
// AnalyticsPolicy 保存分析引擎使用的所有可调策略常量。
type AnalyticsPolicy struct {
	Risk      RiskPolicy      `yaml:"risk" json:"risk"`
	Insights  InsightPolicy   `yaml:"insights" json:"insights"`
	Inventory InventoryPolicy `yaml:"inventory" json:"inventory"`
	Workload  WorkloadPolicy  `yaml:"workload" json:"workload"`
	Coverage  CoveragePolicy  `yaml:"coverage" json:"coverage"`
}

// RiskPolicy configures the additive risk point model.
// RiskPolicy 配置加性风险评分模型。
type RiskPolicy struct {
	ScoringMaxBehavior  int `yaml:"scoring_max_behavior" json:"scoringMaxBehavior"`
	PointsPerBehavior   int `yaml:"points_per_behavior" json:"pointsPerBehavior"`
	YoungAgeBelow       int `yaml:"young_age_below" json:"youngAgeBelow"`
	YoungAgePoints      int `yaml:"young_age_points" json:"youngAgePoints"`
	OlderAgeAbove       int `yaml:"older_age_above" json:"olderAgeAbove"`
	OlderAgePoints      int `yaml:"older_age_points" json:"olderAgePoints"`
	NotStartedPoints    int `yaml:"not_started_points" json:"notStartedPoints"`
	CompletedPoints     int `yaml:"completed_points" json:"completedPoints"`
	NewEnrollmentDays   int `yaml:"new_enrollment_days" json:"newEnrollmentDays"`
	NewEnrollmentPoints int `yaml:"new_enrollment_points" json:"newEnrollmentPoints"`
	HighLevelMin        int `yaml:"high_level_min" json:"highLevelMin"`
	ElevatedLevelMin    int `yaml:"elevated_level_min" json:"elevatedLevelMin"`
}

// InsightPolicy configures the population insight rules.
// InsightPolicy 配置群体洞察规则。
type InsightPolicy struct {
	HighRiskMaxBehavior   int `yaml:"high_risk_max_behavior" json:"highRiskMaxBehavior"`
	PeerMentorMinBehavior int `yaml:"peer_mentor_min_behavior" json:"peerMentorMinBehavior"`
	AcademicMaxBehavior   int `yaml:"academic_max_behavior" json:"academicMaxBehavior"`
	HighRiskDisplayLimit  int `yaml:"high_risk_display_limit" json:"highRiskDisplayLimit"`
}

// InventoryPolicy configures depletion forecasting.
// InventoryPolicy 配置库存耗尽预测。
type InventoryPolicy struct {
	SoonHorizonDays    float64 `yaml:"soon_horizon_days" json:"soonHorizonDays"`
	FullConfidenceDays int     `yaml:"full_confidence_days" json:"fullConfidenceDays"`
	ReorderCoverDays   float64 `yaml:"reorder_cover_days" json:"reorderCoverDays"`
}

// WorkloadPolicy configures staff utilization.
// WorkloadPolicy 配置员工利用率计算。
type WorkloadPolicy struct {
	HoursPerShift          float64 `yaml:"hours_per_shift" json:"hoursPerShift"`
	ReferenceWorkweekHours float64 `yaml:"reference_workweek_hours" json:"referenceWorkweekHours"`
	ReduceLoadAbove        float64 `yaml:"reduce_load_above" json:"reduceLoadAbove"`
	CanTakeMoreBelow       float64 `yaml:"can_take_more_below" json:"canTakeMoreBelow"`
	CurrentWeekOnly        bool    `yaml:"current_week_only" json:"currentWeekOnly"`
}

// CoveragePolicy configures the staffing coverage check.
// CoveragePolicy 配置人员覆盖检查。
type CoveragePolicy struct {
	ExperiencedStaffYears      float64 `yaml:"experienced_staff_years" json:"experiencedStaffYears"`
	AverageUtilizationAdvisory float64 `yaml:"average_utilization_advisory" json:"averageUtilizationAdvisory"`
}

// DefaultPolicy returns the built-in analytics policy.
// DefaultPolicy 返回内置的分析策略。
func DefaultPolicy() AnalyticsPolicy {
	return AnalyticsPolicy{
		Risk: RiskPolicy{
			ScoringMaxBehavior:  constants.DefaultScoringMaxBehavior,
			PointsPerBehavior:   20,
			YoungAgeBelow:       16,
			YoungAgePoints:      10,
			OlderAgeAbove:       18,
			OlderAgePoints:      -5,
			NotStartedPoints:    15,
			CompletedPoints:     -10,
			NewEnrollmentDays:   constants.DefaultNewEnrollmentDays,
			NewEnrollmentPoints: 10,
			HighLevelMin:        70,
			ElevatedLevelMin:    40,
		},
		Insights: InsightPolicy{
			HighRiskMaxBehavior:   constants.DefaultHighRiskMaxBehavior,
			PeerMentorMinBehavior: constants.DefaultPeerMentorMinBehavior,
			AcademicMaxBehavior:   constants.DefaultScoringMaxBehavior,
			HighRiskDisplayLimit:  constants.DefaultHighRiskDisplayLimit,
		},
		Inventory: InventoryPolicy{
			SoonHorizonDays:    constants.DefaultSoonHorizonDays,
			FullConfidenceDays: constants.DefaultFullConfidenceDays,
			ReorderCoverDays:   constants.DefaultReorderCoverDays,
		},
		Workload: WorkloadPolicy{
			HoursPerShift:          constants.DefaultHoursPerShift,
			ReferenceWorkweekHours: constants.DefaultReferenceWorkweekHours,
			ReduceLoadAbove:        constants.DefaultReduceLoadAbovePercent,
			CanTakeMoreBelow:       constants.DefaultCanTakeMoreBelowPercent,
		},
		Coverage: CoveragePolicy{
			ExperiencedStaffYears:      constants.DefaultExperiencedStaffYears,
			AverageUtilizationAdvisory: constants.DefaultAverageUtilizationAdvisoryPercent,
		},
	}
}

// Validate checks the policy for values the engine cannot work with.
// Validate 检查策略中引擎无法处理的取值。
func (p AnalyticsPolicy) Validate() errors.DomainError {
	inScale := func(v int) bool {
		return v >= constants.MinBehaviorScore && v <= constants.MaxBehaviorScore
	}

	switch {
	case !inScale(p.Risk.ScoringMaxBehavior):
		return errors.ErrInvalidPolicy(fmt.Sprintf("risk.scoring_max_behavior %d outside behavior scale", p.Risk.ScoringMaxBehavior))
	case p.Risk.PointsPerBehavior < 0:
		// a negative step would make risk rise with better behavior
		return errors.ErrInvalidPolicy("risk.points_per_behavior must not be negative")
	case p.Risk.ElevatedLevelMin > p.Risk.HighLevelMin:
		return errors.ErrInvalidPolicy("risk.elevated_level_min must not exceed risk.high_level_min")
	case p.Risk.NewEnrollmentDays < 0:
		return errors.ErrInvalidPolicy("risk.new_enrollment_days must not be negative")
	case !inScale(p.Insights.HighRiskMaxBehavior), !inScale(p.Insights.PeerMentorMinBehavior), !inScale(p.Insights.AcademicMaxBehavior):
		return errors.ErrInvalidPolicy("insights behavior thresholds must lie on the behavior scale")
	case p.Insights.HighRiskMaxBehavior >= p.Insights.PeerMentorMinBehavior:
		return errors.ErrInvalidPolicy("insights.high_risk_max_behavior must be below insights.peer_mentor_min_behavior")
	case p.Insights.HighRiskDisplayLimit < 1:
		return errors.ErrInvalidPolicy("insights.high_risk_display_limit must be at least 1")
	case p.Inventory.SoonHorizonDays < 0:
		return errors.ErrInvalidPolicy("inventory.soon_horizon_days must not be negative")
	case p.Inventory.FullConfidenceDays <= 0:
		return errors.ErrInvalidPolicy("inventory.full_confidence_days must be positive")
	case p.Inventory.ReorderCoverDays < 0:
		return errors.ErrInvalidPolicy("inventory.reorder_cover_days must not be negative")
	case p.Workload.HoursPerShift <= 0:
		return errors.ErrInvalidPolicy("workload.hours_per_shift must be positive")
	case p.Workload.ReferenceWorkweekHours <= 0:
		return errors.ErrInvalidPolicy("workload.reference_workweek_hours must be positive")
	case p.Workload.CanTakeMoreBelow > p.Workload.ReduceLoadAbove:
		return errors.ErrInvalidPolicy("workload.can_take_more_below must not exceed workload.reduce_load_above")
	case p.Coverage.ExperiencedStaffYears < 0:
		return errors.ErrInvalidPolicy("coverage.experienced_staff_years must not be negative")
	}
	return nil
}

// PolicyProvider supplies the policy in force for the next analytics pass.
// PolicyProvider 为下一次分析提供当前生效的策略。
type PolicyProvider interface {
	// Current returns a copy of the active policy.
	// Current 返回当前策略的副本。
	Current() AnalyticsPolicy
}

// StaticPolicyProvider serves a policy that only changes through Set.
// StaticPolicyProvider 提供仅通过 Set 改变的策略。
type StaticPolicyProvider struct {
	mu     sync.RWMutex
	policy AnalyticsPolicy
}

// NewStaticPolicyProvider creates a provider for an already validated policy.
// NewStaticPolicyProvider 为已验证的策略创建提供者。
func NewStaticPolicyProvider(policy AnalyticsPolicy) *StaticPolicyProvider {
	return &StaticPolicyProvider{policy: policy}
}

func (p *StaticPolicyProvider) Current() AnalyticsPolicy {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.policy
}

// Set replaces the active policy after validating it.
// Set 在验证后替换当前策略。
func (p *StaticPolicyProvider) Set(policy AnalyticsPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	p.policy = policy
	p.mu.Unlock()
	return nil
}
