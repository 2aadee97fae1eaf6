package service

import (
	"fmt"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/utils"
)

// RiskScorer computes the 0-100 conflict-risk estimate for one individual.
// RiskScorer 计算单个个体 0-100 的冲突风险估计。
type RiskScorer struct {
	policy RiskPolicy
}

// NewRiskScorer creates a new RiskScorer.
// NewRiskScorer 创建一个新的 RiskScorer。
func NewRiskScorer(policy RiskPolicy) *RiskScorer {
	return &RiskScorer{policy: policy}
}

// Assess scores a cadet as of today. Cadets whose behavior score is above the scoring
// threshold are reported as NotApplicable rather than given a number.
// Assess 以今天为基准为学员评分。行为分高于评分阈值的学员返回 NotApplicable，而不是数值。
func (s *RiskScorer) Assess(c models.Cadet, today models.Date) models.RiskAssessment {
	if c.BehaviorScore > s.policy.ScoringMaxBehavior {
		return models.RiskAssessment{
			IndividualID: c.ID,
			Result: models.NotApplicable{
				Reason: fmt.Sprintf("behavior score %d is above %d", c.BehaviorScore, s.policy.ScoringMaxBehavior),
			},
		}
	}

	factors := s.Factors(c, today)
	score := utils.ClampInt(factors.Sum(), 0, 100)
	return models.RiskAssessment{
		IndividualID: c.ID,
		Result: models.Applicable{
			Score:   score,
			Level:   s.Level(score),
			Factors: factors,
		},
	}
}

// Factors returns the unclamped point breakdown for a cadet.
// Factors 返回学员未截断的分项分数。
func (s *RiskScorer) Factors(c models.Cadet, today models.Date) models.RiskFactors {
	p := s.policy
	f := models.RiskFactors{
		Base: (constants.MaxBehaviorScore - c.BehaviorScore) * p.PointsPerBehavior,
	}

	if c.Age != nil {
		switch {
		case *c.Age < p.YoungAgeBelow:
			f.Age = p.YoungAgePoints
		case *c.Age > p.OlderAgeAbove:
			f.Age = p.OlderAgePoints
		}
	}

	switch c.AcademicStatus {
	case constants.AcademicNotStarted:
		f.Academic = p.NotStartedPoints
	case constants.AcademicCompleted:
		f.Academic = p.CompletedPoints
	}

	// unknown enrollment earns nothing
	if c.EnrollmentDate != nil && c.EnrollmentDate.DaysUntil(today) < p.NewEnrollmentDays {
		f.Tenure = p.NewEnrollmentPoints
	}
	return f
}

// Level maps a clamped score onto its display band.
// Level 将截断后的分数映射到显示等级。
func (s *RiskScorer) Level(score int) constants.RiskLevel {
	switch {
	case score >= s.policy.HighLevelMin:
		return constants.RiskLevelHigh
	case score >= s.policy.ElevatedLevelMin:
		return constants.RiskLevelElevated
	default:
		return constants.RiskLevelLow
	}
}
