package service

import (
	"fmt"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/pkg/constants"
)

// InsightGenerator scans the active population and emits intervention insights.
// InsightGenerator 扫描在读群体并生成干预洞察。
type InsightGenerator struct {
	policy InsightPolicy
}

// NewInsightGenerator creates a new InsightGenerator.
// NewInsightGenerator 创建一个新的 InsightGenerator。
func NewInsightGenerator(policy InsightPolicy) *InsightGenerator {
	return &InsightGenerator{policy: policy}
}

// Generate evaluates every rule against the active cadets in the population. Insights come
// back in rule order; the high-risk alert is returned separately and is nil when nobody qualifies.
// Generate 针对群体中的在读学员评估每条规则。洞察按规则顺序返回；高风险警报单独返回，无人符合时为 nil。
func (g *InsightGenerator) Generate(population []models.Cadet) models.InsightReport {
	p := g.policy
	var low, high, academic int
	var highRisk []models.HighRiskIndividual

	for _, c := range population {
		if !c.IsActive() {
			continue
		}
		if c.BehaviorScore <= p.HighRiskMaxBehavior {
			low++
			highRisk = append(highRisk, models.HighRiskIndividual{ID: c.ID, Name: c.Name, BehaviorScore: c.BehaviorScore})
		}
		if c.BehaviorScore >= p.PeerMentorMinBehavior {
			high++
		}
		if c.AcademicStatus == constants.AcademicNotStarted && c.BehaviorScore <= p.AcademicMaxBehavior {
			academic++
		}
	}

	report := models.InsightReport{Insights: []models.Insight{}}
	if low > 0 && high > 0 {
		report.Insights = append(report.Insights, models.Insight{
			Type:        constants.InsightPeerPairing,
			Title:       "Peer Mentoring Opportunity",
			Description: fmt.Sprintf("Pair %d cadet(s) with low behavior scores with %d high-performing peer(s).", low, high),
			Rationale:   "Structured pairing with positive role models tends to improve conduct among struggling cadets.",
			Payload:     models.InsightPayload{LowBehaviorCount: low, HighBehaviorCount: high},
		})
	}
	if academic > 0 {
		report.Insights = append(report.Insights, models.Insight{
			Type:        constants.InsightAcademicIntervention,
			Title:       "Academic Support Needed",
			Description: fmt.Sprintf("%d cadet(s) have not started academic work and show behavioral concerns.", academic),
			Rationale:   "Early academic engagement is associated with better behavioral outcomes.",
			Payload:     models.InsightPayload{AcademicAtRiskCount: academic},
		})
	}

	if len(highRisk) > 0 {
		shown := highRisk
		if len(shown) > p.HighRiskDisplayLimit {
			shown = shown[:p.HighRiskDisplayLimit]
		}
		report.HighRiskAlert = &models.HighRiskAlert{
			Type:        constants.InsightHighRiskAlert,
			Title:       "High-Risk Cadets",
			Description: fmt.Sprintf("%d active cadet(s) have a behavior score of %d or lower.", len(highRisk), p.HighRiskMaxBehavior),
			Individuals: shown,
			TotalCount:  len(highRisk),
			MoreCount:   len(highRisk) - len(shown),
		}
	}
	return report
}
