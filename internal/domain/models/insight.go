package models

import (
	"fmt"

	"github.com/turtacn/cadetops/pkg/constants"
)

// InsightPayload carries the counts an insight was derived from.
type InsightPayload struct {
	LowBehaviorCount    int `json:"lowBehaviorCount,omitempty"`
	HighBehaviorCount   int `json:"highBehaviorCount,omitempty"`
	AcademicAtRiskCount int `json:"academicAtRiskCount,omitempty"`
}

// Insight is a qualitative, population-level intervention suggestion.
type Insight struct {
	Type        constants.InsightType `json:"type"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Rationale   string                `json:"rationale"`
	Payload     InsightPayload        `json:"payload"`
}

// HighRiskIndividual is a value copy of the fields an alert displays.
type HighRiskIndividual struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	BehaviorScore int    `json:"behaviorScore"`
}

// HighRiskAlert lists the most concerning active individuals, capped at a display limit.
type HighRiskAlert struct {
	Type        constants.InsightType `json:"type"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Individuals []HighRiskIndividual  `json:"individuals"`
	TotalCount  int                   `json:"totalCount"`
	MoreCount   int                   `json:"moreCount"`
}

// MoreIndicator returns "+N more" when the display limit was exceeded.
func (a HighRiskAlert) MoreIndicator() string {
	if a.MoreCount <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d more", a.MoreCount)
}

// InsightReport is the output of one insight pass. HighRiskAlert is nil when nobody qualifies.
type InsightReport struct {
	Insights      []Insight      `json:"insights"`
	HighRiskAlert *HighRiskAlert `json:"highRiskAlert,omitempty"`
}
