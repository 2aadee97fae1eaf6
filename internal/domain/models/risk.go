package models

import (
	"encoding/json"

	"github.com/turtacn/cadetops/pkg/constants"
)

// RiskFactors is the additive breakdown behind an applicable risk score.
type RiskFactors struct {
	Base     int `json:"base"`
	Age      int `json:"age"`
	Academic int `json:"academic"`
	Tenure   int `json:"tenure"`
}

// Sum returns the unclamped total of all factors.
func (f RiskFactors) Sum() int {
	return f.Base + f.Age + f.Academic + f.Tenure
}

// RiskResult is either Applicable or NotApplicable.
type RiskResult interface {
	isRiskResult()
}

// Applicable is a computed risk score in [0, 100].
type Applicable struct {
	Score   int
	Level   constants.RiskLevel
	Factors RiskFactors
}

// NotApplicable marks an individual that is not risk scored, with the reason why.
type NotApplicable struct {
	Reason string
}

func (Applicable) isRiskResult()    {}
func (NotApplicable) isRiskResult() {}

// RiskAssessment is the ephemeral risk result for one individual. It is never persisted.
type RiskAssessment struct {
	IndividualID string
	Result       RiskResult
}

// Score returns the numeric score and true when the assessment is applicable.
func (a RiskAssessment) Score() (int, bool) {
	if r, ok := a.Result.(Applicable); ok {
		return r.Score, true
	}
	return 0, false
}

type riskAssessmentJSON struct {
	IndividualID string       `json:"individualId"`
	Applicable   bool         `json:"applicable"`
	Score        *int         `json:"score,omitempty"`
	RiskLevel    string       `json:"riskLevel,omitempty"`
	Color        string       `json:"color,omitempty"`
	Factors      *RiskFactors `json:"factors,omitempty"`
	Reason       string       `json:"reason,omitempty"`
}

// MarshalJSON renders "score" only for applicable assessments, so "no score" never reads as zero.
func (a RiskAssessment) MarshalJSON() ([]byte, error) {
	out := riskAssessmentJSON{IndividualID: a.IndividualID}
	switch r := a.Result.(type) {
	case Applicable:
		score, factors := r.Score, r.Factors
		out.Applicable = true
		out.Score = &score
		out.RiskLevel = string(r.Level)
		out.Color = r.Level.Color()
		out.Factors = &factors
	case NotApplicable:
		out.Reason = r.Reason
	}
	return json.Marshal(out)
}
