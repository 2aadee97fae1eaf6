package models

import (
	"time"

	"github.com/turtacn/cadetops/pkg/constants"
)

// Snapshot is a full, point-in-time copy of the source collections for one analytics request.
type Snapshot struct {
	ID         string                `json:"id"`
	CapturedAt time.Time             `json:"capturedAt"`
	Cadets     []CadetRecord         `json:"cadets"`
	Staff      []StaffRecord         `json:"staff"`
	Schedule   []ScheduleEntryRecord `json:"schedule"`
	Inventory  []InventoryItemRecord `json:"inventory"`
}

// NormalizedSnapshot is a Snapshot after validation and defaulting. It is read-only once built.
type NormalizedSnapshot struct {
	SnapshotID string
	CapturedAt time.Time
	Cadets     []Cadet
	Staff      []StaffMember
	Schedule   []ScheduleEntry
	Inventory  []InventoryItem
}

// ActiveCadets returns the cadets with Active status, in snapshot order.
func (s *NormalizedSnapshot) ActiveCadets() []Cadet {
	out := make([]Cadet, 0, len(s.Cadets))
	for _, c := range s.Cadets {
		if c.Status == constants.CadetActive {
			out = append(out, c)
		}
	}
	return out
}

// ShiftsByStaff groups schedule entries by staff ID.
func (s *NormalizedSnapshot) ShiftsByStaff() map[string][]ScheduleEntry {
	out := make(map[string][]ScheduleEntry, len(s.Staff))
	for _, e := range s.Schedule {
		out[e.StaffID] = append(out[e.StaffID], e)
	}
	return out
}

// RecordIssue reports a record that was skipped or could not be fully computed.
type RecordIssue struct {
	RecordType constants.RecordType `json:"recordType"`
	RecordID   string               `json:"recordId"`
	Code       constants.ErrorCode  `json:"code"`
	Message    string               `json:"message"`
}

// AnalyticsReport bundles every derived collection computed from one snapshot.
type AnalyticsReport struct {
	ReportID        string           `json:"reportId"`
	SnapshotID      string           `json:"snapshotId"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	RiskAssessments []RiskAssessment `json:"riskAssessments"`
	Insights        []Insight        `json:"insights"`
	HighRiskAlert   *HighRiskAlert   `json:"highRiskAlert,omitempty"`
	Forecasts       []ForecastResult `json:"forecasts"`
	Workloads       []WorkloadRecord `json:"workloads"`
	Coverage        CoverageReport   `json:"coverage"`
	Issues          []RecordIssue    `json:"issues"`
}
