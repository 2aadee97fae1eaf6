package models

import "time"

// StaffRecord is a staff member as delivered by the data-access layer.
type StaffRecord struct {
	ID               string   `json:"id" validate:"required"`
	FirstName        string   `json:"firstName,omitempty"`
	LastName         string   `json:"lastName,omitempty"`
	ExperienceYears  *float64 `json:"experienceYears,omitempty" validate:"omitempty,min=0"`
	Role             string   `json:"role,omitempty"`
	ScheduleEntryIDs []string `json:"scheduleEntryIds,omitempty"`

	decodeErr error
}

// StaffMember is a validated staff member.
type StaffMember struct {
	ID               string
	Name             string
	ExperienceYears  float64
	Role             string
	ScheduleEntryIDs []string
}

// ScheduleEntryRecord is a scheduled shift as delivered by the scheduling store.
type ScheduleEntryRecord struct {
	ID        string `json:"id,omitempty"`
	StaffID   string `json:"staffId" validate:"required"`
	Date      *Date  `json:"date" validate:"required"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	TaskType  string `json:"taskType,omitempty"`

	decodeErr error
}

// ScheduleEntry is a validated shift. Duration is zero when start or end time is unknown.
type ScheduleEntry struct {
	ID       string
	StaffID  string
	Date     Date
	Start    time.Duration
	End      time.Duration
	TaskType string
}

// Duration returns the scheduled length of the shift.
func (e ScheduleEntry) Duration() time.Duration {
	if e.End <= e.Start {
		return 0
	}
	return e.End - e.Start
}
