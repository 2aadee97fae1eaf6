package postgres

import (
	"time"

	"github.com/turtacn/cadetops/internal/domain/models"
)

// CadetDBM is the row shape of the cadets table.
type CadetDBM struct {
	ID             string     `gorm:"column:id;primaryKey"`
	FirstName      string     `gorm:"column:first_name"`
	LastName       string     `gorm:"column:last_name"`
	BehaviorScore  *int       `gorm:"column:behavior_score"`
	AcademicStatus string     `gorm:"column:academic_status"`
	Age            *int       `gorm:"column:age"`
	EnrollmentDate *time.Time `gorm:"column:enrollment_date;type:date"`
	Status         string     `gorm:"column:status"`
}

func (CadetDBM) TableName() string { return "cadets" }

func (m CadetDBM) toRecord() models.CadetRecord {
	return models.CadetRecord{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		BehaviorScore:  m.BehaviorScore,
		AcademicStatus: m.AcademicStatus,
		Age:            m.Age,
		EnrollmentDate: toDate(m.EnrollmentDate),
		Status:         m.Status,
	}
}

// StaffDBM is the row shape of the staff table.
type StaffDBM struct {
	ID              string   `gorm:"column:id;primaryKey"`
	FirstName       string   `gorm:"column:first_name"`
	LastName        string   `gorm:"column:last_name"`
	ExperienceYears *float64 `gorm:"column:experience_years"`
	Role            string   `gorm:"column:role"`
}

func (StaffDBM) TableName() string { return "staff" }

func (m StaffDBM) toRecord(entryIDs []string) models.StaffRecord {
	return models.StaffRecord{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		ExperienceYears:  m.ExperienceYears,
		Role:             m.Role,
		ScheduleEntryIDs: entryIDs,
	}
}

// ScheduleEntryDBM is the row shape of the schedule_entries table.
// Start and end times are stored as "15:04" strings.
type ScheduleEntryDBM struct {
	ID        string     `gorm:"column:id;primaryKey"`
	StaffID   string     `gorm:"column:staff_id;index"`
	ShiftDate *time.Time `gorm:"column:shift_date;type:date"`
	StartTime string     `gorm:"column:start_time"`
	EndTime   string     `gorm:"column:end_time"`
	TaskType  string     `gorm:"column:task_type"`
}

func (ScheduleEntryDBM) TableName() string { return "schedule_entries" }

func (m ScheduleEntryDBM) toRecord() models.ScheduleEntryRecord {
	return models.ScheduleEntryRecord{
		ID:        m.ID,
		StaffID:   m.StaffID,
		Date:      toDate(m.ShiftDate),
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		TaskType:  m.TaskType,
	}
}

// InventoryItemDBM is the row shape of the inventory_items table.
// The usage columns are maintained by the upstream forecasting job.
type InventoryItemDBM struct {
	ID               string   `gorm:"column:id;primaryKey"`
	Name             string   `gorm:"column:name"`
	Category         string   `gorm:"column:category"`
	Quantity         *float64 `gorm:"column:quantity"`
	Threshold        *float64 `gorm:"column:threshold"`
	UsageRate        *float64 `gorm:"column:usage_rate"`
	UsageHistoryDays *int     `gorm:"column:usage_history_days"`
	UsageVariation   *float64 `gorm:"column:usage_variation"`
	ConfidenceScore  *float64 `gorm:"column:confidence_score"`
}

func (InventoryItemDBM) TableName() string { return "inventory_items" }

func (m InventoryItemDBM) toRecord() models.InventoryItemRecord {
	return models.InventoryItemRecord{
		ID:               m.ID,
		Name:             m.Name,
		Category:         m.Category,
		Quantity:         m.Quantity,
		Threshold:        m.Threshold,
		UsageRate:        m.UsageRate,
		UsageHistoryDays: m.UsageHistoryDays,
		UsageVariation:   m.UsageVariation,
		ConfidenceScore:  m.ConfidenceScore,
	}
}

func toDate(t *time.Time) *models.Date {
	if t == nil {
		return nil
	}
	d := models.NewDate(*t)
	return &d
}
