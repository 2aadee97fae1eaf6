package service_test

import (
	"time"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/pkg/constants"
)

var testNow = time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
func datePtr(d models.Date) *models.Date { return &d }

func daysAgo(n int) *models.Date {
	return datePtr(models.NewDate(testNow.AddDate(0, 0, -n)))
}

func cadet(id string, behavior int, status constants.AcademicStatus) models.Cadet {
	return models.Cadet{
		ID:             id,
		Name:           id,
		BehaviorScore:  behavior,
		AcademicStatus: status,
		Status:         constants.CadetActive,
	}
}
