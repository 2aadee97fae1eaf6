package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/constants"
)

func shifts(n int) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, n)
	for i := range out {
		out[i] = models.ScheduleEntry{
			ID:      fmt.Sprintf("e%d", i),
			StaffID: "s1",
			Date:    models.NewDate(testNow),
		}
	}
	return out
}

func TestWorkloadAnalyzer_Analyze(t *testing.T) {
	w := service.NewWorkloadAnalyzer(service.DefaultPolicy().Workload)
	staff := models.StaffMember{ID: "s1", Name: "Dana Reyes"}

	tests := []struct {
		name      string
		shifts    int
		wantHours float64
		wantUtil  float64
		wantLabel constants.BalanceLabel
	}{
		{name: "no shifts", shifts: 0, wantHours: 0, wantUtil: 0, wantLabel: constants.BalanceCanTakeMore},
		{name: "light load", shifts: 5, wantHours: 10, wantUtil: 25, wantLabel: constants.BalanceCanTakeMore},
		{name: "lower boundary", shifts: 6, wantHours: 12, wantUtil: 30, wantLabel: constants.BalanceWellBalanced},
		{name: "balanced", shifts: 15, wantHours: 30, wantUtil: 75, wantLabel: constants.BalanceWellBalanced},
		{name: "upper boundary", shifts: 18, wantHours: 36, wantUtil: 90, wantLabel: constants.BalanceWellBalanced},
		{name: "overloaded", shifts: 19, wantHours: 38, wantUtil: 95, wantLabel: constants.BalanceReduceLoad},
		{name: "far beyond a workweek", shifts: 500, wantHours: 1000, wantUtil: 100, wantLabel: constants.BalanceReduceLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := w.Analyze(staff, shifts(tt.shifts))
			assert.Equal(t, "s1", rec.StaffID)
			assert.Equal(t, tt.shifts, rec.ShiftCount)
			assert.Equal(t, tt.wantHours, rec.WeeklyHours)
			assert.Equal(t, tt.wantUtil, rec.UtilizationPercent)
			assert.Equal(t, tt.wantLabel, rec.BalanceLabel)
			assert.Equal(t, tt.wantLabel.Color(), rec.Color)
			assert.NotEmpty(t, rec.Recommendation)
		})
	}
}

func TestWorkloadAnalyzer_UtilizationAlwaysBounded(t *testing.T) {
	w := service.NewWorkloadAnalyzer(service.DefaultPolicy().Workload)
	for n := 0; n <= 60; n++ {
		rec := w.Analyze(models.StaffMember{ID: "s1"}, shifts(n))
		assert.GreaterOrEqual(t, rec.UtilizationPercent, 0.0)
		assert.LessOrEqual(t, rec.UtilizationPercent, 100.0)
	}
}

func TestWorkloadAnalyzer_ScheduledHours(t *testing.T) {
	w := service.NewWorkloadAnalyzer(service.DefaultPolicy().Workload)
	entries := []models.ScheduleEntry{
		{StaffID: "s1", Start: 8 * time.Hour, End: 12 * time.Hour},
		{StaffID: "s1", Start: 13*time.Hour + 30*time.Minute, End: 15 * time.Hour},
		{StaffID: "s1"},
	}

	rec := w.Analyze(models.StaffMember{ID: "s1"}, entries)
	assert.Equal(t, 5.5, rec.ScheduledHours)
	// weekly hours are credited per shift, not per clock hour
	assert.Equal(t, 6.0, rec.WeeklyHours)
}

func TestWorkloadAnalyzer_CustomShiftLength(t *testing.T) {
	policy := service.DefaultPolicy().Workload
	policy.HoursPerShift = 8
	w := service.NewWorkloadAnalyzer(policy)

	rec := w.Analyze(models.StaffMember{ID: "s1"}, shifts(5))
	assert.Equal(t, 40.0, rec.WeeklyHours)
	assert.Equal(t, 100.0, rec.UtilizationPercent)
	assert.Equal(t, constants.BalanceReduceLoad, rec.BalanceLabel)
}

func TestInWeekOf(t *testing.T) {
	today := models.NewDate(testNow) // Wednesday
	monday := models.ScheduleEntry{Date: models.NewDate(testNow.AddDate(0, 0, -2))}
	sunday := models.ScheduleEntry{Date: models.NewDate(testNow.AddDate(0, 0, 4))}
	lastWeek := models.ScheduleEntry{Date: models.NewDate(testNow.AddDate(0, 0, -3))}

	assert.True(t, service.InWeekOf(monday, today))
	assert.True(t, service.InWeekOf(sunday, today))
	assert.False(t, service.InWeekOf(lastWeek, today))
}
