package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/domain/service"
)

func sampleSnapshot() *models.Snapshot {
	today := models.NewDate(testNow)
	lastMonth := models.NewDate(testNow.AddDate(0, -1, 0))
	return &models.Snapshot{
		ID:         "snap-42",
		CapturedAt: testNow,
		Cadets: []models.CadetRecord{
			{ID: "c1", FirstName: "Ava", BehaviorScore: intPtr(1), Age: intPtr(15), AcademicStatus: "NotStarted", EnrollmentDate: daysAgo(10)},
			{ID: "c2", FirstName: "Ben", BehaviorScore: intPtr(2), AcademicStatus: "InProgress"},
			{ID: "c3", FirstName: "Cal", BehaviorScore: intPtr(4)},
			{ID: "c4", FirstName: "Dee", BehaviorScore: intPtr(5), Status: "Graduated"},
			{ID: "bad", BehaviorScore: intPtr(8)},
		},
		Staff: []models.StaffRecord{
			{ID: "s1", FirstName: "Eve", ExperienceYears: floatPtr(4)},
			{ID: "s2", FirstName: "Fin", ExperienceYears: floatPtr(0.5)},
		},
		Schedule: []models.ScheduleEntryRecord{
			{ID: "e1", StaffID: "s1", Date: &today, StartTime: "08:00", EndTime: "10:00"},
			{ID: "e2", StaffID: "s1", Date: &today},
			{ID: "e3", StaffID: "s1", Date: &lastMonth},
		},
	}
}

func normalize(t *testing.T, engine *service.Engine, snap *models.Snapshot) *models.NormalizedSnapshot {
	t.Helper()
	ns, _ := engine.Normalizer().NormalizeSnapshot(snap)
	require.NotNil(t, ns)
	return ns
}

func workloadsOf(engine *service.Engine, ns *models.NormalizedSnapshot) []models.WorkloadRecord {
	shifts := engine.ShiftsByStaff(ns)
	out := make([]models.WorkloadRecord, len(ns.Staff))
	for i, s := range ns.Staff {
		out[i] = engine.WorkloadAnalyzer().Analyze(s, shifts[s.ID])
	}
	return out
}

func TestEngine_Today(t *testing.T) {
	engine := service.NewEngine(service.DefaultPolicy())
	ns := normalize(t, engine, sampleSnapshot())

	assert.Equal(t, "2024-03-13", service.Today(ns).String())
}

func TestEngine_ShiftsByStaff(t *testing.T) {
	t.Run("all weeks", func(t *testing.T) {
		engine := service.NewEngine(service.DefaultPolicy())
		shifts := engine.ShiftsByStaff(normalize(t, engine, sampleSnapshot()))

		assert.Len(t, shifts["s1"], 3)
		assert.Empty(t, shifts["s2"])
	})

	t.Run("current week only", func(t *testing.T) {
		policy := service.DefaultPolicy()
		policy.Workload.CurrentWeekOnly = true
		engine := service.NewEngine(policy)
		ns := normalize(t, engine, sampleSnapshot())

		shifts := engine.ShiftsByStaff(ns)
		require.Len(t, shifts["s1"], 2)
		for _, e := range shifts["s1"] {
			assert.True(t, service.InWeekOf(e, service.Today(ns)))
		}

		workloads := workloadsOf(engine, ns)
		assert.Equal(t, 2, workloads[0].ShiftCount)
		assert.Equal(t, 2.0, workloads[0].ScheduledHours)
	})
}

func TestEngine_Coverage(t *testing.T) {
	engine := service.NewEngine(service.DefaultPolicy())
	ns := normalize(t, engine, sampleSnapshot())

	report := engine.Coverage(ns, workloadsOf(engine, ns))
	assert.Equal(t, 2, report.HighRiskCount)
	assert.Equal(t, 1, report.ExperiencedStaffCount)
	assert.Equal(t, 3, report.IndividualCount)
	assert.False(t, report.CoverageAdequate)
}

func TestEngine_CoverageOfEmptySnapshot(t *testing.T) {
	engine := service.NewEngine(service.DefaultPolicy())
	ns := normalize(t, engine, &models.Snapshot{ID: "empty", CapturedAt: testNow})

	report := engine.Coverage(ns, nil)
	assert.Zero(t, report.StaffToIndividualRatio)
	assert.Zero(t, report.AverageUtilization)
	assert.True(t, report.CoverageAdequate)
}

func TestEngine_ComponentsFollowPolicy(t *testing.T) {
	policy := service.DefaultPolicy()
	policy.Workload.HoursPerShift = 8
	engine := service.NewEngine(policy)

	assert.Equal(t, policy, engine.Policy())
	ns := normalize(t, engine, sampleSnapshot())
	workloads := workloadsOf(engine, ns)
	assert.Equal(t, 24.0, workloads[0].WeeklyHours)
}
