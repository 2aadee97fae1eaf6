package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/turtacn/cadetops/pkg/errors"
	"github.com/turtacn/cadetops/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(context.Background(), db))
	return db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	behavior, age := 2, 15
	enrolled := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	shift := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	years := 3.5
	qty, thr, rate, days := 10.0, 5.0, 1.0, 30

	require.NoError(t, db.Create(&[]CadetDBM{
		{ID: "c2", FirstName: "Ana", LastName: "Diaz", BehaviorScore: &behavior, Age: &age, EnrollmentDate: &enrolled, Status: "Active"},
		{ID: "c1", FirstName: "Ben", BehaviorScore: &behavior},
	}).Error)
	require.NoError(t, db.Create(&StaffDBM{ID: "s1", FirstName: "Kim", ExperienceYears: &years, Role: "instructor"}).Error)
	require.NoError(t, db.Create(&[]ScheduleEntryDBM{
		{ID: "e1", StaffID: "s1", ShiftDate: &shift, StartTime: "08:00", EndTime: "10:00"},
		{ID: "e2", StaffID: "s1", ShiftDate: &shift, StartTime: "13:00", EndTime: "15:30"},
	}).Error)
	require.NoError(t, db.Create(&InventoryItemDBM{
		ID: "i1", Name: "Boots", Quantity: &qty, Threshold: &thr, UsageRate: &rate, UsageHistoryDays: &days,
	}).Error)
}

func TestSnapshotRepository_LoadSnapshot(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	captured := time.Date(2024, 3, 13, 9, 30, 0, 0, time.UTC)
	repo := NewSnapshotRepository(db, logger.NewNoopLogger(), WithClock(func() time.Time { return captured }))

	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, captured, snap.CapturedAt)

	require.Len(t, snap.Cadets, 2)
	assert.Equal(t, "c1", snap.Cadets[0].ID, "rows are ordered by id")
	assert.Equal(t, "c2", snap.Cadets[1].ID)
	require.NotNil(t, snap.Cadets[1].EnrollmentDate)
	assert.Equal(t, "2024-03-01", snap.Cadets[1].EnrollmentDate.String())
	assert.Nil(t, snap.Cadets[0].EnrollmentDate)
	assert.Nil(t, snap.Cadets[0].Age)

	require.Len(t, snap.Staff, 1)
	assert.Equal(t, []string{"e1", "e2"}, snap.Staff[0].ScheduleEntryIDs)
	require.Len(t, snap.Schedule, 2)
	assert.Equal(t, "2024-03-12", snap.Schedule[0].Date.String())
	assert.Equal(t, "15:30", snap.Schedule[1].EndTime)

	require.Len(t, snap.Inventory, 1)
	assert.Nil(t, snap.Inventory[0].UsageVariation)
	assert.Equal(t, 1.0, *snap.Inventory[0].UsageRate)
}

func TestSnapshotRepository_EmptyTables(t *testing.T) {
	repo := NewSnapshotRepository(newTestDB(t), logger.NewNoopLogger())

	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap.Cadets)
	assert.Empty(t, snap.Cadets)
	assert.Empty(t, snap.Inventory)
}

func TestSnapshotRepository_Unavailable(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&InventoryItemDBM{}))

	repo := NewSnapshotRepository(db, logger.NewNoopLogger())
	snap, err := repo.LoadSnapshot(context.Background())

	assert.Nil(t, snap)
	require.Error(t, err)
	domainErr, ok := errors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "snapshot_unavailable", string(domainErr.Code()))
}
