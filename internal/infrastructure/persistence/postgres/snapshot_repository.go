package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/domain/repository"
	"github.com/turtacn/cadetops/pkg/errors"
	"github.com/turtacn/cadetops/pkg/logger"
)

// SnapshotRepoImpl implements SnapshotRepository using PostgreSQL.
// All four collections are read inside one transaction so the snapshot is consistent.
type SnapshotRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
	txOpts *sql.TxOptions
	now    func() time.Time
}

// Option customizes a SnapshotRepoImpl.
type Option func(*SnapshotRepoImpl)

// WithTxOptions overrides the read-only repeatable-read transaction options.
func WithTxOptions(opts *sql.TxOptions) Option {
	return func(r *SnapshotRepoImpl) { r.txOpts = opts }
}

// WithClock overrides the clock used for CapturedAt.
func WithClock(now func() time.Time) Option {
	return func(r *SnapshotRepoImpl) { r.now = now }
}

// NewSnapshotRepository creates a new PostgreSQL-based snapshot repository instance.
func NewSnapshotRepository(db *gorm.DB, log logger.Logger, opts ...Option) repository.SnapshotRepository {
	r := &SnapshotRepoImpl{
		db:     db,
		logger: log,
		txOpts: &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadSnapshot reads cadets, staff, schedule entries and inventory items in one transaction.
func (r *SnapshotRepoImpl) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	start := time.Now()

	var (
		cadets    []CadetDBM
		staff     []StaffDBM
		entries   []ScheduleEntryDBM
		inventory []InventoryItemDBM
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&cadets).Error; err != nil {
			return err
		}
		if err := tx.Order("id").Find(&staff).Error; err != nil {
			return err
		}
		if err := tx.Order("shift_date, staff_id, id").Find(&entries).Error; err != nil {
			return err
		}
		return tx.Order("id").Find(&inventory).Error
	}, r.txOpts)
	if err != nil {
		r.logger.Error(ctx, "Failed to load snapshot", err)
		return nil, errors.ErrSnapshotUnavailable("database read failed").WithCause(err)
	}

	snap := &models.Snapshot{
		ID:         uuid.NewString(),
		CapturedAt: r.now().UTC(),
		Cadets:     make([]models.CadetRecord, 0, len(cadets)),
		Staff:      make([]models.StaffRecord, 0, len(staff)),
		Schedule:   make([]models.ScheduleEntryRecord, 0, len(entries)),
		Inventory:  make([]models.InventoryItemRecord, 0, len(inventory)),
	}

	entryIDs := make(map[string][]string, len(staff))
	for _, e := range entries {
		snap.Schedule = append(snap.Schedule, e.toRecord())
		entryIDs[e.StaffID] = append(entryIDs[e.StaffID], e.ID)
	}
	for _, c := range cadets {
		snap.Cadets = append(snap.Cadets, c.toRecord())
	}
	for _, s := range staff {
		snap.Staff = append(snap.Staff, s.toRecord(entryIDs[s.ID]))
	}
	for _, i := range inventory {
		snap.Inventory = append(snap.Inventory, i.toRecord())
	}

	r.logger.Debug(ctx, "Snapshot loaded", logger.Fields{
		"snapshot_id": snap.ID,
		"cadets":      len(snap.Cadets),
		"staff":       len(snap.Staff),
		"schedule":    len(snap.Schedule),
		"inventory":   len(snap.Inventory),
		"latency_ms":  time.Since(start).Milliseconds(),
	})
	return snap, nil
}

// AutoMigrate creates or updates the snapshot tables.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&CadetDBM{}, &StaffDBM{}, &ScheduleEntryDBM{}, &InventoryItemDBM{})
}
