package repository

import (
	"context"
	"time"

	"github.com/turtacn/cadetops/internal/domain/models"
)

//go:generate mockery --name SnapshotRepository --output ../repository/mocks --filename snapshot_repository.go
type SnapshotRepository interface {
	// LoadSnapshot reads every source collection in one consistent read. Implementations must
	// never return a snapshot mixing collections from different points in time.
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
}

// SnapshotCache stores serialized snapshots between requests.
type SnapshotCache interface {
	// Get returns the cached snapshot, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) (*models.Snapshot, error)

	// Set stores the snapshot for the given TTL.
	Set(ctx context.Context, key string, snap *models.Snapshot, ttl time.Duration) error
}
