// Package cache layers an in-process cache and an optional shared cache in front of a SnapshotRepository.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/domain/repository"
	"github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/logger"
)

// Cache layer names reported to metrics.
const (
	LayerLocal  = "local"
	LayerShared = "redis"
)

// CachedSnapshotRepository serves snapshots from L1 (go-cache), then L2 (optional), then the source.
// Concurrent loads are collapsed into one source read. Returned snapshots are shared and must not be mutated.
type CachedSnapshotRepository struct {
	source  repository.SnapshotRepository
	shared  repository.SnapshotCache
	local   *gocache.Cache
	ttl     time.Duration
	sf      singleflight.Group
	metrics service.Metrics
	logger  logger.Logger
}

// NewCachedSnapshotRepository wraps source. A ttl of zero disables caching but still collapses concurrent loads.
// shared may be nil.
func NewCachedSnapshotRepository(
	source repository.SnapshotRepository,
	shared repository.SnapshotCache,
	ttl time.Duration,
	metrics service.Metrics,
	log logger.Logger,
) *CachedSnapshotRepository {
	if metrics == nil {
		metrics = service.NoopMetrics{}
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	r := &CachedSnapshotRepository{
		source:  source,
		shared:  shared,
		ttl:     ttl,
		metrics: metrics,
		logger:  log.WithComponent("snapshot-cache"),
	}
	if ttl > 0 {
		r.local = gocache.New(ttl, 2*ttl)
	}
	return r
}

func (r *CachedSnapshotRepository) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	if r.local != nil {
		if v, ok := r.local.Get(constants.SnapshotCacheKey); ok {
			r.metrics.RecordSnapshotCache(LayerLocal, true)
			return v.(*models.Snapshot), nil
		}
		r.metrics.RecordSnapshotCache(LayerLocal, false)
	}

	v, err, _ := r.sf.Do(constants.SnapshotCacheKey, func() (interface{}, error) {
		return r.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Snapshot), nil
}

func (r *CachedSnapshotRepository) load(ctx context.Context) (*models.Snapshot, error) {
	if r.ttl > 0 && r.shared != nil {
		snap, err := r.shared.Get(ctx, constants.SnapshotCacheKey)
		switch {
		case err != nil:
			r.logger.Warn(ctx, "Shared snapshot cache read failed", logger.Fields{"error": err.Error()})
		case snap != nil:
			r.metrics.RecordSnapshotCache(LayerShared, true)
			r.local.SetDefault(constants.SnapshotCacheKey, snap)
			return snap, nil
		default:
			r.metrics.RecordSnapshotCache(LayerShared, false)
		}
	}

	snap, err := r.source.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if r.ttl <= 0 {
		return snap, nil
	}

	r.local.SetDefault(constants.SnapshotCacheKey, snap)
	if r.shared != nil {
		if err := r.shared.Set(ctx, constants.SnapshotCacheKey, snap, r.ttl); err != nil {
			r.logger.Warn(ctx, "Shared snapshot cache write failed", logger.Fields{"error": err.Error()})
		}
	}
	return snap, nil
}

// Invalidate drops the cached snapshot from the local layer.
func (r *CachedSnapshotRepository) Invalidate() {
	if r.local != nil {
		r.local.Delete(constants.SnapshotCacheKey)
	}
}
