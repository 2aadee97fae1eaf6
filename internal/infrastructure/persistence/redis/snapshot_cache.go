package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/domain/repository"
)

// SnapshotCache stores JSON-encoded snapshots in Redis.
type SnapshotCache struct {
	client redis.UniversalClient
}

// NewSnapshotCache creates a Redis-backed snapshot cache.
func NewSnapshotCache(client redis.UniversalClient) repository.SnapshotCache {
	return &SnapshotCache{client: client}
}

// Get returns nil, nil when the key is absent.
func (c *SnapshotCache) Get(ctx context.Context, key string) (*models.Snapshot, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return &snap, nil
}

func (c *SnapshotCache) Set(ctx context.Context, key string, snap *models.Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
