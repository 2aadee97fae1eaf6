// Package redis provides Redis connection management and the snapshot cache built on it.
// A single address connects to a standalone server; several addresses form a cluster client.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/pkg/logger"
)

// RedisConnection manages Redis client lifecycle and health monitoring.
type RedisConnection struct {
	config *config.RedisConfig
	client redis.UniversalClient
	logger logger.Logger
}

// NewRedisConnection creates a new Redis connection manager instance.
func NewRedisConnection(cfg *config.RedisConfig, log logger.Logger) *RedisConnection {
	return &RedisConnection{config: cfg, logger: log}
}

// Connect establishes the Redis connection and validates connectivity.
func (rc *RedisConnection) Connect(ctx context.Context) error {
	if rc.client != nil {
		rc.logger.Warn(ctx, "Redis connection already initialized")
		return nil
	}
	if len(rc.config.Addresses) == 0 {
		return fmt.Errorf("redis connection failed: no addresses configured")
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        rc.config.Addresses,
		Password:     rc.config.Password,
		DB:           rc.config.DB,
		PoolSize:     rc.config.PoolSize,
		MinIdleConns: rc.config.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		rc.logger.Error(ctx, "Redis ping failed", err, logger.Fields{"addresses": rc.config.Addresses})
		_ = client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	rc.client = client
	rc.logger.Info(ctx, "Redis connection established", logger.Fields{
		"addresses": rc.config.Addresses,
		"db":        rc.config.DB,
	})
	return nil
}

// GetClient returns the underlying client, or nil before Connect.
func (rc *RedisConnection) GetClient() redis.UniversalClient {
	return rc.client
}

// HealthCheck pings Redis and reports pool statistics.
func (rc *RedisConnection) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	if rc.client == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}
	start := time.Now()
	if err := rc.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	stats := rc.client.PoolStats()
	return map[string]interface{}{
		"status":      "healthy",
		"latency_ms":  time.Since(start).Milliseconds(),
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
	}, nil
}

// Close closes the Redis client.
func (rc *RedisConnection) Close() error {
	if rc.client == nil {
		return nil
	}
	if err := rc.client.Close(); err != nil {
		rc.logger.Error(context.Background(), "Failed to close Redis connection", err)
		return err
	}
	rc.client = nil
	return nil
}

//Personal.AI order the ending
