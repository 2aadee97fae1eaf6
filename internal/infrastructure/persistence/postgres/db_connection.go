// Package postgres provides PostgreSQL database connection management for cadetops.
// It opens a pgx-backed database/sql handle and layers gorm on top of it.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/pkg/errors"
	"github.com/turtacn/cadetops/pkg/logger"
)

// DBConnection manages the PostgreSQL connection pool lifecycle.
type DBConnection struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	config *config.DatabaseConfig
	logger logger.Logger
}

// NewDBConnection creates a new PostgreSQL connection manager instance.
// It parses the DSN with pgx, applies pool settings and performs an initial health check.
func NewDBConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*DBConnection, error) {
	if cfg == nil {
		return nil, errors.ErrInvalidInput("database", "configuration is required")
	}

	log.Info(ctx, "Initializing PostgreSQL connection pool", logger.Fields{
		"host":      cfg.Host,
		"port":      cfg.Port,
		"database":  cfg.Database,
		"max_conns": cfg.MaxConns,
		"min_conns": cfg.MinConns,
	})

	connConfig, err := pgx.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Error(ctx, "Failed to parse database connection string", err)
		return nil, errors.ErrSnapshotUnavailable("invalid database configuration").WithCause(err)
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MinConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxConnLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.MaxConnIdleTime) * time.Minute)

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		_ = sqlDB.Close()
		log.Error(ctx, "Failed to open gorm session", err)
		return nil, errors.ErrSnapshotUnavailable("database unreachable").WithCause(err)
	}

	conn := &DBConnection{db: db, sqlDB: sqlDB, config: cfg, logger: log}
	if err := conn.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info(ctx, "PostgreSQL connection pool initialized successfully")
	return conn, nil
}

// DB returns the gorm session used by repository implementations.
func (c *DBConnection) DB() *gorm.DB {
	return c.db
}

// Ping verifies database connectivity and responsiveness.
func (c *DBConnection) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := c.sqlDB.PingContext(pingCtx); err != nil {
		c.logger.Error(ctx, "Database ping failed", err)
		return errors.ErrSnapshotUnavailable("database unreachable").WithCause(err)
	}

	latency := time.Since(start)
	if latency > 100*time.Millisecond {
		c.logger.Warn(ctx, "High database latency detected", logger.Fields{
			"latency_ms":   latency.Milliseconds(),
			"threshold_ms": 100,
		})
	}
	return nil
}

// HealthCheck pings the database and reports pool statistics.
func (c *DBConnection) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	if err := c.Ping(ctx); err != nil {
		return nil, err
	}

	stats := c.sqlDB.Stats()
	info := map[string]interface{}{
		"status":           "healthy",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"max_open":         stats.MaxOpenConnections,
		"wait_count":       stats.WaitCount,
		"wait_duration_ms": stats.WaitDuration.Milliseconds(),
	}
	if c.config.MaxConns > 0 && stats.Idle == 0 && stats.OpenConnections >= c.config.MaxConns {
		info["warning"] = "connection_pool_near_limit"
	}
	return info, nil
}

// Close gracefully shuts down the connection pool.
func (c *DBConnection) Close() error {
	c.logger.Info(context.Background(), "Closing PostgreSQL connection pool")
	if err := c.sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

//Personal.AI order the ending
