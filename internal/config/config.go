package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/cadetops/pkg/errors"
)

// Config holds the application's configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	EnablePprof  bool   `mapstructure:"enable_pprof"`
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxConns        int    `mapstructure:"max_conns"`
	MinConns        int    `mapstructure:"min_conns"`
	MaxConnLifetime int    `mapstructure:"max_conn_lifetime"`  // in minutes
	MaxConnIdleTime int    `mapstructure:"max_conn_idle_time"` // in minutes
}

func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type RedisConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Addresses    []string `mapstructure:"addresses"`
	Password     string   `mapstructure:"password"`
	DB           int      `mapstructure:"db"`
	PoolSize     int      `mapstructure:"pool_size"`
	MinIdleConns int      `mapstructure:"min_idle_conns"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	SampleRate     float64 `mapstructure:"sample_rate"`
}

// AnalyticsConfig controls how analytics passes run.
type AnalyticsConfig struct {
	PolicyFile       string        `mapstructure:"policy_file"`
	WatchPolicy      bool          `mapstructure:"watch_policy"`
	Workers          int           `mapstructure:"workers"`
	SnapshotCacheTTL time.Duration `mapstructure:"snapshot_cache_ttl"`
	CurrentWeekOnly  bool          `mapstructure:"current_week_only"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return errors.ErrInvalidInput("server.port", fmt.Sprintf("%d is not a valid port", c.Server.Port))
	case c.Analytics.Workers < 1:
		return errors.ErrInvalidInput("analytics.workers", "must be at least 1")
	case c.Analytics.SnapshotCacheTTL < 0:
		return errors.ErrInvalidInput("analytics.snapshot_cache_ttl", "must not be negative")
	case c.Analytics.WatchPolicy && c.Analytics.PolicyFile == "":
		return errors.ErrInvalidInput("analytics.watch_policy", "requires analytics.policy_file")
	case c.Redis.Enabled && len(c.Redis.Addresses) == 0:
		return errors.ErrInvalidInput("redis.addresses", "required when redis is enabled")
	case c.Tracing.Enabled && c.Tracing.JaegerEndpoint == "":
		return errors.ErrInvalidInput("tracing.jaeger_endpoint", "required when tracing is enabled")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return errors.ErrInvalidInput("log.level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	return nil
}

//Personal.AI order the ending
