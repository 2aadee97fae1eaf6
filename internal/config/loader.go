package config

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/errors"
	"github.com/turtacn/cadetops/pkg/logger"
)

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(log logger.Logger) (*Config, error) {
	return Load(log, "")
}

// Load reads the given config file, or searches the default locations when path is empty.
func Load(log logger.Logger, path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Load from config file
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.WrapError(err, constants.ErrCodeInvalidInput, "config file not readable")
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/cadetops/")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.WrapError(err, constants.ErrCodeInvalidInput, "failed to read config file")
		}
		if log != nil {
			log.Debug(context.Background(), "No config file found, using defaults and environment")
		}
	}

	// Load from environment variables
	v.SetEnvPrefix("CADETOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapError(err, constants.ErrCodeInvalidInput, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.enable_pprof", false)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "cadetops")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "cadetops")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", 60)
	v.SetDefault("database.max_conn_idle_time", 10)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addresses", []string{"localhost:6379"})
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 1)

	v.SetDefault("log.level", string(constants.LogLevelInfo))
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_path", "stdout")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "")
	v.SetDefault("tracing.service_name", "cadetops")
	v.SetDefault("tracing.sample_rate", 1.0)

	v.SetDefault("analytics.policy_file", "")
	v.SetDefault("analytics.watch_policy", false)
	v.SetDefault("analytics.workers", constants.DefaultAnalyticsWorkers)
	v.SetDefault("analytics.snapshot_cache_ttl", constants.DefaultSnapshotCacheTTL)
	v.SetDefault("analytics.current_week_only", false)
}

//Personal.AI order the ending
