package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	appservice "github.com/turtacn/cadetops/internal/application/service"
	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/domain/repository"
	domainservice "github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/internal/infrastructure/monitoring"
	"github.com/turtacn/cadetops/internal/infrastructure/persistence/cache"
	"github.com/turtacn/cadetops/internal/infrastructure/persistence/postgres"
	"github.com/turtacn/cadetops/internal/infrastructure/persistence/redis"
	"github.com/turtacn/cadetops/internal/infrastructure/policy"
	"github.com/turtacn/cadetops/internal/interfaces/http"
	"github.com/turtacn/cadetops/internal/interfaces/http/handlers"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/errors"
	"github.com/turtacn/cadetops/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Logger for startup
	startupLogger, _ := monitoring.NewZapLogger(&config.LogConfig{Level: "info"})

	// Load config
	cfg, err := config.LoadConfig(startupLogger)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Initialize tracing
	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize tracer", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	analyticsMetrics := monitoring.NewMetricsAdapter(metrics)

	policies, closePolicies := buildPolicyProvider(cfg, appLogger)
	defer closePolicies()

	checkers := make(map[string]handlers.HealthChecker)

	// Initialize snapshot source
	var source repository.SnapshotRepository = unavailableRepository{}
	if cfg.Database.Enabled {
		db, err := postgres.NewDBConnection(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "Failed to connect to database", err)
		}
		defer db.Close()
		checkers["database"] = db
		source = postgres.NewSnapshotRepository(db.DB(), appLogger)
	} else {
		appLogger.Warn(ctx, "No database configured, only caller-supplied snapshots can be analyzed")
	}

	var shared repository.SnapshotCache
	if cfg.Redis.Enabled {
		redisConn := redis.NewRedisConnection(&cfg.Redis, appLogger)
		if err := redisConn.Connect(ctx); err != nil {
			appLogger.Fatal(ctx, "Failed to connect to Redis", err)
		}
		defer redisConn.Close()
		checkers["redis"] = redisConn
		shared = redis.NewSnapshotCache(redisConn.GetClient())
	}

	snapshots := cache.NewCachedSnapshotRepository(source, shared, cfg.Analytics.SnapshotCacheTTL, analyticsMetrics, appLogger)

	// Initialize application services
	analyticsSvc := appservice.NewAnalyticsAppService(snapshots, policies, analyticsMetrics, appLogger,
		appservice.AnalyticsOptions{Workers: cfg.Analytics.Workers, Tracer: tracing.Tracer()})

	// Initialize HTTP handlers and router
	router := http.NewRouter(cfg, appLogger,
		handlers.NewHealthHandler(checkers, appLogger),
		handlers.NewAnalyticsHandler(analyticsSvc, appLogger),
		tracing, metrics, prometheus.DefaultGatherer,
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- router.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			appLogger.Fatal(ctx, "HTTP server failed", err)
		}
	case sig := <-quit:
		appLogger.Info(ctx, "Shutting down", logger.Fields{"signal": sig.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := router.Stop(shutdownCtx); err != nil {
		appLogger.Error(ctx, "HTTP server shutdown failed", err)
	}
}

// buildPolicyProvider returns the configured policy source and a cleanup func.
func buildPolicyProvider(cfg *config.Config, log logger.Logger) (domainservice.PolicyProvider, func()) {
	base := domainservice.DefaultPolicy()
	base.Workload.CurrentWeekOnly = cfg.Analytics.CurrentWeekOnly

	path := cfg.Analytics.PolicyFile
	switch {
	case path == "":
		return domainservice.NewStaticPolicyProvider(base), func() {}
	case cfg.Analytics.WatchPolicy:
		w, err := policy.NewWatcher(path, base, log)
		if err != nil {
			log.Fatal(context.Background(), "Failed to watch policy file", err, logger.Fields{"path": path})
		}
		return w, func() { _ = w.Close() }
	default:
		active, err := policy.LoadPolicyFile(path, base)
		if err != nil {
			log.Fatal(context.Background(), "Failed to load policy file", err, logger.Fields{"path": path})
		}
		return domainservice.NewStaticPolicyProvider(active), func() {}
	}
}

// unavailableRepository backs the repository-driven endpoints when no database is configured.
type unavailableRepository struct{}

func (unavailableRepository) LoadSnapshot(context.Context) (*models.Snapshot, error) {
	return nil, errors.ErrSnapshotUnavailable("no database configured")
}

//Personal.AI order the ending
