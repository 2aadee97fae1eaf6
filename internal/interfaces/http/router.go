package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/internal/infrastructure/monitoring"
	"github.com/turtacn/cadetops/internal/interfaces/http/handlers"
	"github.com/turtacn/cadetops/internal/interfaces/http/middleware"
	"github.com/turtacn/cadetops/pkg/logger"
)

// Router HTTP 路由器
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	logger           logger.Logger
	healthHandler    *handlers.HealthHandler
	analyticsHandler *handlers.AnalyticsHandler
	tracing          *monitoring.TracingManager
	metrics          *monitoring.Metrics
	gatherer         prometheus.Gatherer
	server           *http.Server
}

// NewRouter 创建路由器
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	healthHandler *handlers.HealthHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	tracing *monitoring.TracingManager,
	metrics *monitoring.Metrics,
	gatherer prometheus.Gatherer,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &Router{
		engine:           gin.New(),
		config:           cfg,
		logger:           log,
		healthHandler:    healthHandler,
		analyticsHandler: analyticsHandler,
		tracing:          tracing,
		metrics:          metrics,
		gatherer:         gatherer,
	}
}

// SetupRoutes 设置路由
func (r *Router) SetupRoutes() {
	// 全局中间件
	r.engine.Use(handlers.RecoveryMiddleware(r.logger))
	r.engine.Use(handlers.RequestIDMiddleware())
	r.engine.Use(middleware.ObservabilityMiddleware(r.tracing, r.metrics))
	r.engine.Use(handlers.LoggingMiddleware(r.logger))

	// CORS 配置
	r.engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "X-Request-ID", "traceparent"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	// 健康检查路由
	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/health/live", r.healthHandler.LivenessCheck)
	r.engine.GET("/health/ready", r.healthHandler.HealthCheck)

	// Prometheus metrics
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))

	// Pprof 性能分析（按配置开启）
	if r.config.Server.EnablePprof {
		pprof.Register(r.engine)
	}

	// API 路由组
	v1 := r.engine.Group("/api/v1")
	{
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/report", r.analyticsHandler.GetReport)
			analytics.POST("/report", r.analyticsHandler.PostReport)
			analytics.GET("/risk", r.analyticsHandler.GetRisk)
			analytics.GET("/insights", r.analyticsHandler.GetInsights)
			analytics.GET("/forecasts", r.analyticsHandler.GetForecasts)
			analytics.GET("/workload", r.analyticsHandler.GetWorkload)
			analytics.GET("/coverage", r.analyticsHandler.GetCoverage)
		}
	}

	// 404 处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "The requested resource was not found",
		})
	})
}

// Start 启动 HTTP 服务器，阻塞直到服务器关闭
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := r.config.Server.Addr()
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	r.logger.Info(context.Background(), "Starting HTTP server", logger.Fields{"address": addr})

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop 停止 HTTP 服务器
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}

	r.logger.Info(ctx, "Stopping HTTP server...")
	return r.server.Shutdown(ctx)
}

// Engine 返回底层 gin 引擎
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

//Personal.AI order the ending
