// Package monitoring 提供分布式追踪的实现
package monitoring

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/pkg/logger"
)

// TracerName 是分析引擎使用的追踪器名称
const TracerName = "cadetops-analytics"

// TracingManager 管理 OpenTelemetry 追踪
type TracingManager struct {
	tracer     trace.Tracer
	provider   *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
	logger     logger.Logger
}

// defaultPropagator 同时传播 W3C traceparent 与 baggage
func defaultPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

// NewTracingManager 创建追踪管理器
func NewTracingManager(cfg *config.TracingConfig, log logger.Logger) (*TracingManager, error) {
	if !cfg.Enabled {
		log.Info(context.Background(), "Tracing is disabled")
		return &TracingManager{
			tracer:     otel.Tracer(TracerName),
			propagator: defaultPropagator(),
			logger:     log,
		}, nil
	}

	// 创建 Jaeger exporter
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(cfg.JaegerEndpoint),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	return newTracingManager(cfg, sdktrace.WithBatcher(exporter), log)
}

// newTracingManager 使用给定的 span 处理选项构建 TracerProvider
func newTracingManager(cfg *config.TracingConfig, processor sdktrace.TracerProviderOption, log logger.Logger) (*TracingManager, error) {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "cadetops"
	}

	// 创建资源
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		processor,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	)

	tm := NewTracingManagerForProvider(provider, log)

	// 设置全局 TracerProvider 与 Propagator
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(tm.propagator)

	log.Info(context.Background(), "Tracing initialized successfully", logger.Fields{
		"endpoint":    cfg.JaegerEndpoint,
		"sample_rate": cfg.SampleRate,
	})
	return tm, nil
}

// NewTracingManagerForProvider 基于已有的 TracerProvider 构建追踪管理器，不修改全局状态
func NewTracingManagerForProvider(provider *sdktrace.TracerProvider, log logger.Logger) *TracingManager {
	return &TracingManager{
		tracer:     provider.Tracer(TracerName),
		provider:   provider,
		propagator: defaultPropagator(),
		logger:     log,
	}
}

// Tracer 返回分析引擎使用的追踪器
func (tm *TracingManager) Tracer() trace.Tracer {
	return tm.tracer
}

// StartSpan 开始一个新的 Span
func (tm *TracingManager) StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tm.tracer.Start(ctx, spanName, opts...)
}

// RecordError 记录错误到 Span
func (tm *TracingManager) RecordError(ctx context.Context, err error, attrs map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))
	for key, value := range attrs {
		attributes = append(attributes, convertToAttribute(key, value))
	}

	span.RecordError(err, trace.WithAttributes(attributes...))
	span.SetStatus(codes.Error, err.Error())
}

// GetTraceID 获取当前 Trace ID
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractTraceContext 从 Carrier 提取追踪上下文
func (tm *TracingManager) ExtractTraceContext(ctx context.Context, carrier propagation.TextMapCarrier) context.Context {
	return tm.propagator.Extract(ctx, carrier)
}

// Shutdown 关闭追踪管理器
func (tm *TracingManager) Shutdown(ctx context.Context) error {
	if tm.provider == nil {
		return nil
	}

	if err := tm.provider.Shutdown(ctx); err != nil {
		tm.logger.Error(ctx, "Failed to shutdown tracing provider", err)
		return err
	}

	tm.logger.Info(ctx, "Tracing provider shutdown successfully")
	return nil
}

// convertToAttribute 将 interface{} 转换为 OpenTelemetry 属性
func convertToAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

//Personal.AI order the ending
