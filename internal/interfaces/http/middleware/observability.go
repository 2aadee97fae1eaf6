package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/cadetops/internal/infrastructure/monitoring"
	"github.com/turtacn/cadetops/pkg/constants"
)

// ObservabilityMiddleware returns a Gin middleware that integrates Prometheus metrics and OpenTelemetry tracing.
// For each HTTP request, it starts a server span, tracks in-flight requests and records latency and error counts.
// Metrics are labeled with the route template rather than the raw path to keep cardinality low.
// ObservabilityMiddleware 返回一个集成了 Prometheus 指标和 OpenTelemetry 跟踪的 Gin 中间件。
// 对于每个 HTTP 请求，它会启动一个服务端跟踪范围，跟踪进行中的请求并记录延迟和错误计数。
// 指标使用路由模板而不是原始路径进行标记，以保持低基数。
func ObservabilityMiddleware(tracing *monitoring.TracingManager, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "not_found"
		}
		method := c.Request.Method

		ctx := tracing.ExtractTraceContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracing.StartSpan(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		if sc := span.SpanContext(); sc.IsValid() {
			ctx = context.WithValue(ctx, constants.ContextKeyTraceID, sc.TraceID().String())
		}
		c.Request = c.Request.WithContext(ctx)

		metrics.ActiveRequestsInc(path, method)
		defer metrics.ActiveRequestsDec(path, method)

		c.Next()

		status := c.Writer.Status()
		metrics.ObserveRequestDuration(path, method, status, time.Since(start).Seconds())
		if status >= http.StatusBadRequest {
			metrics.IncRequestErrors(path, method, status)
		}
		if status >= http.StatusInternalServerError {
			// handlers attach the failure with c.Error
			if last := c.Errors.Last(); last != nil {
				tracing.RecordError(ctx, last.Err, map[string]interface{}{"http.route": path, "http.status_code": status})
			} else {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		}

		span.SetAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
			attribute.Int("http.status_code", status),
			attribute.String("http.client_ip", c.ClientIP()),
		)
	}
}
