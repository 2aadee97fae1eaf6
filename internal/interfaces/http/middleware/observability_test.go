package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/turtacn/cadetops/internal/infrastructure/monitoring"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/logger"
)

func TestObservabilityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracing := monitoring.NewTracingManagerForProvider(provider, logger.NewNoopLogger())
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	var seenTraceID string
	router := gin.New()
	router.Use(ObservabilityMiddleware(tracing, metrics))
	router.GET("/api/v1/analytics/risk", func(c *gin.Context) {
		seenTraceID, _ = c.Request.Context().Value(constants.ContextKeyTraceID).(string)
		c.Status(http.StatusOK)
	})
	router.GET("/api/v1/analytics/report", func(c *gin.Context) {
		_ = c.Error(errors.New("snapshot store timed out"))
		c.Status(http.StatusServiceUnavailable)
	})

	const parentTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	for _, path := range []string{"/api/v1/analytics/risk", "/api/v1/analytics/report", "/nope"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if path == "/api/v1/analytics/risk" {
			req.Header.Set("traceparent", "00-"+parentTraceID+"-00f067aa0ba902b7-01")
		}
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, parentTraceID, seenTraceID)
	assert.Equal(t, 3, testutil.CollectAndCount(metrics.RequestDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestErrors.WithLabelValues("/api/v1/analytics/report", "GET", "503")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestErrors.WithLabelValues("not_found", "GET", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ActiveRequests.WithLabelValues("/api/v1/analytics/risk", "GET")))

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, "GET /api/v1/analytics/risk", spans[0].Name)
	assert.Equal(t, parentTraceID, spans[0].SpanContext.TraceID().String())
	assert.Equal(t, codes.Unset, spans[0].Status.Code)

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status.Code)
	assert.Equal(t, "snapshot store timed out", failed.Status.Description)
	require.Len(t, failed.Events, 1)
	assert.Equal(t, "exception", failed.Events[0].Name)
}
