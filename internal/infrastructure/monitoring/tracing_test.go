package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/pkg/logger"
)

func TestTracingManager_Disabled(t *testing.T) {
	tm, err := NewTracingManager(&config.TracingConfig{Enabled: false}, logger.NewNoopLogger())
	require.NoError(t, err)

	ctx, span := tm.StartSpan(context.Background(), "analytics.GenerateReport")
	span.End()
	assert.Empty(t, GetTraceID(ctx))
	assert.NoError(t, tm.Shutdown(context.Background()))
}

func TestTracingManager_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	cfg := &config.TracingConfig{Enabled: true, ServiceName: "cadetops-test", SampleRate: 1}
	tm, err := newTracingManager(cfg, sdktrace.WithSyncer(exporter), logger.NewNoopLogger())
	require.NoError(t, err)
	defer tm.Shutdown(context.Background())

	ctx, span := tm.StartSpan(context.Background(), "analytics.AssessRisk")
	assert.NotEmpty(t, GetTraceID(ctx))
	tm.RecordError(ctx, errors.New("snapshot unavailable"), map[string]interface{}{"source": "repository"})
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "analytics.AssessRisk", spans[0].Name)
	assert.Len(t, spans[0].Events, 1)
}

func TestTracingManager_ExtractsIncomingContext(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tm := NewTracingManagerForProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)), logger.NewNoopLogger())
	defer tm.Shutdown(context.Background())

	carrier := propagation.MapCarrier{"traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"}
	ctx := tm.ExtractTraceContext(context.Background(), carrier)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", trace.SpanContextFromContext(ctx).TraceID().String())

	ctx, span := tm.Tracer().Start(ctx, "analytics.GenerateReport")
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(ctx))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())
}

func TestConvertToAttribute(t *testing.T) {
	assert.Equal(t, "/api/v1/analytics/report", convertToAttribute("http.route", "/api/v1/analytics/report").Value.AsString())
	assert.Equal(t, int64(503), convertToAttribute("http.status_code", 503).Value.AsInt64())
	assert.True(t, convertToAttribute("cached", true).Value.AsBool())
	assert.Equal(t, []string{"c1", "c2"}, convertToAttribute("ids", []string{"c1", "c2"}).Value.AsStringSlice())
	assert.Equal(t, "1.5s", convertToAttribute("elapsed", 1500*time.Millisecond).Value.AsString())
}
