package monitoring

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/cadetops/internal/config"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/logger"
)

func TestZapLogger_ContextAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(core).WithComponent("analytics")

	ctx := context.WithValue(context.Background(), constants.ContextKeyRequestID, "req-1")
	ctx = context.WithValue(ctx, constants.ContextKeyTraceID, "trace-1")
	log.Info(ctx, "analytics pass finished", logger.Fields{"issues": 2})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "analytics pass finished", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "analytics", fields["component"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "trace-1", fields["trace_id"])
	assert.EqualValues(t, 2, fields["issues"])
}

func TestZapLogger_ErrorField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLoggerWithCore(core)

	log.Error(context.Background(), "snapshot load failed", errors.New("connection refused"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	assert.Equal(t, "connection refused", logs.All()[0].ContextMap()["error"])
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := NewZapLoggerWithCore(core)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestNewZapLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadetops.log")
	log, err := NewZapLogger(&config.LogConfig{Level: "debug", Format: "json", OutputPath: path})
	require.NoError(t, err)

	log.Info(context.Background(), "written")
	assert.FileExists(t, path)
}
