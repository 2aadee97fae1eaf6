package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/cadetops/pkg/logger"
)

type fakeChecker struct{ err error }

func (f fakeChecker) HealthCheck(context.Context) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{"status": "healthy"}, nil
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		checkers map[string]HealthChecker
		status   int
		overall  string
	}{
		{"no dependencies", nil, http.StatusOK, "healthy"},
		{"all ok", map[string]HealthChecker{"database": fakeChecker{}, "redis": fakeChecker{}}, http.StatusOK, "healthy"},
		{"redis down", map[string]HealthChecker{"database": fakeChecker{}, "redis": fakeChecker{err: errors.New("refused")}}, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthHandler(tt.checkers, logger.NewNoopLogger()).HealthCheck)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, rr.Code)
			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.overall, body.Status)
			assert.Len(t, body.Checks, len(tt.checkers))
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(), RecoveryMiddleware(logger.NewNoopLogger()))
	router.GET("/panic", func(c *gin.Context) { panic("engine bug") })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "server_error")
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))
}
