package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/cadetops/pkg/logger"
)

// HealthChecker is a dependency that can report its own health.
// The PostgreSQL and Redis connections satisfy it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) (map[string]interface{}, error)
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	checkers map[string]HealthChecker
	timeout  time.Duration
	log      logger.Logger
}

// NewHealthHandler creates a new HealthHandler. Unconfigured dependencies are simply omitted from checkers.
func NewHealthHandler(checkers map[string]HealthChecker, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		timeout:  5 * time.Second,
		log:      log,
	}
}

// HealthCheck checks the health of the service and its dependencies.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	checks := h.performChecks(c.Request.Context())

	httpStatus := http.StatusOK
	for _, checkStatus := range checks {
		if checkStatus != "ok" {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

// LivenessCheck reports that the process is serving requests.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *HealthHandler) performChecks(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var wg sync.WaitGroup
	mu := &sync.Mutex{}
	checks := make(map[string]string, len(h.checkers))

	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			status := "ok"
			if _, err := checker.HealthCheck(ctx); err != nil {
				status = "error: " + err.Error()
				h.log.Warn(ctx, "Health check failed", logger.Fields{"dependency": name, "error": err.Error()})
			}
			mu.Lock()
			checks[name] = status
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()
	return checks
}

//Personal.AI order the ending
