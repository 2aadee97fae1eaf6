package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/cadetops/internal/application/dto"
	"github.com/turtacn/cadetops/internal/application/service"
	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/internal/infrastructure/monitoring"
	"github.com/turtacn/cadetops/pkg/logger"
)

// maxSnapshotBodyBytes caps caller-supplied snapshots.
const maxSnapshotBodyBytes = 16 << 20

// AnalyticsHandler handles HTTP requests for analytics reports.
type AnalyticsHandler struct {
	analytics service.AnalyticsAppService
	log       logger.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analytics service.AnalyticsAppService, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		log:       log,
	}
}

// GetReport runs a full analytics pass over the repository snapshot.
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	report, err := h.analytics.GenerateReport(c.Request.Context())
	h.respond(c, report, err)
}

// PostReport runs a full analytics pass over the snapshot in the request body.
func (h *AnalyticsHandler) PostReport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSnapshotBodyBytes)

	var snap models.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		h.log.Debug(c.Request.Context(), "Rejected snapshot body", logger.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, dto.BadRequestResponse(err.Error(), traceID(c)))
		return
	}

	report, err := h.analytics.AnalyzeSnapshot(c.Request.Context(), &snap)
	h.respond(c, report, err)
}

// GetRisk returns per-cadet risk assessments.
func (h *AnalyticsHandler) GetRisk(c *gin.Context) {
	resp, err := h.analytics.AssessRisk(c.Request.Context())
	h.respond(c, resp, err)
}

// GetInsights returns the population insights and high-risk alert.
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	resp, err := h.analytics.GenerateInsights(c.Request.Context())
	h.respond(c, resp, err)
}

// GetForecasts returns inventory depletion forecasts.
func (h *AnalyticsHandler) GetForecasts(c *gin.Context) {
	resp, err := h.analytics.ForecastInventory(c.Request.Context())
	h.respond(c, resp, err)
}

// GetWorkload returns per-staff workload records.
func (h *AnalyticsHandler) GetWorkload(c *gin.Context) {
	resp, err := h.analytics.AnalyzeWorkload(c.Request.Context())
	h.respond(c, resp, err)
}

// GetCoverage returns the staffing coverage report.
func (h *AnalyticsHandler) GetCoverage(c *gin.Context) {
	resp, err := h.analytics.AnalyzeCoverage(c.Request.Context())
	h.respond(c, resp, err)
}

func (h *AnalyticsHandler) respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		body, status := dto.ErrorResponse(err, traceID(c))
		if status >= http.StatusInternalServerError {
			h.log.Error(c.Request.Context(), "Analytics request failed", err, logger.Fields{"path": c.FullPath()})
		}
		// the observability middleware records it on the request span
		_ = c.Error(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse(data, traceID(c)))
}

// traceID prefers the OpenTelemetry trace ID and falls back to the request ID.
func traceID(c *gin.Context) string {
	if id := monitoring.GetTraceID(c.Request.Context()); id != "" {
		return id
	}
	return c.GetString(requestIDKey)
}
