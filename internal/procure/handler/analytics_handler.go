package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// AnalyticsHandler dashboard metrics
type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Dashboard pipeline rollups; refresh=1 drops the cached copy first
// GET /api/v1/analytics/dashboard?refresh=1
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	if c.Query("refresh") == "1" {
		h.svc.Invalidate(c.Request.Context())
	}
	metrics, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, metrics)
}
