package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// DashboardService computes the dashboard views.
type DashboardService interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)
	Metrics(ctx context.Context) (models.SalesMetrics, error)
}

// InsightGenerator narrates a month's metrics.
type InsightGenerator interface {
	Generate(ctx context.Context, metrics models.SalesMetrics) models.SalesInsights
}

// DashboardHandler serves /api/dashboard.
type DashboardHandler struct {
	reports  DashboardService
	insights InsightGenerator
	logger   *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(reports DashboardService, insights InsightGenerator, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{reports: reports, insights: insights, logger: logger}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	dash, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "build dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Insights always answers 200; a generation failure is carried in the body's
// error field so the dashboard can render it inline.
func (h *DashboardHandler) Insights(c *gin.Context) {
	metrics, err := h.reports.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "load metrics for insights", err)
		return
	}
	c.JSON(http.StatusOK, h.insights.Generate(c.Request.Context(), metrics))
}
