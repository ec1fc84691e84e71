package handlers

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// BillingService produces the monthly billing reports.
type BillingService interface {
	Billing(ctx context.Context) ([]models.MonthlyReport, error)
	BillingCSV(ctx context.Context, monthKey string) (string, []byte, error)
	ExportBilling(ctx context.Context) (int, error)
}

// ReportHandler serves /api/reports.
type ReportHandler struct {
	svc    BillingService
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc BillingService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

func (h *ReportHandler) Billing(c *gin.Context) {
	reports, err := h.svc.Billing(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "billing reports", err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// BillingCSV downloads one month, addressed as YYYY-MM.
func (h *ReportHandler) BillingCSV(c *gin.Context) {
	name, data, err := h.svc.BillingCSV(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, h.logger, "billing csv", err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// Export pushes every month to the configured spreadsheet.
func (h *ReportHandler) Export(c *gin.Context) {
	months, err := h.svc.ExportBilling(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "export billing", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": months})
}
