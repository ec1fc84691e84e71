package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	"github.com/mamadbah2/aquashop/internal/service/sales"
)

// SaleService is the sales surface used over HTTP.
type SaleService interface {
	Register(ctx context.Context, req sales.RegisterRequest) (models.Sale, error)
	History(ctx context.Context) ([]models.SaleDetails, error)
	Delete(ctx context.Context, id string) error
}

// SaleHandler serves /api/sales.
type SaleHandler struct {
	svc    SaleService
	logger *zap.Logger
}

// NewSaleHandler constructs the HTTP handler adapter.
func NewSaleHandler(svc SaleService, logger *zap.Logger) *SaleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleHandler{svc: svc, logger: logger}
}

func (h *SaleHandler) List(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list sales", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req sales.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	sale, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "register sale", err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// Delete removes a sale without restoring stock.
func (h *SaleHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete sale", err)
		return
	}
	c.Status(http.StatusNoContent)
}
