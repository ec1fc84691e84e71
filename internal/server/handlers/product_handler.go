package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	"github.com/mamadbah2/aquashop/internal/service/inventory"
)

// ProductService is the catalog surface used over HTTP.
type ProductService interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	Get(ctx context.Context, id string) (models.InventoryItem, error)
	Create(ctx context.Context, input inventory.NewProduct) (models.Product, error)
	Update(ctx context.Context, id string, update models.ProductUpdate) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductHandler serves /api/products.
type ProductHandler struct {
	svc    ProductService
	logger *zap.Logger
}

// NewProductHandler constructs the HTTP handler adapter.
func NewProductHandler(svc ProductService, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{svc: svc, logger: logger}
}

func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list products", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get product", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input inventory.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	product, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, "create product", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	product, err := h.svc.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, h.logger, "update product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}
