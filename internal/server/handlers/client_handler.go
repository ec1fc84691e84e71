package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	"github.com/mamadbah2/aquashop/internal/service/clients"
)

// ClientService is the client surface used over HTTP.
type ClientService interface {
	List(ctx context.Context, query string) ([]models.ClientSummary, error)
	Get(ctx context.Context, id string) (models.ClientSummary, error)
	Create(ctx context.Context, input clients.NewClient) (models.Client, error)
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]models.SaleDetails, error)
}

// ClientHandler serves /api/clients.
type ClientHandler struct {
	svc    ClientService
	logger *zap.Logger
}

// NewClientHandler constructs the HTTP handler adapter.
func NewClientHandler(svc ClientService, logger *zap.Logger) *ClientHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientHandler{svc: svc, logger: logger}
}

// List accepts an optional ?q= search over name and email.
func (h *ClientHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, "list clients", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var input clients.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	client, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, "create client", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete client", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sales returns the client's purchase history.
func (h *ClientHandler) Sales(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "client history", err)
		return
	}
	c.JSON(http.StatusOK, history)
}
