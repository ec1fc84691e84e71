package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	"github.com/mamadbah2/aquashop/internal/service/auth"
	"github.com/mamadbah2/aquashop/internal/service/clients"
	"github.com/mamadbah2/aquashop/internal/service/inventory"
	"github.com/mamadbah2/aquashop/internal/service/reporting"
	"github.com/mamadbah2/aquashop/internal/service/sales"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrInvalidProduct),
		errors.Is(err, clients.ErrInvalidClient),
		errors.Is(err, sales.ErrInvalidSale),
		errors.Is(err, reporting.ErrInvalidMonth):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, reporting.ErrSheetsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Internal failures are logged
// and replaced with a generic message.
func respondError(c *gin.Context, logger *zap.Logger, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(action, zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	logger.Debug(action, zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))

	body := gin.H{"error": "invalid request body"}
	if fields := fieldErrors(err); len(fields) > 0 {
		body["fields"] = fields
	}
	c.JSON(http.StatusBadRequest, body)
}
