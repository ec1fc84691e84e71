package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	"github.com/mamadbah2/aquashop/internal/service/auth"
	"github.com/mamadbah2/aquashop/internal/service/clients"
	"github.com/mamadbah2/aquashop/internal/service/inventory"
	"github.com/mamadbah2/aquashop/internal/service/reporting"
	"github.com/mamadbah2/aquashop/internal/service/sales"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("get: %w", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", models.ErrInsufficientStock), http.StatusConflict},
		{inventory.ErrInvalidProduct, http.StatusBadRequest},
		{clients.ErrInvalidClient, http.StatusBadRequest},
		{sales.ErrInvalidSale, http.StatusBadRequest},
		{reporting.ErrInvalidMonth, http.StatusBadRequest},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{reporting.ErrSheetsDisabled, http.StatusServiceUnavailable},
		{errors.New("socket closed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondError(c, zap.New(core), "load sales", errors.New("mongo: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("load sales").Len())
}
