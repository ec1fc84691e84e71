package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/service/auth"
)

// Authenticator exchanges the owner password for a session token.
type Authenticator interface {
	Login(password string) (auth.Token, error)
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	svc    Authenticator
	logger *zap.Logger
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc Authenticator, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	token, err := h.svc.Login(req.Password)
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}
	c.JSON(http.StatusOK, token)
}
