package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/service/auth"
)

const (
	// SubjectKey holds the authenticated token subject in the gin context.
	SubjectKey    = "auth_subject"
	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// TokenValidator checks a bearer token.
type TokenValidator interface {
	Validate(token string) (*jwt.RegisteredClaims, error)
}

// RequireToken rejects requests without a valid bearer token.
func RequireToken(validator TokenValidator, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if !strings.HasPrefix(header, bearerPrefix) {
			abort(c, "missing bearer token")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		claims, err := validator.Validate(token)
		if err != nil {
			logger.Debug("token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, auth.ErrExpiredToken) {
				abort(c, "token has expired")
				return
			}
			abort(c, "invalid token")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}

func abort(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="aquashop"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
