package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mamadbah2/aquashop/internal/service/auth"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(token string) (*jwt.RegisteredClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*jwt.RegisteredClaims)
	return claims, args.Error(1)
}

func newEngine(v TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireToken(v, nil))
	r.GET("/private", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})
	return r
}

func request(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireToken(t *testing.T) {
	v := new(mockValidator)
	v.On("Validate", "good").Return(&jwt.RegisteredClaims{Subject: auth.Subject}, nil)
	v.On("Validate", "old").Return(nil, auth.ErrExpiredToken)
	v.On("Validate", "bad").Return(nil, auth.ErrInvalidToken)
	r := newEngine(v)

	ok := request(r, "Bearer good")
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, auth.Subject, ok.Body.String())

	expired := request(r, "Bearer old")
	assert.Equal(t, http.StatusUnauthorized, expired.Code)
	assert.Contains(t, expired.Body.String(), "token has expired")

	assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer bad").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Basic Zm9vOmJhcg==").Code)

	missing := request(r, "")
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.NotEmpty(t, missing.Header().Get("WWW-Authenticate"))
	v.AssertNumberOfCalls(t, "Validate", 3)
}
