// Package auth protects the dashboard with a single owner password and
// short-lived HS256 session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/aquashop/internal/config"
)

const (
	// Issuer is stamped on and required from every token.
	Issuer = "aquashop"
	// Subject identifies the single shop owner account.
	Subject = "owner"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// Token is an issued session token.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service checks the owner password and issues and validates tokens.
type Service struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewService builds the auth service from validated configuration.
func NewService(cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		passwordHash: []byte(cfg.PasswordHash),
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.TokenTTL,
		logger:       logger,
		now:          time.Now,
	}
}

// Login exchanges the owner password for a token.
func (s *Service) Login(password string) (Token, error) {
	if password == "" || bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		s.logger.Warn("rejected login attempt")
		return Token{}, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    Issuer,
		Subject:   Subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Token: signed, ExpiresAt: expiresAt.UTC().Truncate(time.Second)}, nil
}

// Validate checks signature, signing method, issuer, subject and expiry.
func (s *Service) Validate(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithSubject(Subject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}
