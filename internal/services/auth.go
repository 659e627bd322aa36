package services

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"meditech-backend/internal/config"
	"meditech-backend/internal/metrics"
	"meditech-backend/internal/util"
	apperrors "meditech-backend/pkg/errors"
)

// AuthService authenticates the operator account. Admin credentials are
// configuration-backed: a single email plus bcrypt password hash.
type AuthService struct {
	cfg *config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.AuthConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login verifies the admin credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPasswordHash == "" {
		return "", apperrors.New(apperrors.ErrCodeUnauthorized, "admin login is not configured")
	}

	if email != s.cfg.AdminEmail {
		metrics.RecordAuthAttempt(false)
		return "", apperrors.New(apperrors.ErrCodeUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		metrics.RecordAuthAttempt(false)
		return "", apperrors.New(apperrors.ErrCodeUnauthorized, "invalid credentials")
	}

	token, err := util.GenerateToken(email)
	if err != nil {
		metrics.RecordAuthAttempt(false)
		return "", apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to issue token", err)
	}

	log.Printf("[AUTH] Admin login: %s", email)
	metrics.RecordAuthAttempt(true)
	return token, nil
}
