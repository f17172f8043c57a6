package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/lynck-services/lead-api/internal/auth"
	"github.com/lynck-services/lead-api/internal/config"
	"github.com/lynck-services/lead-api/internal/domain"
	"go.uber.org/zap"
)

// AuthService authenticates the single admin account configured via
// environment or Key Vault. There is no user table.
type AuthService struct {
	cfg    *config.AuthConfig
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewAuthService(cfg *config.AuthConfig, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
	}
}

// Login checks the credentials in constant time and issues a JWT
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		s.logger.Error("admin credentials not configured")
		return nil, ErrUnauthorized
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.cfg.AdminEmail))
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AdminPassword))
	if emailOK&passwordOK != 1 {
		s.logger.Warn("failed login attempt", zap.String("email", req.Email))
		return nil, ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(s.cfg.AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("admin logged in", zap.String("email", s.cfg.AdminEmail))

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format("2006-01-02T15:04:05Z"),
		Email:     s.cfg.AdminEmail,
	}, nil
}
