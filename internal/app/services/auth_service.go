package services

import (
	"github.com/rs/zerolog"

	"github.com/pradipta/sijadwal/internal/pkg/apperrors"
	"github.com/pradipta/sijadwal/internal/pkg/auth"
)

// AdminRole is the only role the portal backend issues; every mutation
// endpoint requires it.
const AdminRole = "ADMIN"

// AuthService authenticates the single configured admin account and
// issues access tokens for the mutation endpoints.
type AuthService struct {
	username     string
	passwordHash string
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates an AuthService over the configured credential.
func NewAuthService(username, passwordHash string, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: passwordHash,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Login verifies the credential and returns a signed token with its
// lifetime in seconds.
func (s *AuthService) Login(username, password string) (string, int, error) {
	if username != s.username || !auth.CheckPassword(s.passwordHash, password) {
		s.logger.Warn().Str("username", username).Msg("failed admin login attempt")
		return "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(username, AdminRole)
	if err != nil {
		return "", 0, err
	}

	s.logger.Info().Str("username", username).Msg("admin logged in")
	return token, expiresIn, nil
}
