// Package service contains the business logic layer: validation, the
// login credential check, and the create/update/delete orchestration that
// ties uploads to the project store. Handlers stay HTTP-only, repositories
// stay SQL-only.
package service

import (
	"fmt"
	"log/slog"

	"github.com/sakif/portfolio-server/internal/apperror"
	"github.com/sakif/portfolio-server/internal/auth"
	"github.com/sakif/portfolio-server/internal/config"
)

// dummyHash is a well-formed bcrypt hash compared against when the
// submitted username doesn't match. Login then costs one bcrypt
// comparison on every path, so response latency doesn't reveal whether
// the username or the password was wrong.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// invalidCredentials is the one message returned for every failed login.
const invalidCredentials = "invalid credentials"

// AuthService verifies the configured admin identity and issues session
// tokens. It holds no mutable state — the admin identity is fixed at
// construction from the immutable config.
type AuthService struct {
	admin     config.AdminConfig
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	admin config.AdminConfig,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		admin:     admin,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login checks the submitted credentials against the configured identity
// and returns a signed session token on success.
//
// Both mismatch kinds fail with the same apperror.Unauthorized and the
// same generic message, and both cost one bcrypt comparison. Only a
// signing failure surfaces as a non-Unauthorized error.
func (s *AuthService) Login(username, password string) (string, error) {
	hash := s.admin.PasswordHash
	usernameOK := username == s.admin.Username
	if !usernameOK {
		hash = dummyHash
	}

	if err := s.passwords.Verify(hash, password); err != nil || !usernameOK {
		s.logger.Warn("failed admin login attempt", slog.String("username", username))
		return "", apperror.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing token: %w", err)
	}

	s.logger.Info("admin logged in")

	return token, nil
}
