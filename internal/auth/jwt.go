// Package auth provides JWT session tokens, password hashing, and the
// middleware that protects the admin routes.
//
// The session model is deliberately minimal: there is exactly one admin
// identity, so a token only has to assert "this request comes from the
// admin" — the subject claim is always "admin". Tokens are stateless:
// validity is signature + expiry, nothing is stored server-side, and the
// only way to revoke tokens early is to rotate the signing secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminSubject is the subject claim carried by every issued token.
const AdminSubject = "admin"

// TokenTTL is the fixed token lifetime. There is no refresh mechanism;
// an expired token requires a fresh login.
const TokenTTL = time.Hour

const issuer = "portfolio-api"

// TokenService signs and verifies admin session tokens.
//
// It holds the HMAC secret used for both operations. The same secret must
// be configured on every process that issues or verifies tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

type claims struct {
	jwt.RegisteredClaims
}

// Generate issues a signed token asserting the admin subject, valid for
// TokenTTL from now. It fails only if signing itself fails (misconfigured
// secret), which callers should treat as a server error.
func (s *TokenService) Generate() (string, error) {
	return s.generateAt(time.Now(), TokenTTL)
}

// generateAt is the test seam for Generate — it fixes the issuance time
// and lifetime so expiry behaviour can be tested without sleeping.
func (s *TokenService) generateAt(now time.Time, ttl time.Duration) (string, error) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   AdminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns its subject.
//
// The jwt library checks the signature, expiry, and issuer for us.
// Restricting the algorithm to HS256 closes the algorithm-confusion hole
// where an attacker submits a token signed with "none".
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject != AdminSubject {
		return "", fmt.Errorf("auth: unexpected token subject")
	}

	return c.Subject, nil
}
