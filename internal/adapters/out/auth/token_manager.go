// Package auth signs and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySigningKey = errors.New("jwt signing key is empty")

// Claims carries the user id and role flags. The JSON names are the ones
// clients already decode.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"_id"`
	IsAdmin bool   `json:"isAdmin"`
	IsAgent bool   `json:"isAgent"`
}

// TokenManager implements ports.TokenIssuer and ports.TokenVerifier with
// HMAC-SHA256 tokens.
type TokenManager struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewTokenManager builds a manager. A zero expiration issues tokens without
// an exp claim.
func NewTokenManager(secret, issuer string, expiration time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySigningKey
	}
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
		now:        time.Now,
	}, nil
}

func (m *TokenManager) Issue(u *user.User) (string, error) {
	if err := u.Validate(); err != nil {
		return "", err
	}

	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   m.issuer,
			Subject:  u.ID().String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID:  u.ID().String(),
		IsAdmin: u.IsAdmin(),
		IsAgent: u.IsAgent(),
	}
	if m.expiration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.expiration))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the caller's
// principal. Every failure is an errs.UnauthenticatedError.
func (m *TokenManager) Verify(token string) (access.Principal, error) {
	if token == "" {
		return access.Principal{}, errs.NewUnauthenticatedError("access denied, no token provided")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return access.Principal{}, errs.NewUnauthenticatedErrorWithCause("invalid token", err)
	}
	if !parsed.Valid {
		return access.Principal{}, errs.NewUnauthenticatedError("invalid token")
	}

	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return access.Principal{}, errs.NewUnauthenticatedErrorWithCause("invalid token", err)
	}

	principal, err := access.NewPrincipal(id, claims.IsAgent, claims.IsAdmin)
	if err != nil {
		return access.Principal{}, errs.NewUnauthenticatedErrorWithCause("invalid token", err)
	}
	return principal, nil
}
