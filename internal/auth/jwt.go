// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/turisgal/backend/internal/config"
	"github.com/turisgal/backend/internal/core"
)

const TokenLifetime = 2 * time.Hour

// TokenManager issues and verifies HS256 access tokens. A manager with
// an empty secret fails every call with core.ErrServerMisconfigured.
type TokenManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

func (m *TokenManager) Configured() bool {
	return len(m.secret) > 0
}

func (m *TokenManager) CreateToken(identity core.Identity) (string, time.Time, error) {
	if !m.Configured() {
		return "", time.Time{}, fmt.Errorf("create token: %w", core.ErrServerMisconfigured)
	}

	now := m.now()
	expiresAt := now.Add(TokenLifetime)

	builder := jwt.NewBuilder().
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("userId", identity.UserID).
		Claim("email", identity.Email).
		Claim("role", identity.Role)
	if m.issuer != "" {
		builder = builder.Issuer(m.issuer)
	}

	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

func (m *TokenManager) VerifyToken(
	_ context.Context,
	tokenString string,
) (core.Identity, error) {
	if !m.Configured() {
		return core.Identity{}, fmt.Errorf("verify token: %w", core.ErrServerMisconfigured)
	}

	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256(), m.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.Parse([]byte(tokenString), opts...)
	if err != nil {
		if isTokenExpiredError(err) {
			return core.Identity{}, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return core.Identity{}, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var identity core.Identity
	if err := token.Get("userId", &identity.UserID); err != nil || identity.UserID == "" {
		return core.Identity{}, fmt.Errorf(
			"verify token: missing userId claim: %w",
			core.ErrTokenInvalid,
		)
	}

	if err := token.Get("role", &identity.Role); err != nil || !core.ValidRole(identity.Role) {
		return core.Identity{}, fmt.Errorf(
			"verify token: invalid role claim: %w",
			core.ErrTokenInvalid,
		)
	}

	//nolint:errcheck // email is informational
	_ = token.Get("email", &identity.Email)

	return identity, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		(strings.Contains(errStr, "not satisfied") || strings.Contains(errStr, "expired"))
}
