// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/turisgal/backend/internal/config"
	"github.com/turisgal/backend/internal/core"
)

func newTestManager() *TokenManager {
	return NewTokenManager(config.JWTConfig{Secret: "test-secret", Issuer: "turisgal"})
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	want := core.Identity{UserID: "u-1", Email: "admin@turisgal.com", Role: core.RoleAdmin}

	token, expiresAt, err := m.CreateToken(want)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if d := time.Until(expiresAt); d < TokenLifetime-time.Minute || d > TokenLifetime {
		t.Fatalf("unexpected expiry in %s", d)
	}

	got, err := m.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if got != want {
		t.Fatalf("identity mismatch: got %+v want %+v", got, want)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	token, _, err := m.CreateToken(core.Identity{UserID: "u-1", Role: core.RoleUser})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	m.now = time.Now
	if _, err := m.VerifyToken(context.Background(), token); !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	other := NewTokenManager(config.JWTConfig{Secret: "other-secret", Issuer: "turisgal"})
	token, _, err := other.CreateToken(core.Identity{UserID: "u-1", Role: core.RoleUser})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	_, err = newTestManager().VerifyToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := newTestManager().VerifyToken(context.Background(), "not-a-token")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestMissingSecretIsMisconfigured(t *testing.T) {
	m := NewTokenManager(config.JWTConfig{})

	if _, _, err := m.CreateToken(core.Identity{UserID: "u-1", Role: core.RoleUser}); !errors.Is(err, core.ErrServerMisconfigured) {
		t.Fatalf("expected ErrServerMisconfigured on create, got %v", err)
	}
	if _, err := m.VerifyToken(context.Background(), "x"); !errors.Is(err, core.ErrServerMisconfigured) {
		t.Fatalf("expected ErrServerMisconfigured on verify, got %v", err)
	}
}
