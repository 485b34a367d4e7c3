// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/turisgal/backend/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserInfo struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsVerified   bool
}

type OwnerInfo struct {
	ID           string
	Email        string
	ContactName  string
	CompanyName  *string
	PasswordHash string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
}

type OwnerProvider interface {
	GetByEmail(ctx context.Context, email string) (*OwnerInfo, error)
}

type TokenIssuer interface {
	CreateToken(identity core.Identity) (string, time.Time, error)
}

type Service struct {
	tokens TokenIssuer
	users  UserProvider
	owners OwnerProvider
}

func NewService(tokens TokenIssuer, users UserProvider, owners OwnerProvider) *Service {
	return &Service{
		tokens: tokens,
		users:  users,
		owners: owners,
	}
}

// Login authenticates a user account. An unknown email yields
// core.ErrNotFound, a wrong password ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := checkPassword(req.Password, user.PasswordHash); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	token, _, err := s.tokens.CreateToken(core.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User: UserView{
			ID:         user.ID,
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
	}, nil
}

// OwnerLogin authenticates a property owner. The issued token carries
// role OWNER and the owner id as userId.
func (s *Service) OwnerLogin(
	ctx context.Context,
	req LoginRequest,
) (*OwnerLoginResponse, error) {
	owner, err := s.owners.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("owner login: %w", err)
	}

	if err := checkPassword(req.Password, owner.PasswordHash); err != nil {
		return nil, fmt.Errorf("owner login: %w", err)
	}

	token, _, err := s.tokens.CreateToken(core.Identity{
		UserID: owner.ID,
		Email:  owner.Email,
		Role:   core.RoleOwner,
	})
	if err != nil {
		return nil, fmt.Errorf("owner login: %w", err)
	}

	return &OwnerLoginResponse{
		Token: token,
		Owner: OwnerView{
			ID:          owner.ID,
			Email:       owner.Email,
			ContactName: owner.ContactName,
			CompanyName: owner.CompanyName,
			Role:        core.RoleOwner,
		},
	}, nil
}

func checkPassword(password, hash string) error {
	valid, err := core.VerifyPasswordTimingSafe(password, &hash)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalidCredentials
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
