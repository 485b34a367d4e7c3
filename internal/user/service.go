// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/turisgal/backend/internal/auth"
	"github.com/turisgal/backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return &auth.UserInfo{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		IsVerified:   user.IsVerified,
	}, nil
}

// Register creates an unverified USER account.
func (s *Service) Register(ctx context.Context, req CreateUserRequest) (*User, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         core.RoleUser,
		IsVerified:   false,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.mapWriteError(err)
	}

	return user, nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Export(ctx context.Context, filter Filter) ([]ExportRow, error) {
	return s.repo.Export(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*User, Counts, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, Counts{}, err
	}

	counts, err := s.repo.Counts(ctx, id)
	if err != nil {
		return nil, Counts{}, err
	}

	return user, counts, nil
}

func (s *Service) GetMe(ctx context.Context, identity core.Identity) (*User, Counts, error) {
	if identity.UserID == "" {
		return nil, Counts{}, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}
	return s.Get(ctx, identity.UserID)
}

// Update applies the non-nil fields of req to the user. Names and email
// that are blank after trimming are left unchanged.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) != "" {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) != "" {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Role != nil {
		if !core.ValidRole(*req.Role) {
			return nil, core.BadRequestError("role must be one of: ADMIN OWNER USER")
		}
		user.Role = *req.Role
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, s.mapWriteError(err)
	}

	return user, nil
}

func (s *Service) UpdateMe(
	ctx context.Context,
	identity core.Identity,
	req UpdateMeRequest,
) (*User, error) {
	if identity.UserID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}
	return s.Update(ctx, identity.UserID, req.asUpdate())
}

func (s *Service) ChangePassword(ctx context.Context, id, newPassword string) error {
	passwordHash, err := core.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

// Delete removes another user's account on behalf of an admin.
func (s *Service) Delete(ctx context.Context, identity core.Identity, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if identity.UserID == id {
		return core.ForbiddenError("you cannot delete your own account from the admin panel")
	}

	return s.deleteGuarded(ctx, id)
}

func (s *Service) DeleteMe(ctx context.Context, identity core.Identity) error {
	if identity.UserID == "" {
		return fmt.Errorf("delete me: %w", core.ErrUnauthorized)
	}

	if _, err := s.repo.GetByID(ctx, identity.UserID); err != nil {
		return err
	}

	return s.deleteGuarded(ctx, identity.UserID)
}

func (s *Service) deleteGuarded(ctx context.Context, id string) error {
	counts, err := s.repo.Counts(ctx, id)
	if err != nil {
		return err
	}
	if counts.Bookings > 0 {
		return errHasBookings
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return errHasBookings
		}
		return err
	}

	return nil
}

var errHasBookings = core.ConflictError("cannot delete a user with existing bookings")

func (s *Service) mapWriteError(err error) error {
	if errors.Is(err, core.ErrDuplicateKey) {
		return core.DuplicateError("email")
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ auth.UserProvider = (*Service)(nil)
