// AngelaMos | 2026
// service.go

package owner

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/turisgal/backend/internal/auth"
	"github.com/turisgal/backend/internal/core"
)

var errHasProperties = core.ConflictError("cannot delete an owner with associated properties")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*auth.OwnerInfo, error) {
	owner, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return &auth.OwnerInfo{
		ID:           owner.ID,
		Email:        owner.Email,
		ContactName:  owner.ContactName,
		CompanyName:  owner.CompanyName,
		PasswordHash: owner.PasswordHash,
	}, nil
}

func (s *Service) Create(ctx context.Context, req CreateOwnerRequest) (*Owner, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	owner := &Owner{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		ContactName:  strings.TrimSpace(req.ContactName),
		CompanyName:  req.CompanyName,
		Phone:        req.Phone,
		TaxID:        req.TaxID,
		Role:         core.RoleOwner,
		Permissions:  req.Permissions,
	}

	if err := s.repo.Create(ctx, owner); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("email")
		}
		return nil, err
	}

	return owner, nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]ListItem, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Export(ctx context.Context, filter Filter) ([]ExportRow, error) {
	return s.repo.Export(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	owner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.Counts(ctx, id)
	if err != nil {
		return nil, err
	}

	props, err := s.repo.Properties(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Owner: *owner, Counts: counts, Properties: props}, nil
}

// Update applies req and returns the owner with its property total.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateOwnerRequest,
) (*Owner, int, error) {
	owner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	if req.ContactName != nil {
		if name := strings.TrimSpace(*req.ContactName); name != "" {
			owner.ContactName = name
		}
	}
	req.CompanyName.Apply(&owner.CompanyName)
	req.Phone.Apply(&owner.Phone)
	req.TaxID.Apply(&owner.TaxID)
	req.Permissions.Apply(&owner.Permissions)

	if err := s.repo.Update(ctx, owner); err != nil {
		return nil, 0, err
	}

	counts, err := s.repo.Counts(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	return owner, counts.Properties, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	counts, err := s.repo.Counts(ctx, id)
	if err != nil {
		return err
	}
	if counts.Properties > 0 {
		return errHasProperties
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return errHasProperties
		}
		return err
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ auth.OwnerProvider = (*Service)(nil)
