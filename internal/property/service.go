// AngelaMos | 2026
// service.go

package property

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turisgal/backend/internal/core"
)

const statsCacheKey = "overview"

var (
	errHasBookings  = core.ConflictError("cannot delete a property with existing bookings, deactivate it instead")
	errNotOwner     = core.ForbiddenError("you do not have permission to modify this property")
	errUnknownOwner = core.BadRequestError("property owner does not exist")
)

// StatsCache stores the statistics overview between mutations.
type StatsCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	repo   Repository
	owners OwnerDirectory
	cache  StatsCache
	inTx   TxFunc
	now    func() time.Time
}

// NewService builds the property service. cache may be nil. Without
// WithTx, creates run directly against repo and owners.
func NewService(repo Repository, owners OwnerDirectory, cache StatsCache) *Service {
	s := &Service{
		repo:   repo,
		owners: owners,
		cache:  cache,
		now:    time.Now,
	}
	s.inTx = func(_ context.Context, fn func(Repository, OwnerDirectory) error) error {
		return fn(s.repo, s.owners)
	}
	return s
}

// WithTx makes owner provisioning and the property insert atomic.
func (s *Service) WithTx(inTx TxFunc) *Service {
	s.inTx = inTx
	return s
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Item, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *Service) Export(ctx context.Context, filter Filter) ([]ExportRow, error) {
	return s.repo.Export(ctx, filter)
}

// Create stores a new property. Admins may assign an existing owner
// through OwnerID. Otherwise the caller is the owner: an owner token is
// used as is, and a user account is mapped to the owner record with the
// same email, which is created on first use.
func (s *Service) Create(
	ctx context.Context,
	identity core.Identity,
	req CreatePropertyRequest,
) (*Item, error) {
	qr, err := s.newQRCode()
	if err != nil {
		return nil, err
	}

	property := &Property{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		PropertyType: strings.TrimSpace(req.PropertyType),
		Address:      *req.Address,
		TotalRooms:   req.TotalRooms,
		MaxGuests:    req.MaxGuests,
		Amenities:    req.Amenities,
		HouseRules:   req.HouseRules,
		CheckInTime:  req.CheckInTime.Ptr(),
		CheckOutTime: req.CheckOutTime.Ptr(),
		QRCodeData:   qr,
		Images:       req.Images,
		IsActive:     true,
	}
	if property.TotalRooms < 1 {
		property.TotalRooms = 1
	}
	if req.IsActive != nil {
		property.IsActive = *req.IsActive
	}

	err = s.inTx(ctx, func(repo Repository, owners OwnerDirectory) error {
		ownerID, err := resolveOwner(ctx, owners, identity, req.OwnerID)
		if err != nil {
			return err
		}
		property.OwnerID = ownerID

		if err := repo.Create(ctx, property); err != nil {
			if errors.Is(err, core.ErrInvalidInput) {
				return errUnknownOwner
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)

	return s.repo.GetItem(ctx, property.ID)
}

func resolveOwner(
	ctx context.Context,
	owners OwnerDirectory,
	identity core.Identity,
	requested string,
) (string, error) {
	if requested = strings.TrimSpace(requested); identity.IsAdmin() && requested != "" {
		exists, err := owners.Exists(ctx, requested)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", errUnknownOwner
		}
		return requested, nil
	}

	exists, err := owners.Exists(ctx, identity.UserID)
	if err != nil {
		return "", err
	}
	if exists {
		return identity.UserID, nil
	}

	ownerID, err := owners.ForUser(ctx, identity.UserID)
	if errors.Is(err, core.ErrNotFound) {
		return "", errUnknownOwner
	}
	return ownerID, err
}

func (s *Service) Update(
	ctx context.Context,
	identity core.Identity,
	id string,
	req UpdatePropertyRequest,
) (*Item, error) {
	property, err := s.authorize(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(property, req)

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)

	return s.repo.GetItem(ctx, id)
}

func applyUpdate(p *Property, req UpdatePropertyRequest) {
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.PropertyType != nil && strings.TrimSpace(*req.PropertyType) != "" {
		p.PropertyType = strings.TrimSpace(*req.PropertyType)
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.TotalRooms != nil && *req.TotalRooms > 0 {
		p.TotalRooms = *req.TotalRooms
	}
	if req.MaxGuests != nil && *req.MaxGuests > 0 {
		p.MaxGuests = *req.MaxGuests
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	req.Description.Apply(&p.Description)
	req.HouseRules.Apply(&p.HouseRules)
	req.Amenities.Apply(&p.Amenities)
	req.Images.Apply(&p.Images)

	if req.CheckInTime.Set {
		p.CheckInTime = req.CheckInTime.Value.Ptr()
	}
	if req.CheckOutTime.Set {
		p.CheckOutTime = req.CheckOutTime.Value.Ptr()
	}
}

func (s *Service) Delete(ctx context.Context, identity core.Identity, id string) error {
	if _, err := s.authorize(ctx, identity, id); err != nil {
		return err
	}

	bookings, err := s.repo.CountBookings(ctx, id)
	if err != nil {
		return err
	}
	if bookings > 0 {
		return errHasBookings
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return errHasBookings
		}
		return err
	}

	s.invalidateStats(ctx)

	return nil
}

// authorize loads the property and checks that the caller may change it.
func (s *Service) authorize(ctx context.Context, identity core.Identity, id string) (*Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanManage(property.OwnerID) {
		return nil, errNotOwner
	}
	return property, nil
}

// Stats returns the overview, served from cache when possible. Cache
// failures are logged and never fail the request.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	logger := core.LoggerFromContext(ctx)

	if s.cache != nil {
		var cached Stats
		hit, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			logger.Warn("property stats cache read failed", "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats); err != nil {
			logger.Warn("property stats cache write failed", "error", err)
		}
	}

	return stats, nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		core.LoggerFromContext(ctx).Warn("property stats cache invalidation failed", "error", err)
	}
}

func (s *Service) newQRCode() (string, error) {
	suffix, err := core.RandomBase36(9)
	if err != nil {
		return "", fmt.Errorf("generate qr code: %w", err)
	}
	return fmt.Sprintf("property_%d_%s", s.now().UnixMilli(), suffix), nil
}
