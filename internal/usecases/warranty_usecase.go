package usecases

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// CoverageResult is the outcome of a warranty eligibility check
type CoverageResult struct {
	Covered    bool                 `json:"covered"`
	Warranty   *entities.Warranty   `json:"warranty,omitempty"`
	Mileage    int                  `json:"mileage"`
	Warranties []*entities.Warranty `json:"warranties"`
}

// WarrantyUsecase manages vehicle warranty coverage
type WarrantyUsecase struct {
	warrantyRepo repositories.WarrantyRepository
	vehicleRepo  repositories.VehicleRepository
	now          func() time.Time
}

// NewWarrantyUsecase creates a new warranty usecase
func NewWarrantyUsecase(warrantyRepo repositories.WarrantyRepository, vehicleRepo repositories.VehicleRepository) *WarrantyUsecase {
	return &WarrantyUsecase{
		warrantyRepo: warrantyRepo,
		vehicleRepo:  vehicleRepo,
		now:          time.Now,
	}
}

// SetNowFunc overrides the clock for tests
func (u *WarrantyUsecase) SetNowFunc(now func() time.Time) {
	u.now = now
}

// RegisterWarranty attaches coverage to a vehicle
func (u *WarrantyUsecase) RegisterWarranty(ctx context.Context, input *entities.CreateWarrantyInput) (*entities.Warranty, error) {
	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid vehicle id")
	}
	if !input.ExpiresAt.After(input.StartsAt) {
		return nil, domainerrors.BadRequest("expiry must be after start")
	}

	if _, err := u.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("vehicle not found")
		}
		return nil, err
	}

	warranty := &entities.Warranty{
		VehicleID:    vehicleID,
		Type:         input.Type,
		StartsAt:     input.StartsAt,
		ExpiresAt:    input.ExpiresAt,
		MileageLimit: input.MileageLimit,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.warrantyRepo.Create(ctx, warranty); err != nil {
		return nil, err
	}
	return warranty, nil
}

// ListByVehicle lists coverage attached to a vehicle
func (u *WarrantyUsecase) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*entities.Warranty, error) {
	return u.warrantyRepo.ListByVehicle(ctx, vehicleID)
}

// CheckCoverage evaluates claim eligibility against the vehicle's current
// mileage. The first covering warranty wins.
func (u *WarrantyUsecase) CheckCoverage(ctx context.Context, vehicleID uuid.UUID) (*CoverageResult, error) {
	vehicle, err := u.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("vehicle not found")
		}
		return nil, err
	}

	warranties, err := u.warrantyRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	result := &CoverageResult{
		Mileage:    vehicle.Mileage,
		Warranties: warranties,
	}
	for _, w := range warranties {
		if w.Covers(u.now(), vehicle.Mileage) {
			result.Covered = true
			result.Warranty = w
			break
		}
	}
	return result, nil
}

// CancelWarranty deactivates coverage
func (u *WarrantyUsecase) CancelWarranty(ctx context.Context, id uuid.UUID) error {
	err := u.warrantyRepo.Deactivate(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("warranty not found")
	}
	return err
}
