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

// VehicleUsecase handles vehicle registration and odometer tracking
type VehicleUsecase struct {
	vehicleRepo  repositories.VehicleRepository
	customerRepo repositories.CustomerRepository
}

// NewVehicleUsecase creates a new vehicle usecase
func NewVehicleUsecase(vehicleRepo repositories.VehicleRepository, customerRepo repositories.CustomerRepository) *VehicleUsecase {
	return &VehicleUsecase{
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
	}
}

// RegisterVehicle attaches a vehicle to an existing customer; VIN is unique
func (u *VehicleUsecase) RegisterVehicle(ctx context.Context, input *entities.CreateVehicleInput) (*entities.Vehicle, error) {
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid customer id")
	}

	if _, err := u.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("customer not found")
		}
		return nil, err
	}

	existing, err := u.vehicleRepo.GetByVIN(ctx, input.VIN)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("vehicle with this VIN already registered")
	}

	vehicle := &entities.Vehicle{
		CustomerID: customerID,
		VIN:        input.VIN,
		Make:       input.Make,
		Model:      input.Model,
		Year:       input.Year,
		Mileage:    input.Mileage,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := u.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// GetVehicle fetches one vehicle
func (u *VehicleUsecase) GetVehicle(ctx context.Context, id uuid.UUID) (*entities.Vehicle, error) {
	vehicle, err := u.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("vehicle not found")
		}
		return nil, err
	}
	return vehicle, nil
}

// ListByCustomer lists a customer's vehicles
func (u *VehicleUsecase) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Vehicle, error) {
	return u.vehicleRepo.ListByCustomer(ctx, customerID)
}

// RecordMileage records a new odometer reading. Readings below the stored
// mileage are rejected; the repository enforces the same guard so two
// concurrent writes cannot roll the odometer back.
func (u *VehicleUsecase) RecordMileage(ctx context.Context, id uuid.UUID, mileage int) (*entities.Vehicle, error) {
	vehicle, err := u.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if mileage < vehicle.Mileage {
		return nil, domainerrors.BadRequest("mileage cannot decrease")
	}

	if err := u.vehicleRepo.UpdateMileage(ctx, id, mileage); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("mileage cannot decrease")
		}
		return nil, err
	}

	vehicle.Mileage = mileage
	return vehicle, nil
}

// DeleteVehicle soft-deletes a vehicle
func (u *VehicleUsecase) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	err := u.vehicleRepo.SoftDelete(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("vehicle not found")
	}
	return err
}
