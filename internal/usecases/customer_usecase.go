package usecases

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/domain/repositories"
	"autoserve.backend/pkg/utils"
	"github.com/google/uuid"
)

// CustomerUsecase handles customer records
type CustomerUsecase struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerUsecase creates a new customer usecase
func NewCustomerUsecase(customerRepo repositories.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{customerRepo: customerRepo}
}

// CreateCustomer registers a customer; email is unique across live records
func (u *CustomerUsecase) CreateCustomer(ctx context.Context, input *entities.CreateCustomerInput) (*entities.Customer, error) {
	existing, err := u.customerRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("customer email already registered")
	}

	customer := &entities.Customer{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := u.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer fetches one customer
func (u *CustomerUsecase) GetCustomer(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("customer not found")
		}
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer applies the provided fields; empty fields are left alone
func (u *CustomerUsecase) UpdateCustomer(ctx context.Context, id uuid.UUID, input *entities.UpdateCustomerInput) (*entities.Customer, error) {
	customer, err := u.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.Phone != "" {
		customer.Phone = input.Phone
	}
	if input.Address != "" {
		customer.Address = input.Address
	}
	customer.UpdatedAt = time.Now()

	if err := u.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers returns a page of customers with the total count
func (u *CustomerUsecase) ListCustomers(ctx context.Context, search string, page utils.PaginationParams) ([]*entities.Customer, *utils.PaginationMeta, error) {
	customers, total, err := u.customerRepo.List(ctx, search, page)
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(total, page.Page, page.Limit)
	return customers, &meta, nil
}

// DeleteCustomer soft-deletes a customer; history stays queryable
func (u *CustomerUsecase) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	err := u.customerRepo.SoftDelete(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("customer not found")
	}
	return err
}
