package repositories

import (
	"context"

	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/pkg/utils"
	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entities.Customer, error)
	Update(ctx context.Context, customer *entities.Customer) error
	List(ctx context.Context, search string, page utils.PaginationParams) ([]*entities.Customer, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
