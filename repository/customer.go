package repository

import (
	"context"

	"github.com/storefront/backend/domain"
)

type CustomerFilter struct {
	Status string
	Limit  int
	Offset int
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// ExistsByID is the lightweight lookup the order workflow uses; it never
	// loads the row.
	ExistsByID(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
}
