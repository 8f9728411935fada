package repository

import (
	"context"

	"github.com/storefront/backend/domain"
)

type ProductFilter struct {
	Status string
	Limit  int
	Offset int
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// FindAllByIDs resolves a batch of product references. Unknown ids are
	// silently dropped; callers detect missing products by comparing counts.
	// Each distinct id appears at most once in the result.
	FindAllByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}
