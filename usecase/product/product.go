package product

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
)

type UseCase struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func New(products repository.ProductRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		products: products,
		logger:   logger,
	}
}

func (uc *UseCase) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return uc.products.List(ctx, filter)
}

func (uc *UseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.products.GetByID(ctx, id)
}

func (uc *UseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil || product.Name == "" {
		return nil, domain.ErrInvalidPayload
	}
	if product.Price.IsNegative() {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "price must not be negative", nil)
	}
	return uc.products.Create(ctx, product)
}

func (uc *UseCase) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil || product.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if product.Price.IsNegative() {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "price must not be negative", nil)
	}
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.products.Delete(ctx, id)
}
