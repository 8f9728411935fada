package customer

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
)

type UseCase struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func New(customers repository.CustomerRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		customers: customers,
		logger:    logger,
	}
}

func (uc *UseCase) ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	return uc.customers.List(ctx, filter)
}

func (uc *UseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customers.GetByID(ctx, id)
}

func (uc *UseCase) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil || customer.Email == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.customers.Create(ctx, customer)
}

func (uc *UseCase) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil || customer.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (uc *UseCase) DeleteCustomer(ctx context.Context, id string) error {
	return uc.customers.Delete(ctx, id)
}
