package repository

import (
	"context"

	"github.com/storefront/backend/domain"
)

type OrderEventRepository interface {
	Append(ctx context.Context, event *domain.OrderEvent) error
	ListByOrder(ctx context.Context, orderID string, limit int) ([]domain.OrderEvent, error)
}
