package usecase

import (
	"context"

	"github.com/storefront/backend/domain"
)

// OrderJournal records audit events for order mutations. Recording is
// fire-and-forget: a journal failure never fails the request.
type OrderJournal interface {
	RecordOrderEvent(ctx context.Context, action string, order *domain.Order) error
}

// RevenueCache abstracts the revenue report cache so use cases stay
// storage-agnostic.
type RevenueCache interface {
	Get(ctx context.Context, customerID string) ([]domain.RevenueRecord, bool, error)
	Set(ctx context.Context, customerID string, records []domain.RevenueRecord) error
	Invalidate(ctx context.Context, customerID string) error
}

// WorkflowMetrics counts order workflow outcomes. All methods must be cheap
// and non-blocking.
type WorkflowMetrics interface {
	OrderCreated()
	OrderDeleted()
	RevenueCacheHit()
	RevenueCacheMiss()
}
