package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/domain"
)

// OrderFilter narrows order listings. Zero-valued fields are unconstrained;
// set fields combine with logical AND.
type OrderFilter struct {
	CustomerID string
	Status     domain.OrderStatus
	Limit      int
	Offset     int
}

// OrderPage carries one page of orders plus the total match count for
// pagination metadata.
type OrderPage struct {
	Orders []domain.Order
	Total  int
}

// YearRevenue is one aggregation bucket: the summed order totals of a single
// calendar year (UTC). Years without orders produce no bucket.
type YearRevenue struct {
	Year  int
	Total decimal.Decimal
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) (*OrderPage, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	// RevenueByYear groups the customer's orders by the UTC year of their
	// creation timestamp, summing totals per group, ascending by year. A
	// customer with no orders yields an empty slice, not an error.
	RevenueByYear(ctx context.Context, customerID string) ([]YearRevenue, error)
}
