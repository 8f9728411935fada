package order

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
	"github.com/storefront/backend/usecase"
)

// UseCase holds the order workflow rules: reference validation, total
// computation, status management and revenue reporting.
type UseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	uow       repository.UnitOfWork
	journal   usecase.OrderJournal
	revenue   usecase.RevenueCache
	metrics   usecase.WorkflowMetrics
	logger    *zap.Logger
}

func New(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	uow repository.UnitOfWork,
	journal usecase.OrderJournal,
	revenue usecase.RevenueCache,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		orders:    orders,
		customers: customers,
		products:  products,
		uow:       uow,
		journal:   journal,
		revenue:   revenue,
		logger:    logger,
	}
}

// WithMetrics attaches workflow counters. Safe to skip when metrics are
// disabled.
func (uc *UseCase) WithMetrics(m usecase.WorkflowMetrics) *UseCase {
	uc.metrics = m
	return uc
}

// CreateOrder validates the customer and every referenced product, computes
// the total server-side and persists the order with status pending, all
// inside one unit of work. Duplicate product references are allowed: each
// occurrence contributes the product's current price to the total, and the
// stored reference list preserves the requested sequence.
func (uc *UseCase) CreateOrder(ctx context.Context, customerID string, productIDs []string) (*domain.Order, error) {
	if customerID == "" || len(productIDs) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	var created *domain.Order
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		exists, err := uc.customers.ExistsByID(ctx, customerID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrCustomerNotFound
		}

		resolved, err := uc.products.FindAllByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		if len(resolved) != len(distinct(productIDs)) {
			return domain.ErrProductNotFound
		}

		prices := make(map[string]decimal.Decimal, len(resolved))
		for _, product := range resolved {
			prices[product.ID] = product.Price
		}

		total := decimal.Zero
		for _, id := range productIDs {
			total = total.Add(prices[id])
		}

		order := &domain.Order{
			CustomerID:  customerID,
			ProductIDs:  append([]string(nil), productIDs...),
			TotalAmount: total,
			Status:      domain.OrderStatusPending,
		}
		created, err = uc.orders.Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.recordEvent(ctx, domain.OrderEventCreated, created)
	uc.invalidateRevenue(ctx, created.CustomerID)
	if uc.metrics != nil {
		uc.metrics.OrderCreated()
	}

	uc.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("customer_id", created.CustomerID),
		zap.String("total", created.TotalAmount.String()))

	return created, nil
}

func (uc *UseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.orders.GetByID(ctx, id)
}

func (uc *UseCase) ListOrders(ctx context.Context, filter repository.OrderFilter) (*repository.OrderPage, error) {
	return uc.orders.List(ctx, filter)
}

// UpdateOrderStatus overwrites the status of an existing order. The
// enumeration is flat: any status may follow any other.
func (uc *UseCase) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "unknown order status", nil)
	}

	var updated *domain.Order
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = uc.orders.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.recordEvent(ctx, domain.OrderEventStatusChanged, updated)
	return updated, nil
}

// DeleteOrder removes an order unconditionally; there is no terminal-state
// protection.
func (uc *UseCase) DeleteOrder(ctx context.Context, id string) error {
	var deleted *domain.Order
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		order, err := uc.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.orders.Delete(ctx, id); err != nil {
			return err
		}
		deleted = order
		return nil
	})
	if err != nil {
		return err
	}

	uc.recordEvent(ctx, domain.OrderEventDeleted, deleted)
	uc.invalidateRevenue(ctx, deleted.CustomerID)
	if uc.metrics != nil {
		uc.metrics.OrderDeleted()
	}
	return nil
}

// RevenuePerYear reports the customer's summed order totals per UTC calendar
// year, ascending. A customer with zero orders gets an empty report, not an
// error.
func (uc *UseCase) RevenuePerYear(ctx context.Context, customerID string) ([]domain.RevenueRecord, error) {
	exists, err := uc.customers.ExistsByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCustomerNotFound
	}

	if uc.revenue != nil {
		if cached, hit, err := uc.revenue.Get(ctx, customerID); err != nil {
			uc.logger.Warn("revenue cache read failed", zap.Error(err))
		} else if hit {
			if uc.metrics != nil {
				uc.metrics.RevenueCacheHit()
			}
			return cached, nil
		}
		if uc.metrics != nil {
			uc.metrics.RevenueCacheMiss()
		}
	}

	buckets, err := uc.orders.RevenueByYear(ctx, customerID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.RevenueRecord, 0, len(buckets))
	for _, bucket := range buckets {
		records = append(records, domain.RevenueRecord{
			CustomerID: customerID,
			Year:       bucket.Year,
			Total:      bucket.Total,
		})
	}

	if uc.revenue != nil {
		if err := uc.revenue.Set(ctx, customerID, records); err != nil {
			uc.logger.Warn("revenue cache write failed", zap.Error(err))
		}
	}

	return records, nil
}

func (uc *UseCase) recordEvent(ctx context.Context, action string, order *domain.Order) {
	if uc.journal == nil || order == nil {
		return
	}
	if err := uc.journal.RecordOrderEvent(ctx, action, order); err != nil {
		uc.logger.Warn("failed to journal order event",
			zap.String("action", action),
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

func (uc *UseCase) invalidateRevenue(ctx context.Context, customerID string) {
	if uc.revenue == nil {
		return
	}
	if err := uc.revenue.Invalidate(ctx, customerID); err != nil {
		uc.logger.Warn("revenue cache invalidation failed",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
