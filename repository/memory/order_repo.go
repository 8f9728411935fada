package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
)

// OrderRepository is an in-memory OrderRepository used by unit tests.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]domain.Order)}
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *OrderRepository) List(_ context.Context, filter repository.OrderFilter) (*repository.OrderPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Order
	for _, order := range r.orders {
		if filter.CustomerID != "" && order.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		matched = append(matched, *cloneOrder(order))
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := &repository.OrderPage{Total: len(matched)}

	offset := filter.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page.Orders = matched[offset:end]

	return page, nil
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	r.orders[order.ID] = *cloneOrder(*order)
	return order, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	r.orders[id] = order

	return cloneOrder(order), nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *OrderRepository) RevenueByYear(_ context.Context, customerID string) ([]repository.YearRevenue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sums := make(map[int]decimal.Decimal)
	for _, order := range r.orders {
		if order.CustomerID != customerID {
			continue
		}
		year := order.CreatedAt.UTC().Year()
		sums[year] = sums[year].Add(order.TotalAmount)
	}

	buckets := make([]repository.YearRevenue, 0, len(sums))
	for year, total := range sums {
		buckets = append(buckets, repository.YearRevenue{Year: year, Total: total})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Year < buckets[j].Year })

	return buckets, nil
}

func cloneOrder(order domain.Order) *domain.Order {
	order.ProductIDs = append([]string(nil), order.ProductIDs...)
	return &order
}
