package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
)

// CustomerRepository is an in-memory CustomerRepository used by unit tests.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[string]domain.Customer)}
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return &customer, nil
}

func (r *CustomerRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.customers[id]
	return ok, nil
}

func (r *CustomerRepository) List(_ context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Customer
	for _, customer := range r.customers {
		if filter.Status != "" && customer.Status != filter.Status {
			continue
		}
		matched = append(matched, customer)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *CustomerRepository) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if customer.Status == "" {
		customer.Status = "active"
	}
	now := time.Now().UTC()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	r.customers[customer.ID] = *customer
	return customer, nil
}

func (r *CustomerRepository) Update(_ context.Context, customer *domain.Customer) error {
	if customer == nil {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.customers[customer.ID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now().UTC()
	r.customers[customer.ID] = *customer
	return nil
}

func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}
