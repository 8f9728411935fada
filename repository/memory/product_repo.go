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

// ProductRepository is an in-memory ProductRepository used by unit tests.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]domain.Product)}
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

func (r *ProductRepository) FindAllByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(ids))
	var products []domain.Product
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.products[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *ProductRepository) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Product
	for _, product := range r.products {
		if filter.Status != "" && product.Status != filter.Status {
			continue
		}
		matched = append(matched, product)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Status == "" {
		product.Status = "available"
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	r.products[product.ID] = *product
	return product, nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) error {
	if product == nil {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		offset = len(items)
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
