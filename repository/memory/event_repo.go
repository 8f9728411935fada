package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/domain"
)

// OrderEventRepository is an in-memory OrderEventRepository used by unit tests.
type OrderEventRepository struct {
	mu     sync.RWMutex
	events []domain.OrderEvent
}

func NewOrderEventRepository() *OrderEventRepository {
	return &OrderEventRepository{}
}

func (r *OrderEventRepository) Append(_ context.Context, event *domain.OrderEvent) error {
	if event == nil {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	for _, existing := range r.events {
		if existing.ID == event.ID {
			return nil
		}
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *OrderEventRepository) ListByOrder(_ context.Context, orderID string, limit int) ([]domain.OrderEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var events []domain.OrderEvent
	for _, event := range r.events {
		if event.OrderID != orderID {
			continue
		}
		events = append(events, event)
		if len(events) == limit {
			break
		}
	}
	return events, nil
}
