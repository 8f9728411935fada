package memory

import (
	"context"
	"sync"

	"github.com/storefront/backend/repository"
)

// UnitOfWork serializes units of work under a single mutex. Rollback is not
// emulated: every workflow in this service validates before it mutates, so a
// failing fn has written nothing.
type UnitOfWork struct {
	mu sync.Mutex
}

func NewUnitOfWork() repository.UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx)
}
