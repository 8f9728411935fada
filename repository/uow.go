package repository

import "context"

// UnitOfWork scopes a set of repository reads and writes into one atomic
// boundary: fn's context carries the transaction, a nil return commits, any
// error (or panic) rolls back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
