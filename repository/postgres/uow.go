package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront/backend/repository"
)

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

type unitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork returns a pgx-backed unit of work. Do begins a transaction,
// threads it through the context for repositories to pick up, commits when fn
// returns nil and rolls back otherwise.
func NewUnitOfWork(pool *pgxpool.Pool) repository.UnitOfWork {
	return &unitOfWork{pool: pool}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the enclosing transaction.
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
