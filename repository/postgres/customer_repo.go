package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
)

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation of CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) repository.CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const query = `
	SELECT id, email, name, status, created_at, updated_at
	FROM customers
	WHERE id = $1
	`
	row := db(ctx, r.pool).QueryRow(ctx, query, id)
	return scanCustomer(row)
}

func (r *customerRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`
	var exists bool
	if err := db(ctx, r.pool).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *customerRepository) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	const query = `
	SELECT id, email, name, status, created_at, updated_at
	FROM customers
	WHERE ($1 = '' OR status = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := db(ctx, r.pool).Query(ctx, query, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, domain.ErrInvalidPayload
	}
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if customer.Status == "" {
		customer.Status = "active"
	}

	const query = `
	INSERT INTO customers (id, email, name, status)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		customer.ID,
		customer.Email,
		customer.Name,
		customer.Status,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt); err != nil {
		return nil, err
	}

	return customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	if customer == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE customers
	SET email = $2,
		name = $3,
		status = $4,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		customer.ID,
		customer.Email,
		customer.Name,
		customer.Status,
	).Scan(&customer.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCustomerNotFound
		}
		return err
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM customers WHERE id = $1`
	tag, err := db(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.Status,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}
