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

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation of OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) repository.OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
	SELECT id, customer_id, product_ids, total_amount, status, created_at, updated_at
	FROM orders
	WHERE id = $1
	`
	row := db(ctx, r.pool).QueryRow(ctx, query, id)
	return scanOrder(row)
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) (*repository.OrderPage, error) {
	const query = `
	SELECT id, customer_id, product_ids, total_amount, status, created_at, updated_at,
	       COUNT(*) OVER() AS total_count
	FROM orders
	WHERE ($1 = '' OR customer_id = $1)
	  AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4
	`
	rows, err := db(ctx, r.pool).Query(ctx, query,
		filter.CustomerID, string(filter.Status), clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := &repository.OrderPage{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.ProductIDs,
			&order.TotalAmount,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
			&page.Total,
		); err != nil {
			return nil, err
		}
		page.Orders = append(page.Orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The window count is absent when the page is empty; fall back to a plain count.
	if len(page.Orders) == 0 {
		const countQuery = `
		SELECT COUNT(*) FROM orders
		WHERE ($1 = '' OR customer_id = $1)
		  AND ($2 = '' OR status = $2)
		`
		if err := db(ctx, r.pool).QueryRow(ctx, countQuery,
			filter.CustomerID, string(filter.Status)).Scan(&page.Total); err != nil {
			return nil, err
		}
	}

	return page, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrInvalidPayload
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	const query = `
	INSERT INTO orders (id, customer_id, product_ids, total_amount, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		order.ID,
		order.CustomerID,
		order.ProductIDs,
		order.TotalAmount,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	const query = `
	UPDATE orders
	SET status = $2,
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, customer_id, product_ids, total_amount, status, created_at, updated_at
	`
	row := db(ctx, r.pool).QueryRow(ctx, query, id, status)
	return scanOrder(row)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM orders WHERE id = $1`
	tag, err := db(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) RevenueByYear(ctx context.Context, customerID string) ([]repository.YearRevenue, error) {
	// Year boundaries are UTC regardless of the connection timezone.
	const query = `
	SELECT EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC')::int AS year,
	       SUM(total_amount) AS total
	FROM orders
	WHERE customer_id = $1
	GROUP BY 1
	ORDER BY 1
	`
	rows, err := db(ctx, r.pool).Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []repository.YearRevenue
	for rows.Next() {
		var bucket repository.YearRevenue
		if err := rows.Scan(&bucket.Year, &bucket.Total); err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket)
	}
	return buckets, rows.Err()
}

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.ProductIDs,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
