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

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation of ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
	SELECT id, name, description, price, status, created_at, updated_at
	FROM products
	WHERE id = $1
	`
	row := db(ctx, r.pool).QueryRow(ctx, query, id)
	return scanProduct(row)
}

func (r *productRepository) FindAllByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
	SELECT id, name, description, price, status, created_at, updated_at
	FROM products
	WHERE id = ANY($1)
	`
	rows, err := db(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	const query = `
	SELECT id, name, description, price, status, created_at, updated_at
	FROM products
	WHERE ($1 = '' OR status = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := db(ctx, r.pool).Query(ctx, query, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, domain.ErrInvalidPayload
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Status == "" {
		product.Status = "available"
	}

	const query = `
	INSERT INTO products (id, name, description, price, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Status,
	).Scan(&product.CreatedAt, &product.UpdatedAt); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE products
	SET name = $2,
		description = $3,
		price = $4,
		status = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Status,
	).Scan(&product.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return err
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM products WHERE id = $1`
	tag, err := db(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}
