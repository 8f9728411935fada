package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
)

type orderEventRepository struct {
	pool *pgxpool.Pool
}

// NewOrderEventRepository returns a Postgres-backed implementation of OrderEventRepository.
func NewOrderEventRepository(pool *pgxpool.Pool) repository.OrderEventRepository {
	return &orderEventRepository{pool: pool}
}

func (r *orderEventRepository) Append(ctx context.Context, event *domain.OrderEvent) error {
	if event == nil {
		return domain.ErrInvalidPayload
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	// Replays are possible after a partial journal drain; keep Append idempotent.
	const query = `
	INSERT INTO order_events (id, order_id, customer_id, action, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
	ON CONFLICT (id) DO NOTHING
	`
	var createdAt interface{}
	if !event.CreatedAt.IsZero() {
		createdAt = event.CreatedAt
	}

	_, err := db(ctx, r.pool).Exec(ctx, query,
		event.ID,
		event.OrderID,
		event.CustomerID,
		event.Action,
		[]byte(event.Payload),
		createdAt,
	)
	return err
}

func (r *orderEventRepository) ListByOrder(ctx context.Context, orderID string, limit int) ([]domain.OrderEvent, error) {
	const query = `
	SELECT id, order_id, customer_id, action, payload, created_at
	FROM order_events
	WHERE order_id = $1
	ORDER BY created_at ASC
	LIMIT $2
	`
	rows, err := db(ctx, r.pool).Query(ctx, query, orderID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.OrderEvent
	for rows.Next() {
		var event domain.OrderEvent
		var payload []byte
		if err := rows.Scan(
			&event.ID,
			&event.OrderID,
			&event.CustomerID,
			&event.Action,
			&payload,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		event.Payload = payload
		events = append(events, event)
	}
	return events, rows.Err()
}
