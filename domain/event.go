package domain

import (
	"encoding/json"
	"time"
)

const (
	OrderEventCreated       = "created"
	OrderEventStatusChanged = "status_changed"
	OrderEventDeleted       = "deleted"
)

// OrderEvent is an audit record of a mutation applied to an order. Events are
// journaled locally first and drained into durable storage asynchronously.
type OrderEvent struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
