package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is a flat enumeration. Any status may replace any other; only
// membership is validated.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a wire value against the enumeration.
func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.IsValid() {
		return "", WrapError(ErrCodeInvalid, "unknown order status", nil)
	}
	return status, nil
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order links one customer to an ordered sequence of product references with
// a server-computed total. ProductIDs preserves the requested sequence,
// duplicates included; each occurrence contributed its product's price to
// TotalAmount at creation time. The total is a snapshot and does not follow
// later catalog price changes.
type Order struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	ProductIDs  []string        `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
