package domain

import "github.com/shopspring/decimal"

// RevenueRecord is a derived (customer, year, summed total) tuple. It is
// computed on demand from order history and never persisted. Year boundaries
// follow UTC.
type RevenueRecord struct {
	CustomerID string          `json:"customer_id"`
	Year       int             `json:"year"`
	Total      decimal.Decimal `json:"total"`
}
