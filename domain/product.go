package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item with a unit price.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) IsAvailable() bool {
	return p != nil && p.Status == "available"
}
