package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a stocked item in the inventory
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       Amount    `json:"price" db:"price"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductInput carries the writable columns of a product. Nil fields are
// stored as NULL.
type ProductInput struct {
	Name        *string
	Category    *string
	Quantity    *int
	Price       *decimal.Decimal
	Description *string
}

// Stats is the aggregate view of the whole inventory
type Stats struct {
	TotalProducts int64  `json:"total_products"`
	TotalItems    int64  `json:"total_items"`
	Categories    int64  `json:"categories"`
	TotalValue    Amount `json:"total_value"`
}
