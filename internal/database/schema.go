package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const createProductsTable = `
	CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)
`

type seedProduct struct {
	name        string
	category    string
	quantity    int
	price       decimal.Decimal
	description string
}

var seedProducts = []seedProduct{
	{"Laptop Pro", "Electronics", 15, decimal.RequireFromString("1299.99"), "High-performance laptop"},
	{"Wireless Mouse", "Electronics", 45, decimal.RequireFromString("29.99"), "Ergonomic wireless mouse"},
	{"Office Chair", "Furniture", 8, decimal.RequireFromString("199.99"), "Comfortable office chair"},
	{"Coffee Beans", "Food", 120, decimal.RequireFromString("12.99"), "Premium coffee beans"},
	{"Notebook Set", "Office Supplies", 200, decimal.RequireFromString("8.99"), "Pack of 3 notebooks"},
}

// Bootstrap creates the products table when missing and seeds the demo rows
// if the table is empty. Running it against a populated table is a no-op.
func Bootstrap(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if _, err := db.ExecContext(ctx, createProductsTable); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*)::int FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		logger.Info("Products table already populated, skipping seed", zap.Int("count", count))
		return nil
	}

	for _, p := range seedProducts {
		_, err := db.ExecContext(
			ctx,
			`INSERT INTO products (name, category, quantity, price, description) VALUES ($1, $2, $3, $4, $5)`,
			p.name,
			p.category,
			p.quantity,
			p.price,
			p.description,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
	}

	logger.Info("Seeded products table", zap.Int("count", len(seedProducts)))
	return nil
}
