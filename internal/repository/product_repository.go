package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventory-api/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const productColumns = `id, name, category, quantity, price, description, created_at, updated_at`

// ProductRepository defines the interface for product data access.
// Every method issues exactly one statement.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, input domain.ProductInput) (int64, error)
	Update(ctx context.Context, id int64, input domain.ProductInput) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.Stats, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Quantity,
		&product.Price,
		&product.Description,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// List returns every product, newest first
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// Create inserts a product and returns the generated ID. Timestamps come
// from the column defaults.
func (r *productRepository) Create(ctx context.Context, input domain.ProductInput) (int64, error) {
	query := `
		INSERT INTO products (name, category, quantity, price, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		query,
		input.Name,
		input.Category,
		input.Quantity,
		input.Price,
		input.Description,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	return id, nil
}

// Update overwrites all writable columns and refreshes updated_at
func (r *productRepository) Update(ctx context.Context, id int64, input domain.ProductInput) error {
	query := `
		UPDATE products
		SET name = $1, category = $2, quantity = $3, price = $4,
		    description = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		input.Name,
		input.Category,
		input.Quantity,
		input.Price,
		input.Description,
		id,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Stats aggregates the table in a single pass. Sums over an empty table
// are reported as zero.
func (r *productRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	query := `
		SELECT
			COUNT(*)::int AS total_products,
			COALESCE(SUM(quantity), 0)::int AS total_items,
			COUNT(DISTINCT category)::int AS categories,
			COALESCE(SUM(quantity * price), 0)::numeric AS total_value
		FROM products
	`

	stats := &domain.Stats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalProducts,
		&stats.TotalItems,
		&stats.Categories,
		&stats.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute product stats: %w", err)
	}

	return stats, nil
}
