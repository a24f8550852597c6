package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrosur/fincore/internal/domain"
)

// ProductRepository implements usecase.ProductCatalog against the products
// table owned by the catalog module. Read-only.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetProduct retrieves a product by ID.
func (r *ProductRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, unit_price, active
		FROM products
		WHERE id = $1
	`

	var (
		product   domain.Product
		unitPrice pgtype.Numeric
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&unitPrice,
		&product.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	product.UnitPrice = numericToDecimal(unitPrice)

	return &product, nil
}
