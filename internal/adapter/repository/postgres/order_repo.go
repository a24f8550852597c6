package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// OrderRepository implements usecase.OrderLedger against the orders table
// owned by the orders module.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// GetOrder retrieves an order by ID. A non-nil tx joins the caller's
// transaction snapshot.
func (r *OrderRepository) GetOrder(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error) {
	query := `
		SELECT id, client_id, total, status, payment_status, created_at
		FROM orders
		WHERE id = $1
	`

	var row pgx.Row
	if tx != nil {
		row = tx.(*Tx).PgxTx().QueryRow(ctx, query, id)
	} else {
		row = r.pool.QueryRow(ctx, query, id)
	}

	var (
		order domain.Order
		total pgtype.Numeric
	)

	err := row.Scan(
		&order.ID,
		&order.ClientID,
		&total,
		&order.Status,
		&order.PaymentStatus,
		&order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	order.Total = numericToDecimal(total)

	return &order, nil
}

// SetPaymentStatus flips an order's payment status inside the caller's transaction.
func (r *OrderRepository) SetPaymentStatus(ctx context.Context, tx usecase.Transaction, id, status string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `UPDATE orders SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}
