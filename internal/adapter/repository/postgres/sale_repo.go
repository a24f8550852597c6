package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// SaleRepository implements usecase.SaleLedger against the sales table owned
// by the sales module. Reads plus the payment-status flips driven by the
// credit ledger.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// GetSale retrieves a sale by ID. A non-nil tx joins the caller's
// transaction snapshot.
func (r *SaleRepository) GetSale(ctx context.Context, tx usecase.Transaction, id string) (*domain.Sale, error) {
	query := `
		SELECT id, client_id, total, status, payment_status, sold_at
		FROM sales
		WHERE id = $1
	`

	var row pgx.Row
	if tx != nil {
		row = tx.(*Tx).PgxTx().QueryRow(ctx, query, id)
	} else {
		row = r.pool.QueryRow(ctx, query, id)
	}

	var (
		sale  domain.Sale
		total pgtype.Numeric
	)

	err := row.Scan(
		&sale.ID,
		&sale.ClientID,
		&total,
		&sale.Status,
		&sale.PaymentStatus,
		&sale.SoldAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}

	sale.Total = numericToDecimal(total)

	return &sale, nil
}

// SumPaidSince totals completed sales since the given time. A nil tx reads
// from the pool; a non-nil tx joins the caller's snapshot, which is how the
// session close gets a consistent expected amount.
func (r *SaleRepository) SumPaidSince(ctx context.Context, tx usecase.Transaction, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed' AND sold_at >= $1
	`

	var row pgx.Row
	if tx != nil {
		row = tx.(*Tx).PgxTx().QueryRow(ctx, query, timeToPgTimestamptz(since))
	} else {
		row = r.pool.QueryRow(ctx, query, timeToPgTimestamptz(since))
	}

	var total pgtype.Numeric
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// SetPaymentStatus flips a sale's payment status inside the caller's transaction.
func (r *SaleRepository) SetPaymentStatus(ctx context.Context, tx usecase.Transaction, id, status string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `UPDATE sales SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}
