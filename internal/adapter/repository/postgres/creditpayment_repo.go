package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// CreditPaymentRepository implements usecase.CreditPaymentRepository.
type CreditPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewCreditPaymentRepository creates a new CreditPaymentRepository.
func NewCreditPaymentRepository(pool *pgxpool.Pool) *CreditPaymentRepository {
	return &CreditPaymentRepository{pool: pool}
}

// Create inserts a payment inside the caller's transaction.
func (r *CreditPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.CreditPayment) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO credit_payments (id, credit_account_id, amount, payment_method, reference, notes, user_id, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		payment.ID,
		payment.CreditAccountID,
		decimalToNumeric(payment.Amount),
		payment.PaymentMethod,
		payment.Reference,
		payment.Notes,
		payment.UserID,
		timeToPgTimestamptz(payment.PaymentDate),
	)

	return err
}

// ListByAccount lists an account's payments in chronological order.
func (r *CreditPaymentRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.CreditPayment, error) {
	query := `
		SELECT id, credit_account_id, amount, payment_method, reference, notes, user_id, payment_date
		FROM credit_payments
		WHERE credit_account_id = $1
		ORDER BY payment_date
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.CreditPayment
	for rows.Next() {
		var (
			payment domain.CreditPayment
			amount  pgtype.Numeric
		)

		err := rows.Scan(
			&payment.ID,
			&payment.CreditAccountID,
			&amount,
			&payment.PaymentMethod,
			&payment.Reference,
			&payment.Notes,
			&payment.UserID,
			&payment.PaymentDate,
		)
		if err != nil {
			return nil, err
		}

		payment.Amount = numericToDecimal(amount)
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}
