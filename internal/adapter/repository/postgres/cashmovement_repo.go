package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// CashMovementRepository implements usecase.CashMovementRepository.
type CashMovementRepository struct {
	pool *pgxpool.Pool
}

// NewCashMovementRepository creates a new CashMovementRepository.
func NewCashMovementRepository(pool *pgxpool.Pool) *CashMovementRepository {
	return &CashMovementRepository{pool: pool}
}

// Create inserts a movement inside the caller's transaction.
func (r *CashMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.CashMovement) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO cash_movements (id, cash_session_id, type, amount, concept, reference, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		movement.ID,
		movement.CashSessionID,
		movement.Type,
		decimalToNumeric(movement.Amount),
		movement.Concept,
		movement.Reference,
		movement.UserID,
		timeToPgTimestamptz(movement.CreatedAt),
	)

	return err
}

// ListBySession lists a session's movements in insertion order.
func (r *CashMovementRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.CashMovement, error) {
	query := `
		SELECT id, cash_session_id, type, amount, concept, reference, user_id, created_at
		FROM cash_movements
		WHERE cash_session_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.CashMovement
	for rows.Next() {
		var (
			movement domain.CashMovement
			amount   pgtype.Numeric
		)

		err := rows.Scan(
			&movement.ID,
			&movement.CashSessionID,
			&movement.Type,
			&amount,
			&movement.Concept,
			&movement.Reference,
			&movement.UserID,
			&movement.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		movement.Amount = numericToDecimal(amount)
		movements = append(movements, &movement)
	}

	return movements, rows.Err()
}

// SumBySession totals a session's incomes and expenses inside the caller's
// transaction, so a concurrent close sees a consistent snapshot.
func (r *CashMovementRepository) SumBySession(ctx context.Context, tx usecase.Transaction, sessionID string) (decimal.Decimal, decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM cash_movements
		WHERE cash_session_id = $1
	`

	var incomes, expenses pgtype.Numeric
	if err := pgxTx.QueryRow(ctx, query, sessionID).Scan(&incomes, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(incomes), numericToDecimal(expenses), nil
}
