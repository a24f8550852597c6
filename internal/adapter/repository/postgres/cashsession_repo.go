package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// CashSessionRepository implements usecase.CashSessionRepository.
type CashSessionRepository struct {
	pool *pgxpool.Pool
}

// NewCashSessionRepository creates a new CashSessionRepository.
func NewCashSessionRepository(pool *pgxpool.Pool) *CashSessionRepository {
	return &CashSessionRepository{pool: pool}
}

const cashSessionColumns = `
	id, opening_amount, opened_by, opened_at, status,
	closed_by, closed_at, expected_amount, actual_amount, difference, notes
`

// Create inserts a new open session. The partial unique index on status=open
// is the authority on the single-open-session rule; a second open surfaces
// here as a unique violation.
func (r *CashSessionRepository) Create(ctx context.Context, session *domain.CashSession) error {
	query := `
		INSERT INTO cash_sessions (id, opening_amount, opened_by, opened_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		decimalToNumeric(session.OpeningAmount),
		session.OpenedBy,
		timeToPgTimestamptz(session.OpenedAt),
		session.Status,
		session.Notes,
	)
	if isUniqueViolation(err) {
		return domain.ErrSessionAlreadyOpen
	}

	return err
}

// GetByID retrieves a session by ID.
func (r *CashSessionRepository) GetByID(ctx context.Context, id string) (*domain.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions WHERE id = $1`

	session, err := scanCashSession(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}

	return session, err
}

// GetOpen retrieves the single open session.
func (r *CashSessionRepository) GetOpen(ctx context.Context) (*domain.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions WHERE status = 'open'`

	session, err := scanCashSession(r.pool.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoOpenSession
	}

	return session, err
}

// GetOpenForUpdate retrieves the open session with a FOR UPDATE lock.
func (r *CashSessionRepository) GetOpenForUpdate(ctx context.Context, tx usecase.Transaction) (*domain.CashSession, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions WHERE status = 'open' FOR UPDATE`

	session, err := scanCashSession(pgxTx.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoOpenSession
	}

	return session, err
}

// Close persists the reconciliation result of a closed session.
func (r *CashSessionRepository) Close(ctx context.Context, tx usecase.Transaction, session *domain.CashSession) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE cash_sessions
		SET status = $2, closed_by = $3, closed_at = $4,
		    expected_amount = $5, actual_amount = $6, difference = $7, notes = $8
		WHERE id = $1
	`

	_, err := pgxTx.Exec(ctx, query,
		session.ID,
		session.Status,
		textPtr(session.ClosedBy),
		timePtrToPgTimestamptz(session.ClosedAt),
		decimalPtrToNumeric(session.ExpectedAmount),
		decimalPtrToNumeric(session.ActualAmount),
		decimalPtrToNumeric(session.Difference),
		session.Notes,
	)

	return err
}

// ListClosed lists closed sessions filtered by closing date, newest first.
func (r *CashSessionRepository) ListClosed(ctx context.Context, from, to *time.Time, limit, offset int) ([]*domain.CashSession, error) {
	query := `
		SELECT ` + cashSessionColumns + `
		FROM cash_sessions
		WHERE status = 'closed'
		  AND ($1::timestamptz IS NULL OR closed_at >= $1)
		  AND ($2::timestamptz IS NULL OR closed_at <= $2)
		ORDER BY closed_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query,
		timePtrToPgTimestamptz(from),
		timePtrToPgTimestamptz(to),
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.CashSession
	for rows.Next() {
		session, err := scanCashSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

func scanCashSession(row pgx.Row) (*domain.CashSession, error) {
	var (
		session          domain.CashSession
		opening          pgtype.Numeric
		closedBy         pgtype.Text
		closedAt         pgtype.Timestamptz
		expected, actual pgtype.Numeric
		difference       pgtype.Numeric
	)

	err := row.Scan(
		&session.ID,
		&opening,
		&session.OpenedBy,
		&session.OpenedAt,
		&session.Status,
		&closedBy,
		&closedAt,
		&expected,
		&actual,
		&difference,
		&session.Notes,
	)
	if err != nil {
		return nil, err
	}

	session.OpeningAmount = numericToDecimal(opening)
	session.ClosedBy = pgTextToStringPtr(closedBy)
	session.ClosedAt = pgTimestamptzToTimePtr(closedAt)
	session.ExpectedAmount = numericPtrToDecimal(expected)
	session.ActualAmount = numericPtrToDecimal(actual)
	session.Difference = numericPtrToDecimal(difference)

	return &session, nil
}
