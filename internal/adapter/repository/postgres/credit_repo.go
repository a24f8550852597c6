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

// CreditAccountRepository implements usecase.CreditAccountRepository.
type CreditAccountRepository struct {
	pool *pgxpool.Pool
}

// NewCreditAccountRepository creates a new CreditAccountRepository.
func NewCreditAccountRepository(pool *pgxpool.Pool) *CreditAccountRepository {
	return &CreditAccountRepository{pool: pool}
}

const creditAccountColumns = `
	id, client_id, sale_id, order_id, amount, balance, status,
	due_date, notes, created_by, created_at, updated_at
`

// Create inserts a new account inside the caller's transaction. The partial
// unique indexes on sale_id and order_id reject a second credit for the same
// origin.
func (r *CreditAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.CreditAccount) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO credit_accounts (` + creditAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pgxTx.Exec(ctx, query,
		account.ID,
		account.ClientID,
		textPtr(account.SaleID),
		textPtr(account.OrderID),
		decimalToNumeric(account.Amount),
		decimalToNumeric(account.Balance),
		account.Status,
		timePtrToPgTimestamptz(account.DueDate),
		account.Notes,
		account.CreatedBy,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrCreditExists
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *CreditAccountRepository) GetByID(ctx context.Context, id string) (*domain.CreditAccount, error) {
	query := `SELECT ` + creditAccountColumns + ` FROM credit_accounts WHERE id = $1`

	account, err := scanCreditAccount(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCreditNotFound
	}

	return account, err
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *CreditAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.CreditAccount, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + creditAccountColumns + ` FROM credit_accounts WHERE id = $1 FOR UPDATE`

	account, err := scanCreditAccount(pgxTx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCreditNotFound
	}

	return account, err
}

// UpdateBalance updates the balance and status of an account.
func (r *CreditAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, status domain.CreditStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE credit_accounts
		SET balance = $2, status = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := pgxTx.Exec(ctx, query,
		id,
		decimalToNumeric(balance),
		status,
		timeToPgTimestamptz(updatedAt),
	)

	return err
}

// ListByClient lists a client's accounts, newest first.
func (r *CreditAccountRepository) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*domain.CreditAccount, error) {
	query := `
		SELECT ` + creditAccountColumns + `
		FROM credit_accounts
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryAccounts(ctx, query, clientID, limit, offset)
}

// ListOverdue lists pending accounts past their due date, oldest debt first.
func (r *CreditAccountRepository) ListOverdue(ctx context.Context, asOf time.Time, limit, offset int) ([]*domain.CreditAccount, error) {
	query := `
		SELECT ` + creditAccountColumns + `
		FROM credit_accounts
		WHERE status = 'pending' AND due_date IS NOT NULL AND due_date < $1
		ORDER BY due_date
		LIMIT $2 OFFSET $3
	`

	return r.queryAccounts(ctx, query, timeToPgTimestamptz(asOf), limit, offset)
}

func (r *CreditAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]*domain.CreditAccount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.CreditAccount
	for rows.Next() {
		account, err := scanCreditAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanCreditAccount(row pgx.Row) (*domain.CreditAccount, error) {
	var (
		account         domain.CreditAccount
		saleID, orderID pgtype.Text
		amount, balance pgtype.Numeric
		dueDate         pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.ClientID,
		&saleID,
		&orderID,
		&amount,
		&balance,
		&account.Status,
		&dueDate,
		&account.Notes,
		&account.CreatedBy,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.SaleID = pgTextToStringPtr(saleID)
	account.OrderID = pgTextToStringPtr(orderID)
	account.Amount = numericToDecimal(amount)
	account.Balance = numericToDecimal(balance)
	account.DueDate = pgTimestamptzToTimePtr(dueDate)

	return &account, nil
}
