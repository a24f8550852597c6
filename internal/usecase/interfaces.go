package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
)

// CashSessionRepository defines data access for cash sessions.
type CashSessionRepository interface {
	// Create inserts a new open session. Returns domain.ErrSessionAlreadyOpen
	// when the single-open partial unique index rejects the insert.
	Create(ctx context.Context, session *domain.CashSession) error
	GetByID(ctx context.Context, id string) (*domain.CashSession, error)
	GetOpen(ctx context.Context) (*domain.CashSession, error)
	GetOpenForUpdate(ctx context.Context, tx Transaction) (*domain.CashSession, error)
	Close(ctx context.Context, tx Transaction, session *domain.CashSession) error
	ListClosed(ctx context.Context, from, to *time.Time, limit, offset int) ([]*domain.CashSession, error)
}

// CashMovementRepository defines data access for cash movements.
type CashMovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.CashMovement) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.CashMovement, error)
	SumBySession(ctx context.Context, tx Transaction, sessionID string) (incomes, expenses decimal.Decimal, err error)
}

// CreditAccountRepository defines data access for credit accounts.
type CreditAccountRepository interface {
	// Create inserts a new account. Returns domain.ErrCreditExists when the
	// one-credit-per-origin unique index rejects the insert.
	Create(ctx context.Context, tx Transaction, account *domain.CreditAccount) error
	GetByID(ctx context.Context, id string) (*domain.CreditAccount, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.CreditAccount, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, status domain.CreditStatus, updatedAt time.Time) error
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*domain.CreditAccount, error)
	ListOverdue(ctx context.Context, asOf time.Time, limit, offset int) ([]*domain.CreditAccount, error)
}

// CreditPaymentRepository defines data access for credit payments.
type CreditPaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.CreditPayment) error
	ListByAccount(ctx context.Context, accountID string) ([]*domain.CreditPayment, error)
}

// VoucherRepository defines data access for vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, voucher *domain.Voucher) error
	GetByID(ctx context.Context, id string) (*domain.Voucher, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Voucher, error)
	UpdateStatus(ctx context.Context, tx Transaction, voucher *domain.Voucher) error
	ListPendingForUpdate(ctx context.Context, tx Transaction, clientID string) ([]*domain.Voucher, error)
	SettleAll(ctx context.Context, tx Transaction, ids []string, paidAt time.Time, method, reference string) error
	ListByClient(ctx context.Context, clientID string, status *domain.VoucherStatus, limit, offset int) ([]*domain.Voucher, error)
	ListByDeliveryAgent(ctx context.Context, agentID string, status *domain.VoucherStatus, limit, offset int) ([]*domain.Voucher, error)
	StatsForClient(ctx context.Context, clientID string, from, to *time.Time) (*domain.VoucherStats, error)
	StatsForDeliveryAgent(ctx context.Context, agentID string, from, to *time.Time) (*domain.VoucherStats, error)
	StatsGlobal(ctx context.Context, from, to *time.Time) (*domain.VoucherStats, error)
	PendingByClient(ctx context.Context) ([]*domain.ClientPending, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient database failures. A nil Retrier
// means the operation runs exactly once.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
