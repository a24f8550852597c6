package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/infrastructure/metrics"
)

// CreditUseCase tracks money a client owes against a sale or order and
// applies partial payments against it.
type CreditUseCase struct {
	txManager   TransactionManager
	accountRepo CreditAccountRepository
	paymentRepo CreditPaymentRepository
	clients     ClientDirectory
	sales       SaleLedger
	orders      OrderLedger
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewCreditUseCase creates a new CreditUseCase.
func NewCreditUseCase(
	txManager TransactionManager,
	accountRepo CreditAccountRepository,
	paymentRepo CreditPaymentRepository,
	clients ClientDirectory,
	sales SaleLedger,
	orders OrderLedger,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *CreditUseCase {
	return &CreditUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		clients:     clients,
		sales:       sales,
		orders:      orders,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateCreditInput represents input for opening a credit account.
type CreateCreditInput struct {
	ClientID  string
	SaleID    *string
	OrderID   *string
	Amount    decimal.Decimal
	DueDate   *time.Time
	Notes     string
	CreatedBy string
}

// Create opens a credit account for a deferred sale or order. The origin is
// verified, flipped to deferred, and the account inserted in one
// transaction; the one-credit-per-origin unique index resolves concurrent
// creates.
func (uc *CreditUseCase) Create(ctx context.Context, input CreateCreditInput) (*domain.CreditAccount, error) {
	now := time.Now().UTC()
	account := &domain.CreditAccount{
		ID:        uc.idGen.Generate(),
		ClientID:  input.ClientID,
		SaleID:    input.SaleID,
		OrderID:   input.OrderID,
		Amount:    domain.RoundMoney(input.Amount),
		Balance:   domain.RoundMoney(input.Amount),
		Status:    domain.CreditPending,
		DueDate:   input.DueDate,
		Notes:     input.Notes,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Preconditions read inside the transaction so the eligibility check and
	// the insert see the same snapshot.
	client, err := uc.clients.GetClient(txCtx, tx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if !client.CreditEligible {
		return nil, domain.ErrClientNotEligible
	}

	if input.SaleID != nil {
		if _, err := uc.sales.GetSale(txCtx, tx, *input.SaleID); err != nil {
			return nil, err
		}
	} else {
		if _, err := uc.orders.GetOrder(txCtx, tx, *input.OrderID); err != nil {
			return nil, err
		}
	}

	if err := uc.accountRepo.Create(txCtx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.setOriginStatus(txCtx, tx, account, domain.OriginDeferred); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CreditsCreated.Inc()
	}

	return account, nil
}

// ApplyPaymentInput represents input for applying a payment.
type ApplyPaymentInput struct {
	CreditAccountID string
	Amount          decimal.Decimal
	PaymentMethod   string
	Reference       string
	Notes           string
	OperatorID      string
}

// ApplyPaymentOutput carries the recorded payment and the account it updated.
type ApplyPaymentOutput struct {
	Payment *domain.CreditPayment
	Account *domain.CreditAccount
}

// ApplyPayment applies a partial or full payment. The account row is locked
// for the check-and-decrement so concurrent payments serialize; the payment
// row, the balance update, and (on full settlement) the origin's settled
// status commit together.
func (uc *CreditUseCase) ApplyPayment(ctx context.Context, input ApplyPaymentInput) (*ApplyPaymentOutput, error) {
	amount := domain.RoundMoney(input.Amount)

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, input.CreditAccountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidatePayment(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance, newStatus := account.ApplyPayment(amount)

	payment := &domain.CreditPayment{
		ID:              uc.idGen.Generate(),
		CreditAccountID: account.ID,
		Amount:          amount,
		PaymentMethod:   input.PaymentMethod,
		Reference:       input.Reference,
		Notes:           input.Notes,
		UserID:          input.OperatorID,
		PaymentDate:     now,
	}

	if err := uc.paymentRepo.Create(txCtx, tx, payment); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, newStatus, now); err != nil {
		return nil, err
	}

	if newStatus == domain.CreditPaid {
		if err := uc.setOriginStatus(txCtx, tx, account, domain.OriginSettled); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	account.Balance = newBalance
	account.Status = newStatus
	account.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.CreditPayments.Inc()
		paid, _ := amount.Float64()
		uc.metrics.CreditPaidTotal.Add(paid)
		if newStatus == domain.CreditPaid {
			uc.metrics.CreditsSettled.Inc()
		}
	}

	return &ApplyPaymentOutput{Payment: payment, Account: account}, nil
}

func (uc *CreditUseCase) setOriginStatus(ctx context.Context, tx Transaction, account *domain.CreditAccount, status string) error {
	if account.SaleID != nil {
		return uc.sales.SetPaymentStatus(ctx, tx, *account.SaleID, status)
	}

	return uc.orders.SetPaymentStatus(ctx, tx, *account.OrderID, status)
}

// Get retrieves a credit account with its payment history.
func (uc *CreditUseCase) Get(ctx context.Context, id string) (*domain.CreditAccount, []*domain.CreditPayment, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	payments, err := uc.paymentRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}

	return account, payments, nil
}

// ListByClient lists a client's credit accounts.
func (uc *CreditUseCase) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*domain.CreditAccount, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.accountRepo.ListByClient(ctx, clientID, limit, offset)
}

// OverdueInput represents input for listing overdue accounts.
type OverdueInput struct {
	AsOf   time.Time
	Limit  int
	Offset int
}

// Overdue lists pending accounts whose due date has passed as of the given
// time. The reference time is explicit so reports stay deterministic.
func (uc *CreditUseCase) Overdue(ctx context.Context, input OverdueInput) ([]*domain.CreditAccount, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.ListOverdue(ctx, input.AsOf, limit, offset)
}
