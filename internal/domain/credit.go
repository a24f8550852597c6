package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreditStatus string

const (
	CreditPending CreditStatus = "pending"
	CreditPaid    CreditStatus = "paid"
)

// Payment states pushed onto the originating sale or order when a credit
// account is created and when it is fully settled.
const (
	OriginDeferred = "deferred"
	OriginSettled  = "settled"
)

// CreditAccount is a deferred-payment balance owed by a client against
// exactly one sale or one order. Balance only decreases; the row is never
// deleted.
type CreditAccount struct {
	ID        string
	ClientID  string
	SaleID    *string
	OrderID   *string
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Status    CreditStatus
	DueDate   *time.Time
	Notes     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the creation invariants: positive amount and exactly one origin.
func (a *CreditAccount) Validate() error {
	if err := ValidatePositiveAmount(a.Amount); err != nil {
		return err
	}

	if (a.SaleID == nil) == (a.OrderID == nil) {
		return ErrOriginRequired
	}

	return nil
}

// ValidatePayment checks whether amount can be applied against the current balance.
// Payments may equal, but never exceed, the remaining balance.
func (a *CreditAccount) ValidatePayment(amount decimal.Decimal) error {
	if a.Status == CreditPaid {
		return ErrCreditAlreadyPaid
	}

	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}

	if amount.GreaterThan(a.Balance) {
		return ErrOverpayment
	}

	return nil
}

// ApplyPayment returns the balance and status after applying amount.
// Callers must run ValidatePayment first.
func (a *CreditAccount) ApplyPayment(amount decimal.Decimal) (decimal.Decimal, CreditStatus) {
	newBalance := RoundMoney(a.Balance.Sub(amount))

	status := CreditPending
	if newBalance.LessThanOrEqual(decimal.Zero) {
		status = CreditPaid
	}

	return newBalance, status
}

// IsOverdue reports whether the account is pending past its due date.
func (a *CreditAccount) IsOverdue(asOf time.Time) bool {
	return a.Status == CreditPending && a.DueDate != nil && a.DueDate.Before(asOf)
}

// CreditPayment is an append-only record of money applied to a credit account.
// Sum of payments plus current balance always equals the original amount.
type CreditPayment struct {
	ID              string
	CreditAccountID string
	Amount          decimal.Decimal
	PaymentMethod   string
	Reference       string
	Notes           string
	UserID          string
	PaymentDate     time.Time
}
