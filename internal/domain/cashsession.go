package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// CashSession is the bounded interval during which a physical cash drawer is
// open and trackable. At most one session is open at any time; the store
// enforces that with a partial unique index.
type CashSession struct {
	ID             string
	OpeningAmount  decimal.Decimal
	OpenedBy       string
	OpenedAt       time.Time
	Status         SessionStatus
	ClosedBy       *string
	ClosedAt       *time.Time
	ExpectedAmount *decimal.Decimal
	ActualAmount   *decimal.Decimal
	Difference     *decimal.Decimal
	Notes          string
}

// AppendNotes adds closing notes without overwriting what was recorded at open.
func (s *CashSession) AppendNotes(notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return
	}

	if s.Notes == "" {
		s.Notes = notes
		return
	}

	s.Notes = s.Notes + "\n" + notes
}

type MovementType string

const (
	MovementIncome  MovementType = "income"
	MovementExpense MovementType = "expense"
)

// CashMovement is a manually recorded income or expense against an open
// session, distinct from sales revenue. Append-only: never mutated or
// deleted after creation.
type CashMovement struct {
	ID            string
	CashSessionID string
	Type          MovementType
	Amount        decimal.Decimal // always positive, sign implied by Type
	Concept       string
	Reference     string
	UserID        string
	CreatedAt     time.Time
}

// Validate checks movement type and amount.
func (m *CashMovement) Validate() error {
	if m.Type != MovementIncome && m.Type != MovementExpense {
		return ErrInvalidMovement
	}

	return ValidatePositiveAmount(m.Amount)
}

// Signed returns the movement's contribution to the session balance.
func (m *CashMovement) Signed() decimal.Decimal {
	if m.Type == MovementExpense {
		return m.Amount.Neg()
	}

	return m.Amount
}

// SessionSummary is the derived view of an open session's running balance.
type SessionSummary struct {
	OpeningAmount  decimal.Decimal
	SalesTotal     decimal.Decimal
	IncomesTotal   decimal.Decimal
	ExpensesTotal  decimal.Decimal
	CurrentBalance decimal.Decimal
}

// BuildSessionSummary derives the running balance of a session from its
// opening amount, the completed-sales total since open, and its movements.
func BuildSessionSummary(opening, salesTotal decimal.Decimal, movements []*CashMovement) SessionSummary {
	incomes := decimal.Zero
	expenses := decimal.Zero

	for _, m := range movements {
		switch m.Type {
		case MovementIncome:
			incomes = incomes.Add(m.Amount)
		case MovementExpense:
			expenses = expenses.Add(m.Amount)
		}
	}

	balance := opening.Add(salesTotal).Add(incomes).Sub(expenses)

	return SessionSummary{
		OpeningAmount:  RoundMoney(opening),
		SalesTotal:     RoundMoney(salesTotal),
		IncomesTotal:   RoundMoney(incomes),
		ExpensesTotal:  RoundMoney(expenses),
		CurrentBalance: RoundMoney(balance),
	}
}

// ExpectedClose computes the expected drawer amount at close time:
// opening + completed sales since open + incomes - expenses.
func ExpectedClose(opening, salesTotal, incomes, expenses decimal.Decimal) decimal.Decimal {
	return RoundMoney(opening.Add(salesTotal).Add(incomes).Sub(expenses))
}
