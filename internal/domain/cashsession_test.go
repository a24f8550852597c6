package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCashMovementValidate(t *testing.T) {
	tests := []struct {
		name     string
		movement CashMovement
		wantErr  error
	}{
		{
			name:     "valid income",
			movement: CashMovement{Type: MovementIncome, Amount: decimal.NewFromFloat(50.00)},
		},
		{
			name:     "valid expense",
			movement: CashMovement{Type: MovementExpense, Amount: decimal.NewFromFloat(20.00)},
		},
		{
			name:     "zero amount",
			movement: CashMovement{Type: MovementIncome, Amount: decimal.Zero},
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "negative amount",
			movement: CashMovement{Type: MovementExpense, Amount: decimal.NewFromFloat(-5)},
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "unknown type",
			movement: CashMovement{Type: "transfer", Amount: decimal.NewFromFloat(5)},
			wantErr:  ErrInvalidMovement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.movement.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCashMovementSigned(t *testing.T) {
	income := CashMovement{Type: MovementIncome, Amount: decimal.NewFromFloat(50)}
	if !income.Signed().Equal(decimal.NewFromFloat(50)) {
		t.Errorf("income should contribute +50, got %s", income.Signed())
	}

	expense := CashMovement{Type: MovementExpense, Amount: decimal.NewFromFloat(20)}
	if !expense.Signed().Equal(decimal.NewFromFloat(-20)) {
		t.Errorf("expense should contribute -20, got %s", expense.Signed())
	}
}

func TestBuildSessionSummary(t *testing.T) {
	// Opening 100.00, sales 75.00, income 50.00, expense 20.00 -> 205.00
	movements := []*CashMovement{
		{Type: MovementIncome, Amount: decimal.NewFromFloat(50.00)},
		{Type: MovementExpense, Amount: decimal.NewFromFloat(20.00)},
	}

	summary := BuildSessionSummary(decimal.NewFromFloat(100.00), decimal.NewFromFloat(75.00), movements)

	if !summary.IncomesTotal.Equal(decimal.NewFromFloat(50.00)) {
		t.Errorf("incomes: expected 50.00, got %s", summary.IncomesTotal)
	}
	if !summary.ExpensesTotal.Equal(decimal.NewFromFloat(20.00)) {
		t.Errorf("expenses: expected 20.00, got %s", summary.ExpensesTotal)
	}
	if !summary.CurrentBalance.Equal(decimal.NewFromFloat(205.00)) {
		t.Errorf("balance: expected 205.00, got %s", summary.CurrentBalance)
	}
}

func TestExpectedClose(t *testing.T) {
	expected := ExpectedClose(
		decimal.NewFromFloat(100.00),
		decimal.NewFromFloat(75.00),
		decimal.NewFromFloat(50.00),
		decimal.NewFromFloat(20.00),
	)

	if !expected.Equal(decimal.NewFromFloat(205.00)) {
		t.Errorf("expected 205.00, got %s", expected)
	}
}

func TestExpectedCloseRounding(t *testing.T) {
	// Fractional cents must round to 2 decimal places.
	expected := ExpectedClose(
		decimal.NewFromFloat(10.005),
		decimal.Zero,
		decimal.Zero,
		decimal.Zero,
	)

	if expected.Exponent() < -2 {
		t.Errorf("expected at most 2 fraction digits, got %s", expected)
	}
}

func TestAppendNotes(t *testing.T) {
	s := CashSession{Notes: "opened with float"}

	s.AppendNotes("counted twice at close")
	if s.Notes != "opened with float\ncounted twice at close" {
		t.Errorf("unexpected notes: %q", s.Notes)
	}

	s = CashSession{}
	s.AppendNotes("  ")
	if s.Notes != "" {
		t.Errorf("blank notes should be ignored, got %q", s.Notes)
	}

	s = CashSession{}
	s.AppendNotes("first")
	if s.Notes != "first" {
		t.Errorf("expected %q, got %q", "first", s.Notes)
	}
}
