package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func saleOrigin(id string) *string { return &id }

func TestCreditAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		account CreditAccount
		wantErr error
	}{
		{
			name:    "valid sale origin",
			account: CreditAccount{Amount: decimal.NewFromFloat(300), SaleID: saleOrigin("sale-1")},
		},
		{
			name:    "valid order origin",
			account: CreditAccount{Amount: decimal.NewFromFloat(300), OrderID: saleOrigin("order-1")},
		},
		{
			name:    "no origin",
			account: CreditAccount{Amount: decimal.NewFromFloat(300)},
			wantErr: ErrOriginRequired,
		},
		{
			name: "both origins",
			account: CreditAccount{
				Amount: decimal.NewFromFloat(300),
				SaleID: saleOrigin("sale-1"), OrderID: saleOrigin("order-1"),
			},
			wantErr: ErrOriginRequired,
		},
		{
			name:    "zero amount",
			account: CreditAccount{Amount: decimal.Zero, SaleID: saleOrigin("sale-1")},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreditAccountValidatePayment(t *testing.T) {
	account := CreditAccount{
		Amount:  decimal.NewFromFloat(300.00),
		Balance: decimal.NewFromFloat(300.00),
		Status:  CreditPending,
	}

	// A cent over the balance is rejected and leaves the account untouched.
	if err := account.ValidatePayment(decimal.NewFromFloat(300.01)); err != ErrOverpayment {
		t.Fatalf("expected ErrOverpayment, got %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromFloat(300.00)) {
		t.Fatalf("balance must be unchanged after rejection, got %s", account.Balance)
	}

	// Exact balance payment is allowed.
	if err := account.ValidatePayment(decimal.NewFromFloat(300.00)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := account.ValidatePayment(decimal.Zero); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	paid := CreditAccount{Status: CreditPaid, Balance: decimal.Zero}
	if err := paid.ValidatePayment(decimal.NewFromFloat(1)); err != ErrCreditAlreadyPaid {
		t.Fatalf("expected ErrCreditAlreadyPaid, got %v", err)
	}
}

func TestCreditAccountApplyPayment(t *testing.T) {
	account := CreditAccount{
		Amount:  decimal.NewFromFloat(300.00),
		Balance: decimal.NewFromFloat(300.00),
		Status:  CreditPending,
	}

	balance, status := account.ApplyPayment(decimal.NewFromFloat(100.00))
	if !balance.Equal(decimal.NewFromFloat(200.00)) {
		t.Errorf("expected balance 200.00, got %s", balance)
	}
	if status != CreditPending {
		t.Errorf("expected pending, got %s", status)
	}

	account.Balance = balance

	balance, status = account.ApplyPayment(decimal.NewFromFloat(200.00))
	if !balance.Equal(decimal.Zero) {
		t.Errorf("expected balance 0.00, got %s", balance)
	}
	if status != CreditPaid {
		t.Errorf("expected paid, got %s", status)
	}
}

func TestCreditAccountIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		account CreditAccount
		want    bool
	}{
		{"pending past due", CreditAccount{Status: CreditPending, DueDate: &past}, true},
		{"pending not due yet", CreditAccount{Status: CreditPending, DueDate: &future}, false},
		{"pending without due date", CreditAccount{Status: CreditPending}, false},
		{"paid past due", CreditAccount{Status: CreditPaid, DueDate: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.account.IsOverdue(now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
