package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePositiveAmount(t *testing.T) {
	if err := ValidatePositiveAmount(decimal.NewFromFloat(0.01)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidatePositiveAmount(decimal.Zero); err != ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidatePositiveAmount(decimal.NewFromFloat(-1)); err != ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount for negative, got %v", err)
	}

	huge, _ := decimal.NewFromString("10000000.01")
	if err := ValidatePositiveAmount(huge); err != ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount above bound, got %v", err)
	}
}

func TestValidateNonNegativeAmount(t *testing.T) {
	if err := ValidateNonNegativeAmount(decimal.Zero); err != nil {
		t.Errorf("zero opening amount should be allowed, got %v", err)
	}

	if err := ValidateNonNegativeAmount(decimal.NewFromFloat(-0.01)); err != ErrNegativeAmount {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults (50, 0), got (%d, %d)", limit, offset)
	}

	limit, _ = ValidatePagination(10000, 0)
	if limit != 500 {
		t.Errorf("expected clamp to 500, got %d", limit)
	}

	limit, offset = ValidatePagination(25, 100)
	if limit != 25 || offset != 100 {
		t.Errorf("expected passthrough (25, 100), got (%d, %d)", limit, offset)
	}
}
