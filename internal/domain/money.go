package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fraction digits carried by every money value.
const MoneyScale = 2

// MaxAmount bounds any single money value accepted by the core.
const MaxAmount = "10000000" // 10 million

// RoundMoney normalizes a money value to MoneyScale fraction digits.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// ValidatePositiveAmount checks that amount is strictly positive and within bounds.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return validateUpperBound(amount)
}

// ValidateNonNegativeAmount checks that amount is zero or positive and within bounds.
// Opening amounts may legitimately be zero.
func ValidateNonNegativeAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	return validateUpperBound(amount)
}

func validateUpperBound(amount decimal.Decimal) error {
	max, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(max) {
		return ErrInvalidAmount
	}

	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 500
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
