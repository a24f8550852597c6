package domain

import (
	"errors"
	"fmt"
)

// Taxonomy bases. Every sentinel below wraps exactly one of these, so the
// transport layer maps an error to a status code with a single errors.Is
// check against the base.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

var (
	// Cash session errors
	ErrSessionAlreadyOpen = fmt.Errorf("%w: a cash session is already open", ErrConflict)
	ErrNoOpenSession      = fmt.Errorf("%w: no open cash session", ErrNotFound)
	ErrSessionNotFound    = fmt.Errorf("%w: cash session not found", ErrNotFound)
	ErrSessionNotClosable = fmt.Errorf("%w: no open cash session to close", ErrConflict)
	ErrInvalidMovement    = fmt.Errorf("%w: movement type must be income or expense", ErrValidation)

	// Credit account errors
	ErrCreditNotFound    = fmt.Errorf("%w: credit account not found", ErrNotFound)
	ErrCreditAlreadyPaid = fmt.Errorf("%w: credit account is already paid", ErrConflict)
	ErrCreditExists      = fmt.Errorf("%w: origin already has a credit account", ErrConflict)
	ErrOverpayment       = fmt.Errorf("%w: payment exceeds remaining balance", ErrValidation)
	ErrClientNotEligible = fmt.Errorf("%w: client is not credit eligible", ErrValidation)
	ErrOriginRequired    = fmt.Errorf("%w: exactly one of sale or order must be set", ErrValidation)

	// Voucher errors
	ErrVoucherNotFound      = fmt.Errorf("%w: voucher not found", ErrNotFound)
	ErrTransitionNotAllowed = fmt.Errorf("%w: status transition not in the actor's allowed set", ErrValidation)
	ErrNotVoucherOwner      = fmt.Errorf("%w: actor does not own this voucher", ErrForbidden)
	ErrAdminOnly            = fmt.Errorf("%w: administrator role required", ErrForbidden)
	ErrNothingToPay         = fmt.Errorf("%w: nothing to pay", ErrValidation)
	ErrReasonRequired       = fmt.Errorf("%w: a reason is required for administrative overrides", ErrValidation)

	// Shared
	ErrInvalidAmount   = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrNegativeAmount  = fmt.Errorf("%w: amount must not be negative", ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrInvalidStatus   = fmt.Errorf("%w: unknown status", ErrValidation)

	// Token verification
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrForbidden)
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrForbidden)

	// External collaborator lookups
	ErrClientNotFound  = fmt.Errorf("%w: client not found", ErrNotFound)
	ErrSaleNotFound    = fmt.Errorf("%w: sale not found", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("%w: order not found", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("%w: product not found", ErrNotFound)
)
