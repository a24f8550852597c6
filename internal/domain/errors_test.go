package domain_test

import (
	"errors"
	"testing"

	"github.com/hydrosur/fincore/internal/domain"
)

// Every sentinel must wrap exactly one taxonomy base so the transport layer
// can map it to a status code with a single errors.Is check.
func TestSentinelsWrapTaxonomyBases(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
		base     error
	}{
		{"session already open", domain.ErrSessionAlreadyOpen, domain.ErrConflict},
		{"no open session", domain.ErrNoOpenSession, domain.ErrNotFound},
		{"credit exists", domain.ErrCreditExists, domain.ErrConflict},
		{"overpayment", domain.ErrOverpayment, domain.ErrValidation},
		{"client not eligible", domain.ErrClientNotEligible, domain.ErrValidation},
		{"voucher not found", domain.ErrVoucherNotFound, domain.ErrNotFound},
		{"not voucher owner", domain.ErrNotVoucherOwner, domain.ErrForbidden},
		{"admin only", domain.ErrAdminOnly, domain.ErrForbidden},
		{"invalid token", domain.ErrInvalidToken, domain.ErrForbidden},
		{"expired token", domain.ErrExpiredToken, domain.ErrForbidden},
		{"client not found", domain.ErrClientNotFound, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.sentinel, tt.base) {
				t.Errorf("expected %v to wrap %v", tt.sentinel, tt.base)
			}
		})
	}
}

// The token sentinels carry distinct messages so login failures and expiry
// are distinguishable to the client while both map to forbidden.
func TestTokenSentinelsAreDistinct(t *testing.T) {
	if errors.Is(domain.ErrInvalidToken, domain.ErrExpiredToken) {
		t.Error("expected invalid-token and expired-token to be distinct sentinels")
	}
	if domain.ErrInvalidToken.Error() == domain.ErrExpiredToken.Error() {
		t.Error("expected distinct messages for the token sentinels")
	}
}
