package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VoucherStatus string

const (
	VoucherPending   VoucherStatus = "pending"
	VoucherDelivered VoucherStatus = "delivered"
	VoucherPaid      VoucherStatus = "paid"
)

// IsValid checks the status value.
func (s VoucherStatus) IsValid() bool {
	switch s {
	case VoucherPending, VoucherDelivered, VoucherPaid:
		return true
	}
	return false
}

// Voucher is a deferred per-delivery charge to a frequent client, settled
// later individually or in batch. Status only moves forward through the
// normal flow; administrative overrides go through ForceSetStatus and are
// audited.
type Voucher struct {
	ID               string
	ClientID         string
	DeliveryPersonID string
	ProductID        string
	Quantity         int
	UnitPrice        decimal.Decimal
	TotalAmount      decimal.Decimal
	Status           VoucherStatus
	DeliveredAt      *time.Time
	PaidAt           *time.Time
	PaymentMethod    string
	PaymentReference string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the creation invariants.
func (v *Voucher) Validate() error {
	if v.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	return ValidatePositiveAmount(v.UnitPrice)
}

// VoucherTotal computes the charge for a delivery. The total is always
// computed here, never trusted from caller input.
func VoucherTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// CanTransition reports whether actor may move the voucher to target through
// the normal forward-only flow. Delivery agents confirm their own deliveries,
// clients pay their own delivered vouchers, administrators may make any
// single forward step. Backward moves are never allowed here; those go
// through the audited ForceSetStatus path.
func (v *Voucher) CanTransition(actor Actor, target VoucherStatus) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}

	switch actor.Role {
	case RoleDelivery:
		if v.DeliveryPersonID != actor.ID {
			return ErrNotVoucherOwner
		}
		if v.Status == VoucherPending && target == VoucherDelivered {
			return nil
		}
		return ErrTransitionNotAllowed

	case RoleClient:
		if v.ClientID != actor.ID {
			return ErrNotVoucherOwner
		}
		if v.Status == VoucherDelivered && target == VoucherPaid {
			return nil
		}
		return ErrTransitionNotAllowed

	case RoleAdmin:
		if v.Status == VoucherPending && target == VoucherDelivered {
			return nil
		}
		if v.Status == VoucherDelivered && target == VoucherPaid {
			return nil
		}
		return ErrTransitionNotAllowed
	}

	return ErrTransitionNotAllowed
}

// SetStatus moves the voucher to target, stamping transition timestamps and
// recording payment details when the voucher becomes paid. Timestamps that no
// longer apply after a backward override are cleared.
func (v *Voucher) SetStatus(target VoucherStatus, now time.Time, paymentMethod, paymentReference string) {
	v.Status = target
	v.UpdatedAt = now

	switch target {
	case VoucherPending:
		v.DeliveredAt = nil
		v.PaidAt = nil
		v.PaymentMethod = ""
		v.PaymentReference = ""

	case VoucherDelivered:
		if v.DeliveredAt == nil {
			t := now
			v.DeliveredAt = &t
		}
		v.PaidAt = nil
		v.PaymentMethod = ""
		v.PaymentReference = ""

	case VoucherPaid:
		if v.DeliveredAt == nil {
			t := now
			v.DeliveredAt = &t
		}
		t := now
		v.PaidAt = &t
		v.PaymentMethod = paymentMethod
		v.PaymentReference = paymentReference
	}
}

// VoucherStats aggregates vouchers by status.
type VoucherStats struct {
	PendingCount   int
	PendingTotal   decimal.Decimal
	DeliveredCount int
	DeliveredTotal decimal.Decimal
	PaidCount      int
	PaidTotal      decimal.Decimal
}

// ClientPending is the per-client pending aggregate used by the stats engine.
type ClientPending struct {
	ClientID        string
	PendingCount    int
	PendingTotal    decimal.Decimal
	OldestPendingAt time.Time
}
