package domain

import (
	"time"
)

// CollectionPriority classifies how urgently a client's pending vouchers
// should be collected, by the age of the oldest unpaid voucher.
type CollectionPriority string

const (
	PriorityHigh   CollectionPriority = "high"   // oldest pending older than 30 days
	PriorityMedium CollectionPriority = "medium" // oldest pending older than 15 days
	PriorityLow    CollectionPriority = "low"
)

const (
	highPriorityAge   = 30 * 24 * time.Hour
	mediumPriorityAge = 15 * 24 * time.Hour
)

// PriorityFor classifies by the age of the oldest pending voucher relative
// to now. Now is passed explicitly so reports stay deterministic.
func PriorityFor(oldestPendingAt, now time.Time) CollectionPriority {
	age := now.Sub(oldestPendingAt)

	switch {
	case age > highPriorityAge:
		return PriorityHigh
	case age > mediumPriorityAge:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// IsEndOfMonth reports whether 5 or fewer calendar days remain in now's
// month. Used only for UI emphasis on collection screens, never to block an
// operation.
func IsEndOfMonth(now time.Time) bool {
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	lastDay := firstOfNext.AddDate(0, 0, -1).Day()

	return lastDay-now.Day() <= 5
}
