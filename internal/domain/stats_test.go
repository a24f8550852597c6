package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriorityFor(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		oldest time.Time
		want   CollectionPriority
	}{
		{"same day", now, PriorityLow},
		{"15 days exactly", now.AddDate(0, 0, -15), PriorityLow},
		{"16 days", now.AddDate(0, 0, -16), PriorityMedium},
		{"30 days exactly", now.AddDate(0, 0, -30), PriorityMedium},
		{"31 days", now.AddDate(0, 0, -31), PriorityHigh},
		{"90 days", now.AddDate(0, 0, -90), PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriorityFor(tt.oldest, now))
		})
	}
}

func TestIsEndOfMonth(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"mid month", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"june 25th (5 days left)", time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC), true},
		{"june 24th (6 days left)", time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC), false},
		{"last day of month", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), true},
		{"february leap year 24th", time.Date(2024, 2, 24, 0, 0, 0, 0, time.UTC), true},
		{"february leap year 23rd", time.Date(2024, 2, 23, 0, 0, 0, 0, time.UTC), false},
		{"december 26th", time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEndOfMonth(tt.now))
		})
	}
}
