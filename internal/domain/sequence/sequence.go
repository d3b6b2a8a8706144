package sequence

import (
	"context"
	"fmt"
)

// Counter is one row per human-readable number prefix (LN-2025-,
// LR-2025-01-, ...). Replaces the old "select max(number) + 1" scan, which
// raced under concurrent writers.
type Counter struct {
	Prefix string `gorm:"primaryKey;size:20"`
	Value  uint64 `gorm:"not null;default:0"`
}

func (Counter) TableName() string { return "sequences" }

type Repository interface {
	// Next atomically increments and returns the counter for prefix,
	// creating it at 1 on first use. Must run inside the caller's
	// transaction so a failed mutation does not burn a number.
	Next(ctx context.Context, prefix string) (uint64, error)
}

// Format renders a counter value against its prefix, e.g. LN-2025-0042.
func Format(prefix string, n uint64) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

// LoanPrefix is the per-calendar-year loan number prefix.
func LoanPrefix(year int) string { return fmt.Sprintf("LN-%d-", year) }

// ReceiptPrefix is the per-year-month repayment receipt prefix.
func ReceiptPrefix(year int, month int) string {
	return fmt.Sprintf("LR-%d-%02d-", year, month)
}
