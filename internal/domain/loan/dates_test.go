package loan

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"mid-month stays on same day", date(2025, time.January, 15), 2, date(2025, time.March, 15)},
		{"year rollover", date(2025, time.December, 10), 2, date(2026, time.February, 10)},
		{"dec 31 clamps to feb 28", date(2024, time.December, 31), 2, date(2025, time.February, 28)},
		{"leap february keeps the 29th", date(2023, time.December, 31), 2, date(2024, time.February, 29)},
		{"jan 31 clamps to feb 28", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"mar 31 clamps to apr 30", date(2025, time.March, 31), 1, date(2025, time.April, 30)},
		{"zero months", date(2025, time.July, 4), 0, date(2025, time.July, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.start, tt.months)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%s, %d) = %s, want %s",
					tt.start.Format(time.DateOnly), tt.months,
					got.Format(time.DateOnly), tt.want.Format(time.DateOnly))
			}
		})
	}
}

func TestDueDateFrom(t *testing.T) {
	got := DueDateFrom(date(2025, time.January, 15), 2)
	if !got.Equal(date(2025, time.March, 15)) {
		t.Errorf("DueDateFrom = %s, want 2025-03-15", got.Format(time.DateOnly))
	}
}
