package subscriptions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextRenewalDate(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{
			name:  "mid-month stays on the same day",
			start: date(2024, time.June, 10),
			want:  date(2024, time.July, 10),
		},
		{
			name:  "january 31 clamps to february 29 in a leap year",
			start: date(2024, time.January, 31),
			want:  date(2024, time.February, 29),
		},
		{
			name:  "january 31 clamps to february 28 in a common year",
			start: date(2023, time.January, 31),
			want:  date(2023, time.February, 28),
		},
		{
			name:  "march 31 clamps to april 30",
			start: date(2024, time.March, 31),
			want:  date(2024, time.April, 30),
		},
		{
			name:  "february 29 lands on march 29, no clamp needed",
			start: date(2024, time.February, 29),
			want:  date(2024, time.March, 29),
		},
		{
			name:  "december rolls over into january of the next year",
			start: date(2024, time.December, 15),
			want:  date(2025, time.January, 15),
		},
		{
			name:  "december 31 rolls over to january 31",
			start: date(2024, time.December, 31),
			want:  date(2025, time.January, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRenewalDate(tt.start))
		})
	}
}

func TestNextRenewalDatePreservesClock(t *testing.T) {
	start := time.Date(2024, time.January, 31, 14, 30, 45, 123, time.UTC)
	got := NextRenewalDate(start)

	assert.Equal(t, time.Date(2024, time.February, 29, 14, 30, 45, 123, time.UTC), got)
}

func TestNextRenewalDateNeverWrapsIntoFollowingMonth(t *testing.T) {
	// A full year of month-end starts must always land in the very next month.
	for m := time.January; m <= time.December; m++ {
		start := date(2023, m, daysInMonth(2023, m))
		got := NextRenewalDate(start)

		expectedMonth := m + 1
		expectedYear := 2023
		if expectedMonth > time.December {
			expectedMonth = time.January
			expectedYear = 2024
		}
		assert.Equal(t, expectedMonth, got.Month(), "start month %s", m)
		assert.Equal(t, expectedYear, got.Year(), "start month %s", m)
	}
}
