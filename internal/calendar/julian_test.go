package calendar

import (
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		day, month, year int
		want             int
	}{
		{1, 1, 1757, 408625},
		{1, 9, 2017, 503831},
		{15, 10, 1582, 345004},
	}

	for _, tt := range tests {
		if got := JulianDay(tt.day, tt.month, tt.year); got != tt.want {
			t.Errorf("JulianDay(%d, %d, %d) = %d, want %d", tt.day, tt.month, tt.year, got, tt.want)
		}
	}
}

// TestJulianDay_Consecutive checks that consecutive Gregorian dates map to
// consecutive day numbers across month, leap-day and year boundaries.
func TestJulianDay_Consecutive(t *testing.T) {
	d := time.Date(1756, time.January, 1, 0, 0, 0, 0, time.UTC)
	prev := JulianDay(d.Day(), int(d.Month()), d.Year())

	for d.Year() < 2078 {
		d = d.AddDate(0, 0, 1)
		got := JulianDay(d.Day(), int(d.Month()), d.Year())
		if got != prev+1 {
			t.Fatalf("JulianDay(%s) = %d, want %d", d.Format(DateLayout), got, prev+1)
		}
		prev = got
	}
}
