package calendar

import (
	"fmt"
	"time"
)

// Span converts every civil day from start to end inclusive at the given
// time of day.
func Span(start, end time.Time, hour, minute int) ([]*ThaiDate, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidDateTime, end.Format(DateLayout), start.Format(DateLayout))
	}

	var out []*ThaiDate
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		c := FromTime(d)
		c.Hour, c.Minute = hour, minute

		td, err := New(c)
		if err != nil {
			return nil, err
		}
		out = append(out, td)
	}
	return out, nil
}

// HolyDays returns the Buddhist observance days of a civil year, read at
// DefaultHour. Days the tables cannot convert are skipped, so a year that is
// only partly supported (1940 has no January to March) yields the days it has. A year
// with no convertible day at all returns the first error.
func HolyDays(year int) ([]*ThaiDate, error) {
	start := time.Date(year, time.January, 1, DefaultHour, 0, 0, 0, time.UTC)

	var (
		holy      []*ThaiDate
		converted int
		firstErr  error
	)
	for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
		td, err := New(FromTime(d))
		if err != nil {
			if !IsUnconvertible(err) {
				return nil, fmt.Errorf("holy days %d: %w", year, err)
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		converted++
		if td.IsHolyDay() {
			holy = append(holy, td)
		}
	}
	if converted == 0 {
		return nil, fmt.Errorf("holy days %d: %w", year, firstErr)
	}
	return holy, nil
}
