package domain

import (
	"fmt"
	"strings"
	"time"
)

// BudgetPeriod is the recurring window a budget limit applies to.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "WEEKLY"
	PeriodMonthly BudgetPeriod = "MONTHLY"
	PeriodYearly  BudgetPeriod = "YEARLY"
)

// Window is the concrete inclusive [Start,End] date range a budget period
// resolves to around a reference date. Both bounds are dates at UTC midnight.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor resolves a budget period to the calendar window containing ref.
// Weeks start on Monday. Unknown or empty periods fall back to the calendar
// month, so a budget with a bad period still gets evaluated instead of
// silently skipped.
func WindowFor(period BudgetPeriod, ref time.Time) Window {
	ref = truncateToDate(ref)

	switch period {
	case PeriodWeekly:
		offset := (int(ref.Weekday()) + 6) % 7 // Monday = 0
		start := ref.AddDate(0, 0, -offset)
		return Window{Start: start, End: start.AddDate(0, 0, 6)}
	case PeriodYearly:
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)}
	default:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: start.AddDate(0, 1, -1)}
	}
}

// Contains reports whether the given date falls inside the window (inclusive).
func (w Window) Contains(d time.Time) bool {
	d = truncateToDate(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ============================================================
// Date — a calendar date marshalled as "YYYY-MM-DD"
// ============================================================

// Date wraps time.Time for fields that carry a calendar date with no
// time-of-day component.
type Date struct {
	time.Time
}

// NewDate builds a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON parses "YYYY-MM-DD" (also accepts RFC3339 and truncates).
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	d.Time = truncateToDate(t)
	return nil
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}
