package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindowFor_Monthly(t *testing.T) {
	w := WindowFor(PeriodMonthly, date(2026, time.February, 14))
	if !w.Start.Equal(date(2026, time.February, 1)) {
		t.Errorf("start = %s, want 2026-02-01", w.Start)
	}
	if !w.End.Equal(date(2026, time.February, 28)) {
		t.Errorf("end = %s, want 2026-02-28", w.End)
	}
}

func TestWindowFor_MonthlyLeapYear(t *testing.T) {
	w := WindowFor(PeriodMonthly, date(2028, time.February, 10))
	if !w.End.Equal(date(2028, time.February, 29)) {
		t.Errorf("end = %s, want 2028-02-29", w.End)
	}
}

func TestWindowFor_WeeklyStartsMonday(t *testing.T) {
	// 2026-03-15 is a Sunday: last day of the week starting 2026-03-09.
	w := WindowFor(PeriodWeekly, date(2026, time.March, 15))
	if !w.Start.Equal(date(2026, time.March, 9)) {
		t.Errorf("start = %s, want 2026-03-09 (Monday)", w.Start)
	}
	if !w.End.Equal(date(2026, time.March, 15)) {
		t.Errorf("end = %s, want 2026-03-15 (Sunday)", w.End)
	}

	// A Monday is the start of its own week.
	w = WindowFor(PeriodWeekly, date(2026, time.March, 9))
	if !w.Start.Equal(date(2026, time.March, 9)) {
		t.Errorf("start = %s, want 2026-03-09", w.Start)
	}
}

func TestWindowFor_WeeklyCrossesMonthBoundary(t *testing.T) {
	// 2026-04-01 is a Wednesday: its week starts Monday 2026-03-30.
	w := WindowFor(PeriodWeekly, date(2026, time.April, 1))
	if !w.Start.Equal(date(2026, time.March, 30)) {
		t.Errorf("start = %s, want 2026-03-30", w.Start)
	}
	if !w.End.Equal(date(2026, time.April, 5)) {
		t.Errorf("end = %s, want 2026-04-05", w.End)
	}
}

func TestWindowFor_Yearly(t *testing.T) {
	w := WindowFor(PeriodYearly, date(2026, time.July, 4))
	if !w.Start.Equal(date(2026, time.January, 1)) {
		t.Errorf("start = %s, want 2026-01-01", w.Start)
	}
	if !w.End.Equal(date(2026, time.December, 31)) {
		t.Errorf("end = %s, want 2026-12-31", w.End)
	}
}

func TestWindowFor_UnknownPeriodFallsBackToMonth(t *testing.T) {
	w := WindowFor("FORTNIGHTLY", date(2026, time.May, 20))
	if !w.Start.Equal(date(2026, time.May, 1)) || !w.End.Equal(date(2026, time.May, 31)) {
		t.Errorf("window = [%s, %s], want calendar month of May", w.Start, w.End)
	}
}

func TestWindow_ContainsIsInclusive(t *testing.T) {
	w := WindowFor(PeriodMonthly, date(2026, time.March, 15))
	for _, d := range []time.Time{date(2026, time.March, 1), date(2026, time.March, 31)} {
		if !w.Contains(d) {
			t.Errorf("window should contain boundary %s", d)
		}
	}
	if w.Contains(date(2026, time.April, 1)) {
		t.Error("window should not contain the next month's first day")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2026-03-15"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.Time.Equal(date(2026, time.March, 15)) {
		t.Errorf("parsed %s, want 2026-03-15", d.Time)
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2026-03-15"` {
		t.Errorf("marshalled %s, want \"2026-03-15\"", out)
	}
}

func TestDate_AcceptsRFC3339(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2026-03-15T18:30:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.Time.Equal(date(2026, time.March, 15)) {
		t.Errorf("parsed %s, want truncated 2026-03-15", d.Time)
	}
}

func TestDate_RejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"15/03/2026"`), &d); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
