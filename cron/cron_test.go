package cron

import (
	"testing"
	"time"
)

func TestReminderDue(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	at := func(y int, m time.Month, d, h, min int) time.Time {
		return time.Date(y, m, d, h, min, 0, 0, time.UTC)
	}

	cases := []struct {
		name  string
		date  time.Time
		start int // minutes since midnight
		now   time.Time
		want  bool
	}{
		{"exactly one hour ahead", day(2026, 3, 2), 10 * 60, at(2026, 3, 2, 9, 0), true},
		{"window lower edge", day(2026, 3, 2), 10 * 60, at(2026, 3, 2, 9, 5), true},
		{"window upper edge", day(2026, 3, 2), 10 * 60, at(2026, 3, 2, 8, 55), true},
		{"too soon", day(2026, 3, 2), 10 * 60, at(2026, 3, 2, 9, 30), false},
		{"too far out", day(2026, 3, 2), 10 * 60, at(2026, 3, 2, 8, 30), false},
		{"already started", day(2026, 3, 2), 10 * 60, at(2026, 3, 2, 10, 30), false},
		// An appointment shortly after midnight is due late the previous
		// evening, even though it sits on tomorrow's date.
		{"crosses midnight", day(2026, 3, 3), 25, at(2026, 3, 2, 23, 25), true},
		{"crosses midnight, too early", day(2026, 3, 3), 25, at(2026, 3, 2, 22, 0), false},
		{"yesterday's appointment", day(2026, 3, 1), 10 * 60, at(2026, 3, 2, 9, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reminderDue(tc.date, tc.start, tc.now); got != tc.want {
				t.Fatalf("reminderDue(%s, %d, %s) = %v, want %v",
					tc.date.Format("2006-01-02"), tc.start,
					tc.now.Format("2006-01-02 15:04"), got, tc.want)
			}
		})
	}
}
