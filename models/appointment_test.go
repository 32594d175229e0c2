package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false", s)
		}
	}
	for _, s := range []AppointmentStatus{"", "canceled", "done", "PENDING"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestDayOfWeekValid(t *testing.T) {
	for d := Sunday; d <= Saturday; d++ {
		if !d.Valid() {
			t.Errorf("DayOfWeek(%d).Valid() = false", d)
		}
	}
	for _, d := range []DayOfWeek{-1, 7, 100} {
		if d.Valid() {
			t.Errorf("DayOfWeek(%d).Valid() = true", d)
		}
	}
}
