package controllers

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/visitdesk/booking-engine/scheduler"
)

func validRequest() BookingRequest {
	return BookingRequest{
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "09:30",
		Name:      "Jordan Reed",
		Email:     "jordan@example.com",
		Phone:     "+15550100",
		Message:   "First visit",
	}
}

func TestValidateBookingRequestAccepts(t *testing.T) {
	req := validRequest()
	date, err := validateBookingRequest(&req)
	if err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	want := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("parsed date %v, want %v", date, want)
	}
}

func TestValidateBookingRequestRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"missing name", func(r *BookingRequest) { r.Name = "  " }},
		{"missing email", func(r *BookingRequest) { r.Email = "" }},
		{"malformed email", func(r *BookingRequest) { r.Email = "not-an-email" }},
		{"missing phone", func(r *BookingRequest) { r.Phone = "" }},
		{"bad date", func(r *BookingRequest) { r.Date = "02/03/2026" }},
		{"bad start time", func(r *BookingRequest) { r.StartTime = "9am" }},
		{"bad end time", func(r *BookingRequest) { r.EndTime = "25:00" }},
		{"inverted range", func(r *BookingRequest) { r.StartTime, r.EndTime = "10:00", "09:30" }},
		{"empty range", func(r *BookingRequest) { r.EndTime = r.StartTime }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := validateBookingRequest(&req)
			if err == nil {
				t.Fatal("request accepted")
			}
			if !scheduler.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func openSchedule() scheduler.DaySchedule {
	return scheduler.DaySchedule{
		Slots: []scheduler.GeneratedSlot{
			{StartTime: "09:00", EndTime: "09:30", Available: true},
			{StartTime: "09:30", EndTime: "10:00", Available: true},
		},
		Total:          2,
		AvailableCount: 2,
	}
}

func TestReserveSlotConcurrentWriters(t *testing.T) {
	// Two writers race for 09:00. Both pass the re-resolve because each
	// reads before the other commits; the unique index then rejects the
	// second insert with a duplicate key.
	inserted := false
	insert := func() error {
		if inserted {
			return gorm.ErrDuplicatedKey
		}
		inserted = true
		return nil
	}
	resolve := func() (scheduler.DaySchedule, error) { return openSchedule(), nil }

	var successes, conflicts int
	for i := 0; i < 2; i++ {
		err := reserveSlot(resolve, insert, "09:00", "09:30")
		switch {
		case err == nil:
			successes++
		case errors.Is(err, scheduler.ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("writer %d: unexpected error %v", i, err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("got %d successes and %d conflicts, want exactly 1 and 1", successes, conflicts)
	}
}

func TestReserveSlotStaleClient(t *testing.T) {
	// The slot is already taken by the time the stale client submits; the
	// in-transaction re-resolve must refuse before any insert is attempted.
	schedule := openSchedule()
	schedule.Slots[0].Available = false
	schedule.AvailableCount = 1

	insertCalled := false
	err := reserveSlot(
		func() (scheduler.DaySchedule, error) { return schedule, nil },
		func() error { insertCalled = true; return nil },
		"09:00", "09:30")
	if !errors.Is(err, scheduler.ErrSlotTaken) {
		t.Fatalf("got %v, want ErrSlotTaken", err)
	}
	if insertCalled {
		t.Fatal("insert attempted for a slot the re-resolve already saw taken")
	}
}

func TestReserveSlotUnknownSlot(t *testing.T) {
	err := reserveSlot(
		func() (scheduler.DaySchedule, error) { return openSchedule(), nil },
		func() error { t.Fatal("insert attempted for a non-generated slot"); return nil },
		"11:00", "11:30")
	if err == nil || !scheduler.IsValidation(err) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestReserveSlotMismatchedEndTime(t *testing.T) {
	// Start matches a generated slot but the end does not: not a bookable slot.
	err := reserveSlot(
		func() (scheduler.DaySchedule, error) { return openSchedule(), nil },
		func() error { t.Fatal("insert attempted"); return nil },
		"09:00", "10:00")
	if err == nil || !scheduler.IsValidation(err) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestReserveSlotResolveFailure(t *testing.T) {
	storeDown := errors.New("connection refused")
	err := reserveSlot(
		func() (scheduler.DaySchedule, error) { return scheduler.DaySchedule{}, storeDown },
		func() error { t.Fatal("insert attempted after resolve failure"); return nil },
		"09:00", "09:30")
	if !errors.Is(err, storeDown) {
		t.Fatalf("got %v, want the resolve error", err)
	}
	if errors.Is(err, scheduler.ErrSlotTaken) || scheduler.IsValidation(err) {
		t.Fatalf("transient failure must not masquerade as conflict or validation: %v", err)
	}
}

func TestValidateBookingRequestOptionalMessage(t *testing.T) {
	req := validRequest()
	req.Message = ""
	if _, err := validateBookingRequest(&req); err != nil {
		t.Fatalf("empty message rejected: %v", err)
	}
}
