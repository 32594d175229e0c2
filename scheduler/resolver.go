package scheduler

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/visitdesk/booking-engine/models"
)

// GeneratedSlot is the ephemeral unit offered to visitors. It is computed
// on demand and never persisted.
type GeneratedSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// DaySchedule is the resolved slot list for one date plus the summary used
// for calendar-level "fully booked / limited / available" display.
type DaySchedule struct {
	Date           string          `json:"date"`
	DayOfWeek      string          `json:"day_of_week"`
	Slots          []GeneratedSlot `json:"slots"`
	Total          int             `json:"total"`
	AvailableCount int             `json:"available_count"`
}

// ResolveSlots reconciles the declared blocks against the date's existing
// bookings. A slot is unavailable iff its start time exactly matches a
// non-cancelled booking's start time; cancelled bookings free their slot.
// Blocks that fail to parse or are disabled contribute nothing. The result
// is ordered by start time ascending.
//
// Pure: all I/O happens in ResolveForDate.
func ResolveSlots(blocks []models.AvailabilityBlock, bookings []models.Appointment, duration int) (DaySchedule, error) {
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.Status != models.StatusCancelled {
			taken[b.StartTime] = true
		}
	}

	var generated []Slot
	for _, block := range blocks {
		if !block.IsAvailable {
			continue
		}
		start, err := ParseClock(block.StartTime)
		if err != nil {
			return DaySchedule{}, err
		}
		end, err := ParseClock(block.EndTime)
		if err != nil {
			return DaySchedule{}, err
		}
		generated = append(generated, GenerateSlots(start, end, duration)...)
	}

	sort.Slice(generated, func(i, j int) bool {
		return generated[i].Start < generated[j].Start
	})

	schedule := DaySchedule{Slots: []GeneratedSlot{}}
	for _, s := range generated {
		slot := GeneratedSlot{
			StartTime: FormatClock(s.Start),
			EndTime:   FormatClock(s.End),
			Available: !taken[FormatClock(s.Start)],
		}
		if slot.Available {
			schedule.AvailableCount++
		}
		schedule.Slots = append(schedule.Slots, slot)
	}
	schedule.Total = len(schedule.Slots)
	return schedule, nil
}

// ResolveForDate loads the date's applicable weekly blocks and existing
// bookings and resolves the bookable slot set. A date with no available
// blocks yields an empty list, not an error; past dates are permitted here,
// any cut-off is caller policy.
func ResolveForDate(tx *gorm.DB, date time.Time, duration int) (DaySchedule, error) {
	dayOfWeek := models.DayOfWeek(date.Weekday())

	var blocks []models.AvailabilityBlock
	if err := tx.Where("day_of_week = ? AND is_available = ?", dayOfWeek, true).
		Order("start_time asc").
		Find(&blocks).Error; err != nil {
		return DaySchedule{}, err
	}

	var bookings []models.Appointment
	if err := tx.Where("appointment_date = ? AND status <> ?", date.Format("2006-01-02"), models.StatusCancelled).
		Find(&bookings).Error; err != nil {
		return DaySchedule{}, err
	}

	schedule, err := ResolveSlots(blocks, bookings, duration)
	if err != nil {
		return DaySchedule{}, err
	}
	schedule.Date = date.Format("2006-01-02")
	schedule.DayOfWeek = dayOfWeek.String()
	return schedule, nil
}
