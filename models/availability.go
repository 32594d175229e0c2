package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Valid reports whether d is one of the seven weekday values.
func (d DayOfWeek) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d DayOfWeek) String() string {
	names := [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if !d.Valid() {
		return "Unknown"
	}
	return names[d]
}

// AvailabilityBlock is one recurring weekly window declared by an
// administrator. It is a standing template keyed by day of week, not a
// dated exception; disabled blocks are kept but excluded from slot
// generation.
type AvailabilityBlock struct {
	gorm.Model
	DayOfWeek   DayOfWeek `json:"day_of_week" gorm:"index"`
	StartTime   string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime     string    `json:"end_time"`   // Format "HH:MM" in 24h
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
}
