package utils

import (
	"os"
	"strconv"
)

// EnvInt reads an integer environment variable, falling back when unset or
// unparseable.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// EnvBool reads a boolean environment variable, falling back when unset.
func EnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// SlotDuration is the organization-wide bookable slot length in minutes.
func SlotDuration() int {
	return EnvInt("SLOT_DURATION_MINUTES", 30)
}

// AutoConfirmBookings decides whether a new booking starts out confirmed
// instead of pending.
func AutoConfirmBookings() bool {
	return EnvBool("BOOKING_AUTO_CONFIRM", false)
}

// OperatorEmail is the address notified of new bookings, if configured.
func OperatorEmail() string {
	return os.Getenv("OPERATOR_EMAIL")
}
