package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ErrInvalidTransition is returned when a status change is not permitted
// by the appointment state machine.
var ErrInvalidTransition = errors.New("invalid status transition")

// ValidStatus reports whether s is one of the four appointment statuses.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is one visitor's reservation of a generated slot on a
// specific calendar date. Rows are never physically deleted; cancellation
// is a status change, which frees the slot and preserves history.
type Appointment struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	Reference       string            `json:"reference" gorm:"uniqueIndex;size:36"`
	AppointmentDate time.Time         `json:"appointment_date" gorm:"type:date;index"`
	StartTime       string            `json:"start_time"` // Format "HH:MM" in 24h
	EndTime         string            `json:"end_time"`   // Format "HH:MM" in 24h
	VisitorName     string            `json:"visitor_name"`
	VisitorEmail    string            `json:"visitor_email"`
	VisitorPhone    string            `json:"visitor_phone"`
	Message         string            `json:"message"`
	Status          AppointmentStatus `json:"status"`
	ReminderSent    bool              `json:"reminder_sent"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.Reference == "" {
		a.Reference = uuid.NewString()
	}
	return nil
}

// CanTransition reports whether the state machine permits moving an
// appointment between two statuses. pending -> confirmed -> completed,
// with cancellation allowed from pending and confirmed. completed and
// cancelled are terminal.
func CanTransition(from, to AppointmentStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// UpdateStatus applies an administrator-initiated status change inside the
// given transaction, rejecting anything the state machine does not allow.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if !ValidStatus(newStatus) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}
	if !CanTransition(a.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, newStatus)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
