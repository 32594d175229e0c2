package controllers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/visitdesk/booking-engine/db"
	"github.com/visitdesk/booking-engine/models"
	"github.com/visitdesk/booking-engine/scheduler"
	"github.com/visitdesk/booking-engine/utils"
)

// BookingRequest is a visitor's fully-typed booking submission. Every field
// is validated server-side; the client's slot list is never trusted.
type BookingRequest struct {
	Date      string `json:"date"` // "YYYY-MM-DD"
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

func validateBookingRequest(req *BookingRequest) (time.Time, error) {
	if strings.TrimSpace(req.Name) == "" {
		return time.Time{}, &scheduler.ValidationError{Reason: "name is required"}
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return time.Time{}, &scheduler.ValidationError{Reason: "a valid email is required"}
	}
	if strings.TrimSpace(req.Phone) == "" {
		return time.Time{}, &scheduler.ValidationError{Reason: "phone is required"}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, &scheduler.ValidationError{Reason: "date must be YYYY-MM-DD"}
	}
	start, err := scheduler.ParseClock(req.StartTime)
	if err != nil {
		return time.Time{}, &scheduler.ValidationError{Reason: "invalid start_time: " + err.Error()}
	}
	end, err := scheduler.ParseClock(req.EndTime)
	if err != nil {
		return time.Time{}, &scheduler.ValidationError{Reason: "invalid end_time: " + err.Error()}
	}
	if end <= start {
		return time.Time{}, &scheduler.ValidationError{Reason: "end_time must be after start_time"}
	}
	return date, nil
}

// reserveSlot is the write path's core: re-resolve the date inside the
// caller's transaction, refuse anything that is not a live available slot,
// then insert. The insert runs under the partial unique index on
// (appointment_date, start_time) for non-cancelled rows, so a concurrent
// writer that slips past the re-resolve fails there; a duplicate-key result
// is normalized to ErrSlotTaken so both loss modes surface identically.
func reserveSlot(resolve func() (scheduler.DaySchedule, error), insert func() error, startTime, endTime string) error {
	// Re-resolve against live data; the client's slot list may be stale.
	schedule, err := resolve()
	if err != nil {
		return err
	}

	var slot *scheduler.GeneratedSlot
	for i := range schedule.Slots {
		if schedule.Slots[i].StartTime == startTime && schedule.Slots[i].EndTime == endTime {
			slot = &schedule.Slots[i]
			break
		}
	}
	if slot == nil {
		return &scheduler.ValidationError{
			Reason: fmt.Sprintf("%s-%s is not a bookable slot", startTime, endTime),
		}
	}
	if !slot.Available {
		return scheduler.ErrSlotTaken
	}

	// The unique index, not the check above, is the source of truth for
	// concurrent writers.
	if err := insert(); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return scheduler.ErrSlotTaken
		}
		return err
	}
	return nil
}

// CreateBooking reserves one generated slot for a visitor. The slot list is
// re-resolved inside the write transaction, and the insert is guarded by the
// partial unique index on (appointment_date, start_time) for non-cancelled
// rows, so losing a race against a concurrent visitor surfaces as a distinct
// conflict instead of a duplicate booking. Notification emails are
// best-effort and never roll the booking back.
func CreateBooking(c *fiber.Ctx) error {
	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	date, err := validateBookingRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking request",
			Error:   err.Error(),
		})
	}

	status := models.StatusPending
	if utils.AutoConfirmBookings() {
		status = models.StatusConfirmed
	}

	appointment := models.Appointment{
		AppointmentDate: date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		VisitorName:     strings.TrimSpace(req.Name),
		VisitorEmail:    strings.TrimSpace(req.Email),
		VisitorPhone:    strings.TrimSpace(req.Phone),
		Message:         req.Message,
		Status:          status,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return reserveSlot(
			func() (scheduler.DaySchedule, error) {
				return scheduler.ResolveForDate(tx, date, utils.SlotDuration())
			},
			func() error {
				return tx.Create(&appointment).Error
			},
			req.StartTime, req.EndTime,
		)
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrSlotTaken) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "This slot is no longer available. Please pick a different time.",
			})
		}
		if scheduler.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid booking request",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	sendBookingNotifications(&appointment)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetBookingByReference lets a visitor look up their booking with the
// reference code from the confirmation email.
func GetBookingByReference(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := db.DB.Where("reference = ?", c.Params("reference")).First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// sendBookingNotifications emails the visitor and, when configured, the
// operator. Failures are logged and ignored; the booking is already
// committed.
func sendBookingNotifications(appointment *models.Appointment) {
	visitorBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment request has been received.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Status:</strong> %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>We will be in touch if anything changes.</p>
		<p>Best regards,</p>
		<p>The Visits Team</p>
	`, appointment.VisitorName,
		appointment.AppointmentDate.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime,
		appointment.Status, appointment.Reference)

	if err := utils.SendEmail(appointment.VisitorEmail, "Appointment Received", visitorBody); err != nil {
		log.Printf("Failed to send booking confirmation to %s: %v", appointment.VisitorEmail, err)
	}

	operator := utils.OperatorEmail()
	if operator == "" {
		return
	}
	operatorBody := fmt.Sprintf(`
		<p>A new appointment has been booked.</p>
		<ul>
			<li><strong>Visitor:</strong> %s (%s, %s)</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Message:</strong> %s</li>
		</ul>
	`, appointment.VisitorName, appointment.VisitorEmail, appointment.VisitorPhone,
		appointment.AppointmentDate.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime,
		appointment.Message)

	if err := utils.SendEmail(operator, "New Appointment Booked", operatorBody); err != nil {
		log.Printf("Failed to send operator notification: %v", err)
	}
}
