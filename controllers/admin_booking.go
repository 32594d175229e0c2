package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/visitdesk/booking-engine/db"
	"github.com/visitdesk/booking-engine/models"
	"github.com/visitdesk/booking-engine/utils"
)

// ListBookings returns appointments for administrators, optionally filtered
// by date and status.
func ListBookings(c *fiber.Ctx) error {
	query := db.DB.Order("appointment_date asc, start_time asc")

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid date, expected YYYY-MM-DD",
				Error:   err.Error(),
			})
		}
		query = query.Where("appointment_date = ?", date.Format("2006-01-02"))
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AppointmentStatus(raw)
		if !models.ValidStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Unknown status filter",
			})
		}
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetBooking returns one appointment by ID.
func GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// UpdateBookingStatus moves an appointment through the state machine.
// Cancellation frees the slot for its date since cancelled rows are
// excluded from the uniqueness constraint and the resolver's taken set.
func UpdateBookingStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the row so two administrators cannot race the state machine.
		if err := tx.Raw(`
			SELECT *
			FROM appointments
			WHERE id = ? FOR UPDATE
		`, id).Scan(&appointment).Error; err != nil {
			return err
		}
		if appointment.ID == 0 {
			return gorm.ErrRecordNotFound
		}
		return appointment.UpdateStatus(tx, body.Status)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Booking not found",
			})
		}
		if errors.Is(err, models.ErrInvalidTransition) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Invalid status transition",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update booking status",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointment)
}

// GetBookingStats returns status counts for the admin dashboard, over an
// optional date range (defaults to the next 30 days).
func GetBookingStats(c *fiber.Ctx) error {
	now := time.Now()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, 30).Format("2006-01-02")

	if raw := c.Query("from"); raw != "" {
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid from date, expected YYYY-MM-DD",
			})
		}
		from = raw
	}
	if raw := c.Query("to"); raw != "" {
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid to date, expected YYYY-MM-DD",
			})
		}
		to = raw
	}

	var stats struct {
		Total          int64     `json:"total"`
		PendingCount   int64     `json:"pending_count"`
		ConfirmedCount int64     `json:"confirmed_count"`
		CompletedCount int64     `json:"completed_count"`
		CancelledCount int64     `json:"cancelled_count"`
		LastUpdated    time.Time `json:"last_updated"`
	}

	base := db.DB.Model(&models.Appointment{}).
		Where("appointment_date BETWEEN ? AND ?", from, to)

	counts := []struct {
		status models.AppointmentStatus
		dest   *int64
	}{
		{models.StatusPending, &stats.PendingCount},
		{models.StatusConfirmed, &stats.ConfirmedCount},
		{models.StatusCompleted, &stats.CompletedCount},
		{models.StatusCancelled, &stats.CancelledCount},
	}
	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute booking stats",
			Error:   err.Error(),
		})
	}
	for _, count := range counts {
		err := base.Session(&gorm.Session{}).Where("status = ?", count.status).Count(count.dest).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to compute booking stats",
				Error:   err.Error(),
			})
		}
	}
	stats.LastUpdated = now

	return c.JSON(stats)
}
