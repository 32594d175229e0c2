package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/visitdesk/booking-engine/db"
	"github.com/visitdesk/booking-engine/scheduler"
	"github.com/visitdesk/booking-engine/utils"
)

// GetAvailableSlots returns the bookable slot list for one date, reconciled
// against existing bookings. A day with no availability yields an empty
// list; whether past dates may be selected is left to the client.
func GetAvailableSlots(c *fiber.Ctx) error {
	raw := c.Query("date")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "date query parameter is required (YYYY-MM-DD)",
		})
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date, expected YYYY-MM-DD",
			Error:   err.Error(),
		})
	}

	schedule, err := scheduler.ResolveForDate(db.DB, date, utils.SlotDuration())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to resolve available slots",
			Error:   err.Error(),
		})
	}
	return c.JSON(schedule)
}
