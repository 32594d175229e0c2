package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/visitdesk/booking-engine/controllers"
	"github.com/visitdesk/booking-engine/middleware"
	"github.com/visitdesk/booking-engine/utils"
)

// SetupBookingRoutes configures the visitor-facing slot and booking routes
// plus the admin booking management routes.
func SetupBookingRoutes(app *fiber.App) {
	// Public, unauthenticated
	app.Get("/slots", controllers.GetAvailableSlots)
	app.Post("/bookings",
		middleware.BookingRateLimit(utils.EnvInt("BOOKING_RATE_LIMIT", 10), time.Minute),
		controllers.CreateBooking)
	app.Get("/bookings/:reference", controllers.GetBookingByReference)

	// Admin
	admin := app.Group("/admin/bookings", middleware.Protected(), middleware.RequireAdmin())
	admin.Get("/", controllers.ListBookings)
	admin.Get("/stats", controllers.GetBookingStats)
	admin.Get("/:id", controllers.GetBooking)
	admin.Patch("/:id/status", controllers.UpdateBookingStatus)
}
