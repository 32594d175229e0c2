package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/visitdesk/booking-engine/controllers"
	"github.com/visitdesk/booking-engine/middleware"
)

// SetupAvailabilityRoutes configures the admin weekly-availability routes
func SetupAvailabilityRoutes(app *fiber.App) {
	availability := app.Group("/admin/availability", middleware.Protected(), middleware.RequireAdmin())
	availability.Get("/", controllers.ListAvailabilityBlocks)
	availability.Put("/:dayOfWeek", controllers.ReplaceDayAvailability)
	availability.Delete("/:id", controllers.DeleteAvailabilityBlock)
}
