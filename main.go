package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/visitdesk/booking-engine/cron"
	"github.com/visitdesk/booking-engine/db"
	"github.com/visitdesk/booking-engine/redis"
	"github.com/visitdesk/booking-engine/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Booking engine up")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupAvailabilityRoutes(app)
	routes.SetupBookingRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
