package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	store "github.com/visitdesk/booking-engine/redis"
)

// BookingRateLimit throttles booking attempts per client IP using redis as
// the shared counter, keeping the limiter out of process-global state. The
// limiter fails open: redis being down must never block a booking.
func BookingRateLimit(limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store.Client == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:booking:%s", c.IP())
		count, err := store.Client.Incr(store.Ctx, key).Result()
		if err != nil {
			log.Printf("rate limiter unavailable, allowing request: %v", err)
			return c.Next()
		}
		if count == 1 {
			store.Client.Expire(store.Ctx, key, window)
		}

		if count > int64(limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many booking attempts. Please try again later.",
			})
		}
		return c.Next()
	}
}
