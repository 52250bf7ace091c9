package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
)

// RateLimit counts requests per client IP and path in Redis within a
// fixed window. It fails open: a Redis error never blocks the request.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", c.IP(), c.Path())
		ctx := c.UserContext()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limit counter error: %v", err)
			return c.Next()
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}
		if count > int64(limit) {
			return envelope.Error(c, &apperrors.Error{
				Kind:    apperrors.KindRateLimited,
				Message: "Too many attempts. Please try again later.",
				Fields:  map[string]string{"error": "Too many attempts. Please try again later."},
			})
		}
		return c.Next()
	}
}
