package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminKeyHeader carries the administrator API key on admin routes.
const AdminKeyHeader = "X-Admin-Key"

// AdminKey guards admin routes with a static API key. A missing server-side
// key is a deployment error and yields 500; a mismatched or absent client
// key yields 401. Errors are formatted by the global error handler.
func AdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "admin api key not configured")
		}
		provided := c.Get(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Next()
	}
}
