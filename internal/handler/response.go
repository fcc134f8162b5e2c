package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localsRequestID = "request_id"

// requestID tags each request with the caller's X-Request-ID or a new UUID.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(localsRequestID, id)
		return c.Next()
	}
}

func requestIDOf(c *fiber.Ctx) string {
	id, _ := c.Locals(localsRequestID).(string)
	return id
}

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"request_id": requestIDOf(c),
		"data":       data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":     "error",
		"request_id": requestIDOf(c),
		"error":      message,
	})
}
