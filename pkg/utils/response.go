package utils

import "github.com/gofiber/fiber/v2"

// JSON writes a success body as-is: created or fetched records are
// returned without an envelope.
func JSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
