package middleware

import (
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// HandleInputErrors stops the request with 400 {errors: [...]} when any
// validation check failed earlier in the chain.
func HandleInputErrors(c *fiber.Ctx) error {
	if errs := validation.Errors(c); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}
	return c.Next()
}
