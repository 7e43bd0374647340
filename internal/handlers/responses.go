package handlers

import (
	"errors"

	"productapi/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Response messages shared by the product endpoints.
const (
	MsgProductNotFound = "Product not found"
	MsgProductRemoved  = "Product has been removed"
	MsgInternalError   = "Internal server error"
)

func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"data": data,
	})
}

func respondNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": MsgProductNotFound,
	})
}

// respondError maps err to a response: not-found errors become 404, anything
// else is logged and answered with an opaque 500.
func respondError(c *fiber.Ctx, action string, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return respondNotFound(c)
	}
	log.Errorf("Error %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": MsgInternalError,
	})
}

// ErrorHandler is the app-wide Fiber error handler. Errors that escape a
// handler, panics recovered by middleware and unmatched routes all end up
// here, so every request gets a JSON answer.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}
	log.Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": MsgInternalError,
	})
}
