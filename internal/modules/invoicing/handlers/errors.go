package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/services"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

// respondError maps service errors to status codes
func respondError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Message,
			"field": ve.Field,
		})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		utils.LogError("Request failed", err, map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
