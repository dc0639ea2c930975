package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	storeName    string
	notifyDriver string
}

func NewHealthHandler(storeName, notifyDriver string) *HealthHandler {
	return &HealthHandler{storeName: storeName, notifyDriver: notifyDriver}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "invoicevista-api",
		"store":   h.storeName,
		"notify":  h.notifyDriver,
	})
}
