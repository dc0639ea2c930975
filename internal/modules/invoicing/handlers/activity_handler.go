package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/audit"
)

type ActivityHandler struct {
	auditService *audit.Service
}

// NewActivityHandler returns a handler for the activity log. auditService may be
// nil when the store has no SQL backend.
func NewActivityHandler(auditService *audit.Service) *ActivityHandler {
	return &ActivityHandler{auditService: auditService}
}

// ListActivity godoc
// @Summary Activity log
// @Description Recent invoice, client and profile changes, newest first. Only available with the SQL store.
// @Tags Activity
// @Produce json
// @Param entity query string false "invoice, client or profile"
// @Param entityId query string false "Entity ID"
// @Param action query string false "created, updated, deleted, paid or overdue"
// @Param since query string false "YYYY-MM-DD"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Success 200 {object} audit.Page
// @Failure 501 {object} map[string]interface{}
// @Router /activity [get]
func (h *ActivityHandler) ListActivity(c *fiber.Ctx) error {
	if h.auditService == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "activity log requires STORE_DRIVER=sql",
		})
	}

	filter := audit.Filter{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entityId"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 50),
	}
	if raw := c.Query("since"); raw != "" {
		since, ok := analytics.ParseDate(raw, time.UTC)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "since must be YYYY-MM-DD", "field": "since"})
		}
		filter.Since = &since
	}

	page, err := h.auditService.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}
