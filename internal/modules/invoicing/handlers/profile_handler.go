package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile godoc
// @Summary Get business profile
// @Tags Profile
// @Produce json
// @Success 200 {object} models.Profile
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	p, err := h.profileService.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// UpdateProfile godoc
// @Summary Update business profile
// @Description Replaces the profile used to prefill new invoices
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body models.Profile true "Profile"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]interface{}
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.Profile
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	p, err := h.profileService.Update(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}
