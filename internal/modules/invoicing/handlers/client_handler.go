package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/services"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ListClients godoc
// @Summary List clients
// @Description Returns all clients, optionally filtered by name, contact or email
// @Tags Clients
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} models.Client
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.clientService.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clients)
}

// GetClient godoc
// @Summary Get client by ID
// @Description Returns a single client by ID
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]interface{}
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.clientService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// AddClient godoc
// @Summary Add client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body models.ClientInput true "Client"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Router /clients [post]
func (h *ClientHandler) AddClient(c *fiber.Ctx) error {
	var req models.ClientInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	client, err := h.clientService.Add(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// UpdateClient godoc
// @Summary Update client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body models.ClientInput true "Client"
// @Success 200 {object} models.Client
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	var req models.ClientInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	client, err := h.clientService.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// DeleteClient godoc
// @Summary Delete client
// @Tags Clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.clientService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
