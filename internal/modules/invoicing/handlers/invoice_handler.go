package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/export"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/services"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	exportService  *services.ExportService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, exportService *services.ExportService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		exportService:  exportService,
	}
}

func filterFromQuery(c *fiber.Ctx) models.InvoiceFilter {
	return models.InvoiceFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
		Period: c.Query("period"),
	}
}

// ListInvoices godoc
// @Summary List invoices
// @Description Returns invoices in store order, optionally filtered
// @Tags Invoices
// @Produce json
// @Param q query string false "Substring of invoice id or client name"
// @Param status query string false "Paid, Pending or Overdue"
// @Param period query string false "today, this_week, this_month, last_month, this_year, last_30_days, last_90_days or YYYY-MM"
// @Success 200 {array} models.Invoice
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *fiber.Ctx) error {
	invoices, err := h.invoiceService.List(c.UserContext(), filterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// CreateInvoice godoc
// @Summary Create invoice
// @Description Creates an invoice. Line items are priced, tax applied and missing dates defaulted.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body models.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} models.Invoice
// @Failure 400 {object} map[string]interface{}
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var req models.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	inv, err := h.invoiceService.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetInvoice godoc
// @Summary Get invoice by ID
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} models.Invoice
// @Failure 404 {object} map[string]interface{}
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	inv, err := h.invoiceService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// MarkPaid godoc
// @Summary Mark invoice as paid
// @Description Sets the invoice status to Paid. An unknown id is not an error; changed is false.
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} models.MarkPaidResponse
// @Router /invoices/{id}/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	inv, changed, err := h.invoiceService.MarkPaid(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.MarkPaidResponse{Changed: changed, Invoice: inv})
}

// SweepOverdue godoc
// @Summary Run the overdue sweep
// @Description Moves pending invoices past their due date to Overdue
// @Tags Invoices
// @Produce json
// @Success 200 {object} models.SweepResponse
// @Router /invoices/sweep-overdue [post]
func (h *InvoiceHandler) SweepOverdue(c *fiber.Ctx) error {
	n, err := h.invoiceService.SweepOverdue(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SweepResponse{Updated: n})
}

// DownloadPDF godoc
// @Summary Download invoice PDF
// @Tags Invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]interface{}
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	file, err := h.exportService.InvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

// ExportInvoices godoc
// @Summary Export invoices
// @Description Exports the (filtered) invoice list as a PDF table or Excel workbook
// @Tags Invoices
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "pdf or excel" default(pdf)
// @Param q query string false "Substring of invoice id or client name"
// @Param status query string false "Paid, Pending or Overdue"
// @Param period query string false "Period name or YYYY-MM"
// @Success 200 {file} file
// @Router /invoices/export [get]
func (h *InvoiceHandler) ExportInvoices(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format", "pdf"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "format"})
	}

	file, err := h.exportService.ExportInvoices(c.UserContext(), format, filterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *services.ExportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}
