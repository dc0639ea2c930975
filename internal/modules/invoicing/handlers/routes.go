package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers groups the module's HTTP handlers for route registration
type Handlers struct {
	Health    *HealthHandler
	Invoice   *InvoiceHandler
	Client    *ClientHandler
	Profile   *ProfileHandler
	Dashboard *DashboardHandler
	Activity  *ActivityHandler
}

func RegisterRoutes(r fiber.Router, h Handlers) {
	// Health check
	r.Get("/health", h.Health.GetHealth)

	// Invoice routes; static paths before /:id
	r.Get("/invoices", h.Invoice.ListInvoices)
	r.Post("/invoices", h.Invoice.CreateInvoice)
	r.Get("/invoices/export", h.Invoice.ExportInvoices)
	r.Post("/invoices/sweep-overdue", h.Invoice.SweepOverdue)
	r.Get("/invoices/:id", h.Invoice.GetInvoice)
	r.Post("/invoices/:id/mark-paid", h.Invoice.MarkPaid)
	r.Get("/invoices/:id/pdf", h.Invoice.DownloadPDF)

	// Client routes
	r.Get("/clients", h.Client.ListClients)
	r.Post("/clients", h.Client.AddClient)
	r.Get("/clients/:id", h.Client.GetClient)
	r.Put("/clients/:id", h.Client.UpdateClient)
	r.Delete("/clients/:id", h.Client.DeleteClient)

	// Profile routes
	r.Get("/profile", h.Profile.GetProfile)
	r.Put("/profile", h.Profile.UpdateProfile)

	// Dashboard routes
	r.Get("/dashboard", h.Dashboard.GetSnapshot)
	r.Get("/dashboard/cards", h.Dashboard.GetCards)
	r.Get("/dashboard/revenue", h.Dashboard.GetRevenue)
	r.Get("/dashboard/status", h.Dashboard.GetStatusBreakdown)
	r.Get("/dashboard/stream", h.Dashboard.Stream)

	// Activity log
	if h.Activity != nil {
		r.Get("/activity", h.Activity.ListActivity)
	}
}
