package invoicing

import (
	"fmt"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/audit"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/export"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/handlers"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/repositories"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/services"
)

type Options struct {
	DefaultCurrency     string
	RecentInvoicesLimit int
	AutoMigrate         bool
}

// Module wires the invoicing repositories and services over one store and bus
type Module struct {
	Store     store.Store
	Bus       *events.Bus
	Invoices  *services.InvoiceService
	Clients   *services.ClientService
	Profile   *services.ProfileService
	Dashboard *services.DashboardService
	Export    *services.ExportService

	// Activity is nil unless the store is SQL-backed
	Activity *audit.Service
}

func NewModule(s store.Store, bus *events.Bus, opts Options) (*Module, error) {
	invoiceRepo := repositories.NewInvoiceRepo(s)
	clientRepo := repositories.NewClientRepo(s)
	profileRepo := repositories.NewProfileRepo(s)

	invoiceService := services.NewInvoiceService(invoiceRepo, profileRepo, bus, opts.DefaultCurrency)
	clientService := services.NewClientService(clientRepo, bus)

	m := &Module{
		Store:     s,
		Bus:       bus,
		Invoices:  invoiceService,
		Clients:   clientService,
		Profile:   services.NewProfileService(profileRepo, bus),
		Dashboard: services.NewDashboardService(invoiceRepo, profileRepo, bus, opts.RecentInvoicesLimit, opts.DefaultCurrency),
		Export:    services.NewExportService(invoiceService, clientService, export.NewService()),
	}

	if gs, ok := s.(*store.GormStore); ok {
		activity := audit.NewService(gs.DB())
		if opts.AutoMigrate {
			if err := activity.AutoMigrate(); err != nil {
				return nil, fmt.Errorf("auto-migrate activity log: %w", err)
			}
		}
		m.Activity = activity
		m.Invoices.SetActivityRecorder(activity)
		m.Clients.SetActivityRecorder(activity)
		m.Profile.SetActivityRecorder(activity)
	}
	return m, nil
}

// Handlers builds the HTTP handlers for the module
func (m *Module) Handlers(notifyDriver string) handlers.Handlers {
	return handlers.Handlers{
		Health:    handlers.NewHealthHandler(m.Store.Name(), notifyDriver),
		Invoice:   handlers.NewInvoiceHandler(m.Invoices, m.Export),
		Client:    handlers.NewClientHandler(m.Clients),
		Profile:   handlers.NewProfileHandler(m.Profile),
		Dashboard: handlers.NewDashboardHandler(m.Dashboard),
		Activity:  handlers.NewActivityHandler(m.Activity),
	}
}
