package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/audit"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/export"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/repositories"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/services"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/database"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.NewDB("sqlite://"+filepath.Join(t.TempDir(), "api.db"), database.Options{})
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.NewGormStore(db.GORM)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	bus := events.NewBus()
	invoiceRepo := repositories.NewInvoiceRepo(s)
	clientRepo := repositories.NewClientRepo(s)
	profileRepo := repositories.NewProfileRepo(s)

	invoiceService := services.NewInvoiceService(invoiceRepo, profileRepo, bus, "USD")
	clientService := services.NewClientService(clientRepo, bus)
	profileService := services.NewProfileService(profileRepo, bus)
	dashboardService := services.NewDashboardService(invoiceRepo, profileRepo, bus, 5, "USD")
	exportService := services.NewExportService(invoiceService, clientService, export.NewService())

	activity := audit.NewService(db.GORM)
	if err := activity.AutoMigrate(); err != nil {
		t.Fatalf("activity AutoMigrate() error = %v", err)
	}
	invoiceService.SetActivityRecorder(activity)
	clientService.SetActivityRecorder(activity)

	app := fiber.New()
	RegisterRoutes(app, Handlers{
		Health:    NewHealthHandler(s.Name(), "local"),
		Invoice:   NewInvoiceHandler(invoiceService, exportService),
		Client:    NewClientHandler(clientService),
		Profile:   NewProfileHandler(profileService),
		Dashboard: NewDashboardHandler(dashboardService),
		Activity:  NewActivityHandler(activity),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp, body := do(t, app, http.MethodGet, "/health", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestInvoiceFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/invoices", map[string]interface{}{
		"client": "Acme", "date": "2026-01-05", "amount": 100, "status": "paid",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d, body = %s", resp.StatusCode, body)
	}
	var first models.Invoice
	if err := json.Unmarshal(body, &first); err != nil {
		t.Fatal(err)
	}
	if first.ID != "INV-0001" || first.Status != models.StatusPaid {
		t.Errorf("first = %+v", first)
	}

	resp, body = do(t, app, http.MethodPost, "/invoices", map[string]interface{}{
		"client": "Globex", "date": "2026-01-06",
		"items": []map[string]interface{}{{"description": "Widgets", "quantity": 5, "price": 10}},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d, body = %s", resp.StatusCode, body)
	}

	resp, body = do(t, app, http.MethodGet, "/invoices?q=glob", nil)
	var listed []models.Invoice
	if err := json.Unmarshal(body, &listed); err != nil || resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list = %d %s", resp.StatusCode, body)
	}
	if len(listed) != 1 || listed[0].ID != "INV-0002" || listed[0].Amount != 50 {
		t.Errorf("listed = %+v", listed)
	}

	resp, body = do(t, app, http.MethodPost, "/invoices/INV-0002/mark-paid", nil)
	var marked models.MarkPaidResponse
	if err := json.Unmarshal(body, &marked); err != nil || resp.StatusCode != fiber.StatusOK {
		t.Fatalf("mark-paid = %d %s", resp.StatusCode, body)
	}
	if !marked.Changed || marked.Invoice == nil || marked.Invoice.Status != models.StatusPaid {
		t.Errorf("marked = %+v", marked)
	}

	resp, body = do(t, app, http.MethodPost, "/invoices/INV-9999/mark-paid", nil)
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), `"changed":false`) {
		t.Errorf("mark-paid unknown = %d %s", resp.StatusCode, body)
	}

	resp, body = do(t, app, http.MethodGet, "/dashboard", nil)
	var snap analytics.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil || resp.StatusCode != fiber.StatusOK {
		t.Fatalf("dashboard = %d %s", resp.StatusCode, body)
	}
	if snap.TotalInvoices != 2 || snap.PaidInvoices != 2 || snap.TotalRevenue != 150 || snap.OutstandingPayments != 0 {
		t.Errorf("snapshot = %+v", snap)
	}

	resp, body = do(t, app, http.MethodGet, "/invoices/INV-0001/pdf", nil)
	if resp.StatusCode != fiber.StatusOK || resp.Header.Get("Content-Type") != "application/pdf" || !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Errorf("pdf = %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}

func TestInvoiceErrors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		field  string
	}{
		{"missing client", http.MethodPost, "/invoices", map[string]interface{}{"amount": 5}, fiber.StatusBadRequest, "client"},
		{"bad quantity", http.MethodPost, "/invoices", map[string]interface{}{
			"client": "Acme", "items": []map[string]interface{}{{"description": "x", "quantity": -1, "price": 1}},
		}, fiber.StatusBadRequest, "items[0].quantity"},
		{"unknown invoice", http.MethodGet, "/invoices/INV-0404", nil, fiber.StatusNotFound, ""},
		{"unknown pdf", http.MethodGet, "/invoices/INV-0404/pdf", nil, fiber.StatusNotFound, ""},
		{"bad export format", http.MethodGet, "/invoices/export?format=csv", nil, fiber.StatusBadRequest, "format"},
		{"bad period", http.MethodGet, "/invoices?period=someday", nil, fiber.StatusBadRequest, "period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, tt.method, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d, body = %s", resp.StatusCode, tt.status, body)
			}
			if tt.field == "" {
				return
			}
			var out map[string]interface{}
			if err := json.Unmarshal(body, &out); err != nil {
				t.Fatal(err)
			}
			if out["field"] != tt.field {
				t.Errorf("field = %v, want %s", out["field"], tt.field)
			}
		})
	}
}

func TestClientRoutes(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/clients", models.ClientInput{Name: "Acme", Email: "ap@acme.test"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("add = %d %s", resp.StatusCode, body)
	}
	var client models.Client
	if err := json.Unmarshal(body, &client); err != nil {
		t.Fatal(err)
	}

	resp, _ = do(t, app, http.MethodPost, "/clients", models.ClientInput{Name: "ACME"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("duplicate add = %d, want 400", resp.StatusCode)
	}

	resp, body = do(t, app, http.MethodPut, "/clients/"+string(client.ID), models.ClientInput{Name: "Acme Corp"})
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), "Acme Corp") {
		t.Errorf("update = %d %s", resp.StatusCode, body)
	}

	resp, _ = do(t, app, http.MethodDelete, "/clients/"+string(client.ID), nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("delete = %d, want 204", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodDelete, "/clients/"+string(client.ID), nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("second delete = %d, want 404", resp.StatusCode)
	}
}

func TestProfileAndCards(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPut, "/profile", models.Profile{BusinessName: "Vista", Currency: "gbp"})
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), `"currency":"GBP"`) {
		t.Fatalf("update profile = %d %s", resp.StatusCode, body)
	}

	resp, _ = do(t, app, http.MethodPut, "/profile", models.Profile{Currency: "ABC"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("bad currency = %d, want 400", resp.StatusCode)
	}

	resp, body = do(t, app, http.MethodGet, "/dashboard/cards", nil)
	var cards []analytics.StatCard
	if err := json.Unmarshal(body, &cards); err != nil || resp.StatusCode != fiber.StatusOK {
		t.Fatalf("cards = %d %s", resp.StatusCode, body)
	}
	if len(cards) != 5 || cards[0].Value != "£0.00" {
		t.Errorf("cards = %+v", cards)
	}

	resp, body = do(t, app, http.MethodGet, "/dashboard/revenue?months=6", nil)
	var chart analytics.ChartData
	if err := json.Unmarshal(body, &chart); err != nil || resp.StatusCode != fiber.StatusOK {
		t.Fatalf("revenue = %d %s", resp.StatusCode, body)
	}
	if len(chart.Labels) != 6 {
		t.Errorf("labels = %v", chart.Labels)
	}
}

func TestActivityRoute(t *testing.T) {
	app := newTestApp(t)

	do(t, app, http.MethodPost, "/invoices", map[string]interface{}{"client": "Acme", "amount": 20})
	do(t, app, http.MethodPost, "/clients", models.ClientInput{Name: "Acme"})
	do(t, app, http.MethodPost, "/invoices/INV-0001/mark-paid", nil)

	resp, body := do(t, app, http.MethodGet, "/activity?entity=invoice", nil)
	var page audit.Page
	if err := json.Unmarshal(body, &page); err != nil || resp.StatusCode != fiber.StatusOK {
		t.Fatalf("activity = %d %s", resp.StatusCode, body)
	}
	if page.TotalCount != 2 {
		t.Fatalf("invoice activity = %d entries, want 2", page.TotalCount)
	}
	for _, e := range page.Entries {
		if e.EntityID != "INV-0001" {
			t.Errorf("entry = %+v", e)
		}
	}

	resp, _ = do(t, app, http.MethodGet, "/activity?since=yesterday", nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("bad since = %d, want 400", resp.StatusCode)
	}
}

func TestActivityUnavailableWithoutSQL(t *testing.T) {
	app := fiber.New()
	app.Get("/activity", NewActivityHandler(nil).ListActivity)

	resp, _ := do(t, app, http.MethodGet, "/activity", nil)
	if resp.StatusCode != fiber.StatusNotImplemented {
		t.Errorf("status = %d, want 501", resp.StatusCode)
	}
}
