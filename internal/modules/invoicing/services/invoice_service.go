package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/audit"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/repositories"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

// DefaultPaymentTermDays is added to the issue date when no due date is given
const DefaultPaymentTermDays = 30

var invoiceIDPattern = regexp.MustCompile(`^INV-(\d+)$`)

type InvoiceService struct {
	invoiceRepo     repositories.InvoiceRepo
	profileRepo     repositories.ProfileRepo
	events          events.Publisher
	defaultCurrency string
	activity        ActivityRecorder
	now             func() time.Time
}

func NewInvoiceService(invoiceRepo repositories.InvoiceRepo, profileRepo repositories.ProfileRepo, publisher events.Publisher, defaultCurrency string) *InvoiceService {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		profileRepo:     profileRepo,
		events:          publisher,
		defaultCurrency: strings.ToUpper(defaultCurrency),
		now:             time.Now,
	}
}

// SetClock replaces the wall clock used for defaults and sweeps
func (s *InvoiceService) SetClock(now func() time.Time) {
	s.now = now
}

// SetActivityRecorder enables the activity trail for invoice mutations
func (s *InvoiceService) SetActivityRecorder(rec ActivityRecorder) {
	s.activity = rec
}

// List returns invoices in store order, narrowed by filter
func (s *InvoiceService) List(ctx context.Context, filter models.InvoiceFilter) ([]models.Invoice, error) {
	invoices, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	var period *analytics.DateRange
	if filter.Period != "" {
		now := s.now()
		r, ok := analytics.GetDateRange(filter.Period, now)
		if !ok {
			return nil, invalid("period", "unknown period %q", filter.Period)
		}
		period = &r
	}

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	status := strings.TrimSpace(filter.Status)

	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if q != "" &&
			!strings.Contains(strings.ToLower(inv.ID), q) &&
			!strings.Contains(strings.ToLower(inv.Client), q) {
			continue
		}
		if status != "" && !strings.EqualFold(inv.Status, status) {
			continue
		}
		if period != nil {
			issued, ok := analytics.ParseDate(inv.Date, period.Start.Location())
			if !ok || !period.Contains(issued) {
				continue
			}
		}
		out = append(out, inv)
	}
	return out, nil
}

// Get returns the first invoice with id
func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	invoices, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, notFound("invoice", id)
}

// Create validates the request, prices its line items and appends the invoice
func (s *InvoiceService) Create(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	now := s.now()

	client := strings.TrimSpace(req.Client)
	if client == "" {
		return nil, invalid("client", "client is required")
	}

	issued := now
	if d := strings.TrimSpace(req.Date); d != "" {
		parsed, ok := analytics.ParseDate(d, now.Location())
		if !ok {
			return nil, invalid("date", "date must be YYYY-MM-DD")
		}
		issued = parsed
	}

	due := issued.AddDate(0, 0, DefaultPaymentTermDays)
	if d := strings.TrimSpace(req.DueDate); d != "" {
		parsed, ok := analytics.ParseDate(d, now.Location())
		if !ok {
			return nil, invalid("dueDate", "due date must be YYYY-MM-DD")
		}
		if parsed.Before(time.Date(issued.Year(), issued.Month(), issued.Day(), 0, 0, 0, 0, issued.Location())) {
			return nil, invalid("dueDate", "due date is before the issue date")
		}
		due = parsed
	}

	status := models.StatusPending
	if req.Status != "" {
		canonical, ok := models.CanonicalStatus(req.Status)
		if !ok {
			return nil, invalid("status", "unknown status %q", req.Status)
		}
		status = canonical
	}

	if req.TaxRate < 0 || req.TaxRate > 100 {
		return nil, invalid("taxRate", "tax rate must be between 0 and 100")
	}

	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = strings.ToUpper(profile.Currency)
	}
	if currency == "" {
		currency = s.defaultCurrency
	}
	if !analytics.SupportedCurrency(currency) {
		return nil, invalid("currency", "unsupported currency %q", currency)
	}

	items, subtotal, err := priceItems(req.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		if req.Amount <= 0 {
			return nil, invalid("amount", "amount must be positive when no line items are given")
		}
		subtotal = decimal.NewFromFloat(req.Amount).Round(2)
	}

	tax := subtotal.Mul(decimal.NewFromFloat(req.TaxRate)).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(tax)

	created := now
	inv := models.Invoice{
		Client:    client,
		Amount:    models.Amount(total.InexactFloat64()),
		Date:      issued.Format(analytics.DateLayout),
		DueDate:   due.Format(analytics.DateLayout),
		Status:    status,
		Currency:  currency,
		Items:     items,
		Subtotal:  models.Amount(subtotal.InexactFloat64()),
		TaxRate:   req.TaxRate,
		TaxAmount: models.Amount(tax.InexactFloat64()),
		Notes:     strings.TrimSpace(req.Notes),
		Company:   profile.Company(),
		CreatedAt: &created,
	}
	if status == models.StatusPaid {
		inv.PaidAt = &created
	}

	requestedID := strings.TrimSpace(req.ID)
	_, _, err = s.invoiceRepo.Update(ctx, func(current []models.Invoice) ([]models.Invoice, bool, error) {
		if requestedID != "" {
			for _, existing := range current {
				if strings.EqualFold(existing.ID, requestedID) {
					return nil, false, invalid("id", "invoice %s already exists", requestedID)
				}
			}
			inv.ID = requestedID
		} else {
			inv.ID = NextInvoiceID(current)
		}
		return append(current, inv), true, nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.InvoiceUpdated)
	utils.LogInfo("Invoice created", map[string]interface{}{
		"invoice_id": inv.ID,
		"client":     inv.Client,
		"amount":     inv.Amount,
	})
	recordActivity(ctx, s.activity, audit.ActionCreated, "invoice", inv.ID,
		fmt.Sprintf("Invoice %s for %s", inv.ID, inv.Client), inv)
	return &inv, nil
}

func priceItems(inputs []models.LineItemInput) ([]models.LineItem, decimal.Decimal, error) {
	subtotal := decimal.Zero
	items := make([]models.LineItem, 0, len(inputs))

	for i, in := range inputs {
		field := fmt.Sprintf("items[%d]", i)
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			return nil, subtotal, invalid(field+".description", "description is required")
		}
		if in.Quantity <= 0 {
			return nil, subtotal, invalid(field+".quantity", "quantity must be positive")
		}
		if in.Price < 0 {
			return nil, subtotal, invalid(field+".price", "price cannot be negative")
		}

		amount := decimal.NewFromFloat(in.Quantity).Mul(decimal.NewFromFloat(in.Price)).Round(2)
		subtotal = subtotal.Add(amount)
		items = append(items, models.LineItem{
			Description: desc,
			Quantity:    in.Quantity,
			Price:       models.Amount(in.Price),
			Amount:      models.Amount(amount.InexactFloat64()),
		})
	}
	return items, subtotal, nil
}

// NextInvoiceID mints INV-NNNN one above the highest numbered id in invoices
func NextInvoiceID(invoices []models.Invoice) string {
	highest := 0
	for _, inv := range invoices {
		m := invoiceIDPattern.FindStringSubmatch(inv.ID)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("INV-%04d", highest+1)
}

// MarkPaid marks the first invoice with id as Paid. An unknown id is a no-op:
// the returned invoice is nil and changed is false.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (*models.Invoice, bool, error) {
	var found *models.Invoice

	_, changed, err := s.invoiceRepo.Update(ctx, func(current []models.Invoice) ([]models.Invoice, bool, error) {
		next, changed := models.MarkPaid(current, id, s.now())
		for i := range next {
			if next[i].ID == id {
				inv := next[i]
				found = &inv
				break
			}
		}
		return next, changed, nil
	})
	if err != nil {
		return nil, false, err
	}

	if changed {
		s.events.Publish(events.InvoiceUpdated)
		utils.LogInfo("Invoice marked paid", map[string]interface{}{"invoice_id": id})
		recordActivity(ctx, s.activity, audit.ActionPaid, "invoice", id, "Invoice "+id+" marked paid", found)
	}
	return found, changed, nil
}

// SweepOverdue moves Pending invoices whose due date is before today to Overdue
func (s *InvoiceService) SweepOverdue(ctx context.Context) (int, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	updated := 0
	var moved []string
	_, _, err := s.invoiceRepo.Update(ctx, func(current []models.Invoice) ([]models.Invoice, bool, error) {
		updated = 0
		moved = moved[:0]
		next := make([]models.Invoice, len(current))
		copy(next, current)

		for i, inv := range next {
			if status, _ := models.CanonicalStatus(inv.Status); status != models.StatusPending {
				continue
			}
			due, ok := analytics.ParseDate(inv.DueDate, now.Location())
			if !ok || !due.Before(today) {
				continue
			}
			next[i].Status = models.StatusOverdue
			moved = append(moved, inv.ID)
			updated++
		}
		return next, updated > 0, nil
	})
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		s.events.Publish(events.InvoiceUpdated)
		utils.LogInfo("Overdue sweep updated invoices", map[string]interface{}{"updated": updated})
		for _, id := range moved {
			recordActivity(ctx, s.activity, audit.ActionOverdue, "invoice", id, "Invoice "+id+" is overdue", nil)
		}
	}
	return updated, nil
}
