package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/export"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
)

// ExportFile is a rendered download
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

type ExportService struct {
	invoices *InvoiceService
	clients  *ClientService
	exporter *export.Service
}

func NewExportService(invoices *InvoiceService, clients *ClientService, exporter *export.Service) *ExportService {
	return &ExportService{invoices: invoices, clients: clients, exporter: exporter}
}

// InvoicePDF renders one invoice as a printable document
func (s *ExportService) InvoicePDF(ctx context.Context, id string) (*ExportFile, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := export.InvoiceDocument{
		Number:    inv.ID,
		Status:    inv.Status,
		IssueDate: inv.Date,
		DueDate:   inv.DueDate,
		Currency:  inv.Currency,
		To:        export.Party{Name: inv.Client},
		Subtotal:  inv.Subtotal.Float64(),
		TaxRate:   inv.TaxRate,
		TaxAmount: inv.TaxAmount.Float64(),
		Total:     inv.Amount.Float64(),
		Notes:     inv.Notes,
	}
	if inv.Company != nil {
		doc.From = export.Party{
			Name:    inv.Company.Name,
			Address: inv.Company.Address,
			Email:   inv.Company.Email,
			Phone:   inv.Company.Phone,
		}
		doc.BankName = inv.Company.BankName
		doc.BankAccount = inv.Company.BankAccount
		doc.BankIFSC = inv.Company.BankIFSC
	}

	// Client is free text; enrich from the client list when the name matches
	if s.clients != nil {
		if clients, err := s.clients.List(ctx, ""); err == nil {
			for _, c := range clients {
				if c.Name == inv.Client {
					doc.To = export.Party{Name: c.Name, Address: c.Address, Email: c.Email, Phone: c.Phone}
					break
				}
			}
		}
	}

	for _, item := range inv.Items {
		doc.Lines = append(doc.Lines, export.DocumentLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price.Float64(),
			Amount:      item.Amount.Float64(),
		})
	}
	if len(doc.Lines) == 0 {
		doc.Lines = []export.DocumentLine{{Description: "Services", Quantity: 1, Price: doc.Total, Amount: doc.Total}}
		doc.Subtotal = doc.Total
	}

	content, err := s.exporter.RenderInvoice(doc)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Content:     content,
		ContentType: "application/pdf",
		Filename:    fmt.Sprintf("%s.pdf", inv.ID),
	}, nil
}

// ExportInvoices renders the filtered invoice list as a table
func (s *ExportService) ExportInvoices(ctx context.Context, format export.ExportFormat, filter models.InvoiceFilter) (*ExportFile, error) {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := &export.ExportData{
		Title:     "Invoices",
		CreatedAt: time.Now(),
		Headers:   []string{"Invoice", "Client", "Date", "Due Date", "Status", "Currency", "Amount"},
		Style:     export.DefaultStyle(),
	}
	data.Style.ColumnWidths = map[int]float64{0: 14, 1: 28, 2: 12, 3: 12, 4: 10, 5: 10, 6: 14}

	total := decimal.Zero
	for _, inv := range invoices {
		data.Rows = append(data.Rows, []interface{}{
			inv.ID, inv.Client, inv.Date, inv.DueDate, inv.Status, inv.Currency, inv.Amount.Float64(),
		})
		total = total.Add(decimal.NewFromFloat(inv.Amount.Float64()))
	}
	data.Footer = []interface{}{"Total", fmt.Sprintf("%d invoices", len(invoices)), "", "", "", "", total.InexactFloat64()}
	if filter.Query != "" || filter.Status != "" || filter.Period != "" {
		data.Description = fmt.Sprintf("Filtered by query=%q status=%q period=%q", filter.Query, filter.Status, filter.Period)
	}

	content, contentType, err := s.exporter.Export(data, format)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Content:     content,
		ContentType: contentType,
		Filename:    "invoices" + s.exporter.GetFileExtension(format),
	}, nil
}
