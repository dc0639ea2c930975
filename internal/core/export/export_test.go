package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func sampleData() *ExportData {
	return &ExportData{
		Title:     "Invoices",
		CreatedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		Headers:   []string{"ID", "Client", "Amount"},
		Rows: [][]interface{}{
			{"INV-0001", "Acme", 1200.5},
			{"INV-0002", "Globex", 99.0},
		},
		Footer: []interface{}{"Total", "", 1299.5},
		Style:  DefaultStyle(),
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]ExportFormat{"pdf": FormatPDF, "PDF": FormatPDF, "excel": FormatExcel, "xlsx": FormatExcel}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("ParseFormat(csv) error = nil")
	}
}

func TestService_ExportPDF(t *testing.T) {
	out, contentType, err := NewService().Export(sampleData(), FormatPDF)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if contentType != "application/pdf" {
		t.Errorf("content type = %s", contentType)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", out[:8])
	}
}

func TestService_ExportPDFRequiresHeaders(t *testing.T) {
	data := sampleData()
	data.Headers = nil
	if _, _, err := NewService().Export(data, FormatPDF); err == nil {
		t.Error("Export() without headers error = nil")
	}
}

func TestService_ExportExcelKeepsAmountsNumeric(t *testing.T) {
	out, _, err := NewService().Export(sampleData(), FormatExcel)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	// title, blank row, header on row 3, data from row 4
	id, _ := f.GetCellValue("Invoices", "A4")
	if id != "INV-0001" {
		t.Errorf("A4 = %q, want INV-0001", id)
	}
	raw, _ := f.GetCellValue("Invoices", "C4", excelize.Options{RawCellValue: true})
	if raw != "1200.5" {
		t.Errorf("C4 raw = %q, want 1200.5", raw)
	}
	total, _ := f.GetCellValue("Invoices", "A6")
	if total != "Total" {
		t.Errorf("A6 = %q, want Total", total)
	}
}

func TestRenderInvoice(t *testing.T) {
	out, err := RenderInvoice(InvoiceDocument{
		Number:    "INV-0007",
		Status:    "Pending",
		IssueDate: "2026-10-18",
		DueDate:   "2026-11-17",
		Currency:  "USD",
		From:      Party{Name: "Vista Ltd", Email: "billing@vista.test"},
		To:        Party{Name: "Acme"},
		BankName:  "First Bank",
		Lines:     []DocumentLine{{Description: "Design", Quantity: 2, Price: 50, Amount: 100}},
		Subtotal:  100,
		TaxRate:   10,
		TaxAmount: 10,
		Total:     110,
		Notes:     "Thank you for your business!",
	})
	if err != nil {
		t.Fatalf("RenderInvoice() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}

func TestColumnNumberToName(t *testing.T) {
	tests := map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"}
	for in, want := range tests {
		if got := columnNumberToName(in); got != want {
			t.Errorf("columnNumberToName(%d) = %s, want %s", in, got, want)
		}
	}
}
