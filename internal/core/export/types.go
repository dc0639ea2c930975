package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatPDF   ExportFormat = "pdf"
	FormatExcel ExportFormat = "excel"
)

// ParseFormat accepts "pdf", "excel" or "xlsx", case-insensitively
func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Exporter is the interface for tabular export formats
type Exporter interface {
	Export(data *ExportData, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// ExportData represents a table to be exported.
// float64 cells are written as amounts; Footer, when set, is rendered as a bold totals row.
type ExportData struct {
	Title       string
	Description string
	Author      string
	CreatedAt   time.Time

	Headers []string
	Rows    [][]interface{}
	Footer  []interface{}

	Style ExportStyle
}

// ExportStyle defines styling options for exports
type ExportStyle struct {
	// PDF specific
	Orientation string // "portrait" or "landscape"
	PageSize    string // "A4", "Letter", etc.

	// Common styling
	HeaderBold    bool
	HeaderBgColor string // Hex color
	AlternateRows bool
	RowBgColor1   string // Hex color for odd rows
	RowBgColor2   string // Hex color for even rows

	FontFamily string
	FontSize   float64

	// Excel specific
	FreezeHeader bool
	AutoFilter   bool
	ColumnWidths map[int]float64 // Column index -> width
}

// DefaultStyle returns default export styling
func DefaultStyle() ExportStyle {
	return ExportStyle{
		Orientation:   "portrait",
		PageSize:      "A4",
		HeaderBold:    true,
		HeaderBgColor: "#4472C4",
		AlternateRows: true,
		RowBgColor1:   "#FFFFFF",
		RowBgColor2:   "#F2F2F2",
		FontFamily:    "Arial",
		FontSize:      10,
		FreezeHeader:  true,
		AutoFilter:    true,
		ColumnWidths:  make(map[int]float64),
	}
}

// InvoiceDocument is everything printed on a single invoice
type InvoiceDocument struct {
	Number    string
	Status    string
	IssueDate string
	DueDate   string
	Currency  string

	From Party
	To   Party

	BankName    string
	BankAccount string
	BankIFSC    string

	Lines     []DocumentLine
	Subtotal  float64
	TaxRate   float64
	TaxAmount float64
	Total     float64
	Notes     string
}

// Party is an issuer or recipient block
type Party struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// DocumentLine is one priced row on an invoice
type DocumentLine struct {
	Description string
	Quantity    float64
	Price       float64
	Amount      float64
}
