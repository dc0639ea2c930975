package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
)

// PDFExporter implements table export using gofpdf
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export exports data to PDF format
func (p *PDFExporter) Export(data *ExportData, writer io.Writer) error {
	numCols := len(data.Headers)
	if numCols == 0 {
		return fmt.Errorf("no headers provided")
	}

	orientation := "P"
	if data.Style.Orientation == "landscape" {
		orientation = "L"
	}
	pageSize := data.Style.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	fontSize := data.Style.FontSize
	if fontSize == 0 {
		fontSize = 10
	}

	// Only core fonts are embedded; Arial is mapped to Helvetica
	const fontFamily = "Arial"

	pdf := gofpdf.New(orientation, "mm", pageSize, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont(fontFamily, "B", 16)
		pdf.Cell(0, 10, tr(data.Title))
		pdf.Ln(12)
	}

	if data.Description != "" {
		pdf.SetFont(fontFamily, "", fontSize)
		pdf.MultiCell(0, 5, tr(data.Description), "", "", false)
		pdf.Ln(4)
	}

	if !data.CreatedAt.IsZero() {
		pdf.SetFont(fontFamily, "I", 8)
		meta := fmt.Sprintf("Generated: %s", data.CreatedAt.Format("2006-01-02 15:04:05"))
		if data.Author != "" {
			meta += fmt.Sprintf(" | Author: %s", data.Author)
		}
		pdf.Cell(0, 5, tr(meta))
		pdf.Ln(10)
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	leftMargin, _, rightMargin, bottomMargin := pdf.GetMargins()
	colWidth := (pageWidth - leftMargin - rightMargin) / float64(numCols)

	drawHeader := func() {
		pdf.SetFont(fontFamily, "B", fontSize)
		fill := data.Style.HeaderBgColor != ""
		if fill {
			r, g, b := hexToRGB(data.Style.HeaderBgColor)
			pdf.SetFillColor(r, g, b)
			pdf.SetTextColor(255, 255, 255)
		}
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, tr(header), "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(fontFamily, "", fontSize)
	}

	drawRow := func(row []interface{}, fill bool) {
		for _, value := range row {
			text, align := cellText(value)
			pdf.CellFormat(colWidth, 6, tr(text), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	drawHeader()
	for rowIdx, row := range data.Rows {
		if pdf.GetY()+6 > pageHeight-bottomMargin {
			pdf.AddPage()
			drawHeader()
		}

		if data.Style.AlternateRows {
			bg := data.Style.RowBgColor1
			if rowIdx%2 == 1 {
				bg = data.Style.RowBgColor2
			}
			r, g, b := hexToRGB(bg)
			pdf.SetFillColor(r, g, b)
		}
		drawRow(row, data.Style.AlternateRows)
	}

	if len(data.Footer) > 0 {
		pdf.SetFont(fontFamily, "B", fontSize)
		drawRow(data.Footer, false)
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for PDF files
func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension for PDF files
func (p *PDFExporter) GetFileExtension() string {
	return ".pdf"
}

// cellText renders a cell value; amounts are right aligned
func cellText(value interface{}) (string, string) {
	switch v := value.(type) {
	case nil:
		return "", "L"
	case float64:
		return analytics.FormatNumber(v), "R"
	case int:
		return fmt.Sprintf("%d", v), "R"
	case string:
		return v, "L"
	default:
		return fmt.Sprintf("%v", v), "L"
	}
}

// hexToRGB converts hex color to RGB values
func hexToRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	// Default to white if invalid
	if len(hex) != 6 {
		return 255, 255, 255
	}

	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
