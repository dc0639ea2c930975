package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter implements table export using excelize
type ExcelExporter struct {
	sheetName string
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{
		sheetName: "Invoices",
	}
}

// amountFormat is the custom number format applied to float64 cells
const amountFormat = "#,##0.00"

// Export exports data to Excel format
func (e *ExcelExporter) Export(data *ExportData, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rowIndex := 1
	if data.Title != "" {
		f.SetCellValue(e.sheetName, cellName(1, rowIndex), data.Title)
		titleStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{
				Bold:   true,
				Size:   14,
				Family: data.Style.FontFamily,
			},
		})
		f.SetCellStyle(e.sheetName, cellName(1, rowIndex), cellName(1, rowIndex), titleStyle)
		rowIndex++

		if data.Description != "" {
			f.SetCellValue(e.sheetName, cellName(1, rowIndex), data.Description)
			rowIndex++
		}
		rowIndex++ // blank row
	}

	headerStyle, err := e.createHeaderStyle(f, data.Style)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := rowIndex
	for colIndex, header := range data.Headers {
		cell := cellName(colIndex+1, rowIndex)
		f.SetCellValue(e.sheetName, cell, header)
		f.SetCellStyle(e.sheetName, cell, cell, headerStyle)

		if width, ok := data.Style.ColumnWidths[colIndex]; ok {
			colName := columnNumberToName(colIndex + 1)
			f.SetColWidth(e.sheetName, colName, colName, width)
		}
	}
	rowIndex++

	oddText, _ := e.createRowStyle(f, data.Style, data.Style.RowBgColor1, false, false)
	oddAmount, _ := e.createRowStyle(f, data.Style, data.Style.RowBgColor1, true, false)
	evenText, evenAmount := oddText, oddAmount
	if data.Style.AlternateRows {
		evenText, _ = e.createRowStyle(f, data.Style, data.Style.RowBgColor2, false, false)
		evenAmount, _ = e.createRowStyle(f, data.Style, data.Style.RowBgColor2, true, false)
	}

	for rowIdx, row := range data.Rows {
		textStyle, amtStyle := oddText, oddAmount
		if rowIdx%2 == 1 {
			textStyle, amtStyle = evenText, evenAmount
		}
		e.writeRow(f, rowIndex, row, textStyle, amtStyle)
		rowIndex++
	}
	lastDataRow := rowIndex - 1

	if len(data.Footer) > 0 {
		footText, _ := e.createRowStyle(f, data.Style, "", false, true)
		footAmount, _ := e.createRowStyle(f, data.Style, "", true, true)
		e.writeRow(f, rowIndex, data.Footer, footText, footAmount)
	}

	if data.Style.FreezeHeader {
		f.SetPanes(e.sheetName, &excelize.Panes{
			Freeze:      true,
			XSplit:      0,
			YSplit:      headerRow,
			TopLeftCell: cellName(1, headerRow+1),
			ActivePane:  "bottomLeft",
		})
	}

	if data.Style.AutoFilter && len(data.Headers) > 0 && lastDataRow > headerRow {
		lastCol := columnNumberToName(len(data.Headers))
		f.AutoFilter(e.sheetName, fmt.Sprintf("A%d:%s%d", headerRow, lastCol, lastDataRow), nil)
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, rowIndex int, row []interface{}, textStyle, amountStyle int) {
	for colIndex, value := range row {
		cell := cellName(colIndex+1, rowIndex)
		f.SetCellValue(e.sheetName, cell, value)

		style := textStyle
		if _, ok := value.(float64); ok {
			style = amountStyle
		}
		f.SetCellStyle(e.sheetName, cell, cell, style)
	}
}

// GetContentType returns the MIME type for Excel files
func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// GetFileExtension returns the file extension for Excel files
func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

func (e *ExcelExporter) createHeaderStyle(f *excelize.File, style ExportStyle) (int, error) {
	headerStyle := &excelize.Style{
		Font: &excelize.Font{
			Bold:   style.HeaderBold,
			Size:   style.FontSize,
			Family: style.FontFamily,
			Color:  "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(style.HeaderBgColor)},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	}

	return f.NewStyle(headerStyle)
}

// createRowStyle creates a body style. Amount styles carry the number format.
func (e *ExcelExporter) createRowStyle(f *excelize.File, style ExportStyle, bgColor string, amount, bold bool) (int, error) {
	rowStyle := &excelize.Style{
		Font: &excelize.Font{
			Bold:   bold,
			Size:   style.FontSize,
			Family: style.FontFamily,
		},
	}

	if bgColor != "" && bgColor != "#FFFFFF" {
		rowStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(bgColor)},
		}
	}
	if amount {
		format := amountFormat
		rowStyle.CustomNumFmt = &format
		rowStyle.Alignment = &excelize.Alignment{Horizontal: "right"}
	}

	return f.NewStyle(rowStyle)
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnNumberToName(col), row)
}

// columnNumberToName converts column number to Excel column name (1 -> A, 27 -> AA)
func columnNumberToName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+(col%26))) + name
		col /= 26
	}
	return name
}

func stripHashFromColor(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
