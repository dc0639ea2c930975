package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
)

var (
	darkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
	accent     = color.Color{Red: 37, Green: 99, Blue: 235}
)

// RenderInvoice lays out a single invoice as an A4 PDF
func RenderInvoice(doc InvoiceDocument) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	money := func(v float64) string {
		return strings.TrimSpace(doc.Currency + " " + analytics.FormatNumber(v))
	}
	text := func(s string, size float64, style consts.Style, c color.Color, align consts.Align) {
		m.Text(s, props.Text{Size: size, Style: style, Color: c, Align: align})
	}

	m.Row(15, func() {
		m.Col(8, func() {
			text("INVOICE", 24, consts.Bold, darkGray, consts.Left)
		})
		m.Col(4, func() {
			text(strings.ToUpper(doc.Status), 12, consts.Bold, accent, consts.Right)
		})
	})

	if doc.From.Name != "" {
		m.Row(8, func() {
			m.Col(12, func() {
				text(doc.From.Name, 14, consts.Bold, darkGray, consts.Left)
			})
		})
	}
	for _, line := range nonEmpty(doc.From.Address, doc.From.Email, doc.From.Phone) {
		line := line
		m.Row(5, func() {
			m.Col(12, func() {
				text(line, 9, consts.Normal, mediumGray, consts.Left)
			})
		})
	}

	m.Row(8, func() {})

	details := []string{
		fmt.Sprintf("Invoice #%s", doc.Number),
		fmt.Sprintf("Date: %s", doc.IssueDate),
		fmt.Sprintf("Due: %s", doc.DueDate),
	}
	billTo := append([]string{doc.To.Name}, nonEmpty(doc.To.Address, doc.To.Email, doc.To.Phone)...)

	m.Row(5, func() {
		m.Col(6, func() {
			text("BILL TO", 8, consts.Bold, darkGray, consts.Left)
		})
		m.Col(6, func() {
			text("INVOICE DETAILS", 8, consts.Bold, darkGray, consts.Right)
		})
	})
	rows := len(details)
	if len(billTo) > rows {
		rows = len(billTo)
	}
	for i := 0; i < rows; i++ {
		left, right := at(billTo, i), at(details, i)
		leftStyle := consts.Normal
		if i == 0 {
			leftStyle = consts.Bold
		}
		m.Row(5, func() {
			m.Col(6, func() {
				text(left, 9, leftStyle, darkGray, consts.Left)
			})
			m.Col(6, func() {
				text(right, 9, consts.Normal, mediumGray, consts.Right)
			})
		})
	}

	m.Row(8, func() {})

	m.Row(6, func() {
		m.Col(6, func() {
			text("Description", 8, consts.Bold, darkGray, consts.Left)
		})
		for _, h := range []string{"Qty", "Price", "Amount"} {
			h := h
			m.Col(2, func() {
				text(h, 8, consts.Bold, darkGray, consts.Right)
			})
		}
	})
	m.Line(1.0)

	for _, item := range doc.Lines {
		item := item
		m.Row(6, func() {
			m.Col(6, func() {
				text(item.Description, 9, consts.Normal, darkGray, consts.Left)
			})
			m.Col(2, func() {
				text(strconv.FormatFloat(item.Quantity, 'f', -1, 64), 9, consts.Normal, darkGray, consts.Right)
			})
			m.Col(2, func() {
				text(money(item.Price), 9, consts.Normal, darkGray, consts.Right)
			})
			m.Col(2, func() {
				text(money(item.Amount), 9, consts.Normal, darkGray, consts.Right)
			})
		})
	}

	m.Row(8, func() {})

	summary := [][2]string{
		{"Subtotal", money(doc.Subtotal)},
		{fmt.Sprintf("Tax (%s%%)", strconv.FormatFloat(doc.TaxRate, 'f', -1, 64)), money(doc.TaxAmount)},
	}
	for _, s := range summary {
		s := s
		m.Row(5, func() {
			m.Col(8, func() {})
			m.Col(2, func() {
				text(s[0], 9, consts.Normal, mediumGray, consts.Right)
			})
			m.Col(2, func() {
				text(s[1], 9, consts.Normal, darkGray, consts.Right)
			})
		})
	}
	m.Row(7, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			text("Total", 11, consts.Bold, darkGray, consts.Right)
		})
		m.Col(2, func() {
			text(money(doc.Total), 11, consts.Bold, darkGray, consts.Right)
		})
	})

	bank := nonEmpty(
		labelled("Bank", doc.BankName),
		labelled("Account", doc.BankAccount),
		labelled("IFSC", doc.BankIFSC),
	)
	if len(bank) > 0 {
		m.Row(10, func() {})
		m.Row(5, func() {
			m.Col(12, func() {
				text("PAYMENT DETAILS", 8, consts.Bold, darkGray, consts.Left)
			})
		})
		for _, line := range bank {
			line := line
			m.Row(5, func() {
				m.Col(12, func() {
					text(line, 9, consts.Normal, mediumGray, consts.Left)
				})
			})
		}
	}

	if doc.Notes != "" {
		m.Row(10, func() {})
		m.Row(5, func() {
			m.Col(12, func() {
				text("NOTES", 8, consts.Bold, darkGray, consts.Left)
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				text(doc.Notes, 9, consts.Normal, mediumGray, consts.Left)
			})
		})
	}

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", doc.Number, err)
	}
	return buf.Bytes(), nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
