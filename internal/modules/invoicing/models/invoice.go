package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
)

// Invoice statuses as written to the store
const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
)

// CanonicalStatus maps a status case-insensitively onto its canonical form.
// ok is false for values outside Pending/Paid/Overdue.
func CanonicalStatus(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "paid":
		return StatusPaid, true
	case "overdue":
		return StatusOverdue, true
	}
	return strings.TrimSpace(s), false
}

// Amount is a monetary value. Older records hold display strings such as
// "$1,200.50"; those are normalized to a number when decoded.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*a = 0
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(analytics.NormalizeAmountString(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(analytics.NormalizeAmount(f))
	return nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}

// LineItem is a single billed row
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       Amount  `json:"price"`
	Amount      Amount  `json:"amount"`
}

// Company holds the issuer details printed on an invoice
type Company struct {
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	BankName    string `json:"bankName,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
	BankIFSC    string `json:"bankIfsc,omitempty"`
}

// Invoice is a persisted invoice record (store key "invoices")
type Invoice struct {
	ID        string     `json:"id"`
	Client    string     `json:"client"`
	Amount    Amount     `json:"amount"`
	Date      string     `json:"date"`
	DueDate   string     `json:"dueDate"`
	Status    string     `json:"status"`
	Currency  string     `json:"currency,omitempty"`
	Items     []LineItem `json:"items,omitempty"`
	Subtotal  Amount     `json:"subtotal,omitempty"`
	TaxRate   float64    `json:"taxRate,omitempty"`
	TaxAmount Amount     `json:"taxAmount,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Company   *Company   `json:"company,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`

	// Extra keeps stored keys not declared above
	Extra Extra `json:"-" swaggerignore:"true"`
}

type invoiceFields Invoice

var invoiceKeys = jsonKeys(invoiceFields{})

func (i *Invoice) UnmarshalJSON(b []byte) error {
	var fields invoiceFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	fields.Extra = splitExtra(b, invoiceKeys)
	*i = Invoice(fields)
	return nil
}

func (i Invoice) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(invoiceFields(i))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, i.Extra)
}

func (i Invoice) IsPaid() bool {
	return analytics.IsPaid(i.Status)
}

// Record projects the invoice onto the fields the metrics aggregator reads
func (i Invoice) Record() analytics.Record {
	return analytics.Record{
		ID:     i.ID,
		Client: i.Client,
		Amount: i.Amount.Float64(),
		Date:   i.Date,
		Status: i.Status,
	}
}

// Records projects a collection for the aggregator
func Records(invoices []Invoice) []analytics.Record {
	out := make([]analytics.Record, len(invoices))
	for i, inv := range invoices {
		out[i] = inv.Record()
	}
	return out
}

// MarkPaid returns a copy of invoices with the first record matching id set
// to Paid. changed is false, and the input is returned as is, when no record
// matches or the match is already canonically Paid.
func MarkPaid(invoices []Invoice, id string, at time.Time) ([]Invoice, bool) {
	for idx := range invoices {
		if invoices[idx].ID != id {
			continue
		}
		if invoices[idx].Status == StatusPaid {
			return invoices, false
		}

		out := make([]Invoice, len(invoices))
		copy(out, invoices)

		inv := out[idx]
		if !inv.IsPaid() || inv.PaidAt == nil {
			paidAt := at
			inv.PaidAt = &paidAt
		}
		inv.Status = StatusPaid
		out[idx] = inv
		return out, true
	}
	return invoices, false
}
