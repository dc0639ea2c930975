package models

// LineItemInput is a line item as submitted by a caller
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// CreateInvoiceRequest represents the request body for creating an invoice.
// ID is optional; one is minted when empty. Amount is only used when Items is empty.
type CreateInvoiceRequest struct {
	ID       string          `json:"id"`
	Client   string          `json:"client"`
	Date     string          `json:"date"`
	DueDate  string          `json:"dueDate"`
	Status   string          `json:"status"`
	Currency string          `json:"currency"`
	Items    []LineItemInput `json:"items"`
	Amount   float64         `json:"amount"`
	TaxRate  float64         `json:"taxRate"`
	Notes    string          `json:"notes"`
}

// InvoiceFilter narrows an invoice listing
type InvoiceFilter struct {
	Query  string // substring of id or client, case-insensitive
	Status string
	Period string // analytics period name, e.g. "this_month"
}

// MarkPaidResponse reports the outcome of a mark-paid request
type MarkPaidResponse struct {
	Changed bool     `json:"changed"`
	Invoice *Invoice `json:"invoice,omitempty"`
}

// SweepResponse reports how many invoices an overdue sweep moved
type SweepResponse struct {
	Updated int `json:"updated"`
}
