package analytics

import "time"

// Record is the slice of an invoice the aggregator reads
type Record struct {
	ID     string
	Client string
	Amount float64
	Date   string // YYYY-MM-DD issue date
	Status string
}

// Growth status values
const (
	GrowthComputed         = "computed"
	GrowthInsufficientData = "insufficient_data"
)

// Snapshot is the derived dashboard summary. It is never persisted.
type Snapshot struct {
	TotalInvoices       int             `json:"totalInvoices"`
	PaidInvoices        int             `json:"paidInvoices"`
	UnpaidInvoices      int             `json:"unpaidInvoices"`
	TotalRevenue        float64         `json:"totalRevenue"`
	OutstandingPayments float64         `json:"outstandingPayments"`
	MonthlyEarnings     float64         `json:"monthlyEarnings"`
	YearlyGrowth        *float64        `json:"yearlyGrowth"` // nil unless YearlyGrowthStatus is "computed"
	YearlyGrowthStatus  string          `json:"yearlyGrowthStatus"`
	RecentInvoices      []RecentInvoice `json:"recentInvoices"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}

// RecentInvoice is a record reshaped for display
type RecentInvoice struct {
	ID     string  `json:"id"`
	Client string  `json:"client"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
}

// DateRange represents a closed time period
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range, inclusive on both ends
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ChartData represents generic chart data format
type ChartData struct {
	Type   string        `json:"type"`   // "line", "bar", "area"
	Labels []string      `json:"labels"` // X-axis labels
	Data   []ChartSeries `json:"data"`
}

// ChartSeries represents a data series in a chart
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

// PieChartData represents pie chart specific data
type PieChartData struct {
	Type   string    `json:"type"` // "pie" or "donut"
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

// StatCard represents a summary statistic card
type StatCard struct {
	Title       string  `json:"title"`
	Value       string  `json:"value"`
	Description string  `json:"description,omitempty"`
	Change      float64 `json:"change"`       // Percentage change
	ChangeLabel string  `json:"change_label"` // "vs last year"
	Trend       string  `json:"trend"`        // "up", "down", "neutral"
	Icon        string  `json:"icon,omitempty"`
}
