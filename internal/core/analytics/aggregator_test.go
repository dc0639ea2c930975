package analytics

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, time.October, 18, 14, 30, 0, 0, time.UTC)

func TestComputeSnapshot_PaidAndPending(t *testing.T) {
	records := []Record{
		{ID: "INV-1", Client: "Acme", Amount: 100, Status: "Paid", Date: "2026-10-02"},
		{ID: "INV-2", Client: "Globex", Amount: 50, Status: "Pending", Date: "2026-10-05"},
	}

	s := ComputeSnapshot(records, fixedNow, 0)

	if s.TotalInvoices != 2 || s.PaidInvoices != 1 || s.UnpaidInvoices != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", s.TotalInvoices, s.PaidInvoices, s.UnpaidInvoices)
	}
	if s.TotalRevenue != 100 {
		t.Errorf("TotalRevenue = %v, want 100", s.TotalRevenue)
	}
	if s.OutstandingPayments != 50 {
		t.Errorf("OutstandingPayments = %v, want 50", s.OutstandingPayments)
	}
	if s.MonthlyEarnings != 100 {
		t.Errorf("MonthlyEarnings = %v, want 100", s.MonthlyEarnings)
	}
	if !s.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt = %v, want %v", s.GeneratedAt, fixedNow)
	}
}

func TestComputeSnapshot_Empty(t *testing.T) {
	s := ComputeSnapshot(nil, fixedNow, 5)

	if s.TotalInvoices != 0 || s.PaidInvoices != 0 || s.UnpaidInvoices != 0 {
		t.Errorf("counts = %d/%d/%d, want zeros", s.TotalInvoices, s.PaidInvoices, s.UnpaidInvoices)
	}
	if s.TotalRevenue != 0 || s.OutstandingPayments != 0 || s.MonthlyEarnings != 0 {
		t.Errorf("sums = %v/%v/%v, want zeros", s.TotalRevenue, s.OutstandingPayments, s.MonthlyEarnings)
	}
	if s.RecentInvoices == nil || len(s.RecentInvoices) != 0 {
		t.Errorf("RecentInvoices = %#v, want empty non-nil slice", s.RecentInvoices)
	}
	if s.YearlyGrowth != nil || s.YearlyGrowthStatus != GrowthInsufficientData {
		t.Errorf("growth = %v/%s, want nil/%s", s.YearlyGrowth, s.YearlyGrowthStatus, GrowthInsufficientData)
	}
}

func TestComputeSnapshot_StatusIsCaseInsensitive(t *testing.T) {
	records := []Record{
		{ID: "a", Amount: 10, Status: "paid"},
		{ID: "b", Amount: 20, Status: "PAID"},
		{ID: "c", Amount: 30, Status: "Overdue"},
		{ID: "d", Amount: 40, Status: "something-else"},
		{ID: "e", Amount: 50, Status: ""},
	}

	s := ComputeSnapshot(records, fixedNow, 5)
	if s.PaidInvoices != 2 {
		t.Errorf("PaidInvoices = %d, want 2", s.PaidInvoices)
	}
	if s.TotalRevenue != 30 || s.OutstandingPayments != 120 {
		t.Errorf("revenue/outstanding = %v/%v, want 30/120", s.TotalRevenue, s.OutstandingPayments)
	}
}

func TestComputeSnapshot_MalformedDateOnlyLeavesMonthly(t *testing.T) {
	records := []Record{
		{ID: "a", Amount: 75, Status: "Paid", Date: "18/10/2026"},
		{ID: "b", Amount: 25, Status: "Paid", Date: ""},
	}

	s := ComputeSnapshot(records, fixedNow, 5)
	if s.TotalRevenue != 100 {
		t.Errorf("TotalRevenue = %v, want 100", s.TotalRevenue)
	}
	if s.MonthlyEarnings != 0 {
		t.Errorf("MonthlyEarnings = %v, want 0", s.MonthlyEarnings)
	}
}

func TestComputeSnapshot_CountsAndSumsAgree(t *testing.T) {
	records := []Record{
		{ID: "1", Amount: 0.1, Status: "Paid", Date: "2026-10-01"},
		{ID: "2", Amount: 0.2, Status: "Pending", Date: "2026-09-01"},
		{ID: "3", Amount: 1200.5, Status: "paid", Date: "2025-01-01"},
		{ID: "4", Amount: 999.99, Status: "Overdue", Date: "bad"},
		{ID: "5", Amount: 0, Status: "Paid"},
	}

	s := ComputeSnapshot(records, fixedNow, 5)

	if s.PaidInvoices+s.UnpaidInvoices != s.TotalInvoices {
		t.Errorf("paid %d + unpaid %d != total %d", s.PaidInvoices, s.UnpaidInvoices, s.TotalInvoices)
	}

	var all float64
	for _, r := range records {
		all += NormalizeAmount(r.Amount)
	}
	if got := s.TotalRevenue + s.OutstandingPayments; math.Abs(got-all) > 1e-9 {
		t.Errorf("revenue + outstanding = %v, want %v", got, all)
	}
}

func TestComputeSnapshot_NextMonthZeroesMonthlyEarnings(t *testing.T) {
	records := []Record{
		{ID: "a", Amount: 300, Status: "Paid", Date: "2026-10-01"},
		{ID: "b", Amount: 200, Status: "Paid", Date: "2026-10-18"},
	}

	if got := ComputeSnapshot(records, fixedNow, 5).MonthlyEarnings; got != 500 {
		t.Fatalf("MonthlyEarnings = %v, want 500", got)
	}

	next := fixedNow.AddDate(0, 1, 0)
	s := ComputeSnapshot(records, next, 5)
	if s.MonthlyEarnings != 0 {
		t.Errorf("MonthlyEarnings one month later = %v, want 0", s.MonthlyEarnings)
	}
	if s.TotalRevenue != 500 {
		t.Errorf("TotalRevenue = %v, want 500", s.TotalRevenue)
	}
}

func TestComputeSnapshot_SameMonthLastYearIsNotMonthly(t *testing.T) {
	records := []Record{{ID: "a", Amount: 10, Status: "Paid", Date: "2025-10-10"}}

	if got := ComputeSnapshot(records, fixedNow, 5).MonthlyEarnings; got != 0 {
		t.Errorf("MonthlyEarnings = %v, want 0", got)
	}
}

func TestRecent_LastRecordsNewestFirst(t *testing.T) {
	var records []Record
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		records = append(records, Record{ID: id, Amount: 1})
	}

	got := Recent(records, 5)
	want := []string{"7", "6", "5", "4", "3"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("Recent[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}

	if short := Recent(records[:2], 5); len(short) != 2 || short[0].ID != "2" {
		t.Errorf("Recent(2 records) = %v", short)
	}
}

func TestYearlyGrowth(t *testing.T) {
	tests := []struct {
		name       string
		records    []Record
		wantStatus string
		want       float64
	}{
		{
			name: "growth against same window last year",
			records: []Record{
				{Amount: 100, Status: "Paid", Date: "2025-03-01"},
				{Amount: 200, Status: "Paid", Date: "2025-11-01"}, // after the window
				{Amount: 150, Status: "Paid", Date: "2026-02-01"},
				{Amount: 999, Status: "Pending", Date: "2026-02-01"},
			},
			wantStatus: GrowthComputed,
			want:       50,
		},
		{
			name: "decline",
			records: []Record{
				{Amount: 400, Status: "Paid", Date: "2025-01-15"},
				{Amount: 100, Status: "Paid", Date: "2026-01-15"},
			},
			wantStatus: GrowthComputed,
			want:       -75,
		},
		{
			name: "no history",
			records: []Record{
				{Amount: 100, Status: "Paid", Date: "2026-01-15"},
			},
			wantStatus: GrowthInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, status := YearlyGrowth(tt.records, fixedNow)
			if status != tt.wantStatus {
				t.Fatalf("status = %s, want %s", status, tt.wantStatus)
			}
			if tt.wantStatus == GrowthInsufficientData {
				if got != nil {
					t.Errorf("growth = %v, want nil", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("growth = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyRevenue_TwelveMonthWindow(t *testing.T) {
	records := []Record{
		{Amount: 100, Status: "Paid", Date: "2025-11-03"},
		{Amount: 40, Status: "Paid", Date: "2026-10-01"},
		{Amount: 10, Status: "paid", Date: "2026-10-17"},
		{Amount: 70, Status: "Paid", Date: "2025-10-31"}, // before the window
		{Amount: 80, Status: "Pending", Date: "2026-10-01"},
	}

	ranges, values := MonthlyRevenue(records, fixedNow, 12)
	if len(ranges) != 12 || len(values) != 12 {
		t.Fatalf("len = %d/%d, want 12", len(ranges), len(values))
	}
	if got := ranges[0].Start.Format(DateLayout); got != "2025-11-01" {
		t.Errorf("first month = %s, want 2025-11-01", got)
	}
	if values[0] != 100 {
		t.Errorf("values[0] = %v, want 100", values[0])
	}
	if values[11] != 50 {
		t.Errorf("values[11] = %v, want 50", values[11])
	}
	for i := 1; i < 11; i++ {
		if values[i] != 0 {
			t.Errorf("values[%d] = %v, want 0", i, values[i])
		}
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
	}{
		{"$1,200.50", 1200.50},
		{1200.50, 1200.50},
		{"₹2,500", 2500},
		{"€ 99.9", 99.9},
		{json.Number("12.5"), 12.5},
		{"abc", 0},
		{"", 0},
		{".", 0},
		{"12.", 12},
		{"1.2.3", 1.2},
		{nil, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{42, 42},
		{-50.0, 50},
		{-7, 7},
		{"-$50", 50},
		{decimal.NewFromFloat(-12.5), 12.5},
	}

	for _, tt := range tests {
		if got := NormalizeAmount(tt.in); got != tt.want {
			t.Errorf("NormalizeAmount(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAmount_FormattedAndNumericAgree(t *testing.T) {
	for _, v := range []float64{0, 1, 99.99, 1200.5, 1234567.89} {
		formatted := FormatMoney(v, "USD")
		if a, b := NormalizeAmount(formatted), NormalizeAmount(v); a != b {
			t.Errorf("NormalizeAmount(%q) = %v, NormalizeAmount(%v) = %v", formatted, a, v, b)
		}
	}
}

func TestNormalizeAmount_NegativeFormsAgree(t *testing.T) {
	pairs := []struct {
		formatted string
		numeric   float64
	}{
		{"-$50", -50},
		{"-₹1,200.50", -1200.5},
		{"$-0.99", -0.99},
	}
	for _, p := range pairs {
		if a, b := NormalizeAmount(p.formatted), NormalizeAmount(p.numeric); a != b || a < 0 {
			t.Errorf("NormalizeAmount(%q) = %v, NormalizeAmount(%v) = %v", p.formatted, a, p.numeric, b)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234567.5, "USD", "$1,234,567.50"},
		{0, "INR", "₹0.00"},
		{999, "eur", "€999.00"},
		{1000, "CHF", "CHF 1,000.00"},
		{-12.345, "GBP", "-£12.35"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%v, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
