package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRecentLimit is the number of records in Snapshot.RecentInvoices
const DefaultRecentLimit = 5

// IsPaid reports whether a status counts as paid. Comparison is case-insensitive;
// every other value, recognised or not, is outstanding.
func IsPaid(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "paid")
}

// ComputeSnapshot derives the dashboard summary from the full record list.
// It performs no I/O and does not modify records.
func ComputeSnapshot(records []Record, now time.Time, recentLimit int) Snapshot {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	thisMonth := MonthRange(now)

	var revenue, outstanding, monthly decimal.Decimal
	paid := 0

	for _, r := range records {
		amount := decimal.NewFromFloat(NormalizeAmount(r.Amount))

		if !IsPaid(r.Status) {
			outstanding = outstanding.Add(amount)
			continue
		}

		paid++
		revenue = revenue.Add(amount)

		// malformed dates only drop out of the monthly sum
		if issued, ok := ParseDate(r.Date, now.Location()); ok && thisMonth.Contains(issued) {
			monthly = monthly.Add(amount)
		}
	}

	growth, status := YearlyGrowth(records, now)

	return Snapshot{
		TotalInvoices:       len(records),
		PaidInvoices:        paid,
		UnpaidInvoices:      len(records) - paid,
		TotalRevenue:        revenue.InexactFloat64(),
		OutstandingPayments: outstanding.InexactFloat64(),
		MonthlyEarnings:     monthly.InexactFloat64(),
		YearlyGrowth:        growth,
		YearlyGrowthStatus:  status,
		RecentInvoices:      Recent(records, recentLimit),
		GeneratedAt:         now,
	}
}

// Recent returns the last n records in store order, newest first
func Recent(records []Record, n int) []RecentInvoice {
	if n > len(records) {
		n = len(records)
	}

	out := make([]RecentInvoice, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		r := records[i]
		out = append(out, RecentInvoice{
			ID:     r.ID,
			Client: r.Client,
			Amount: NormalizeAmount(r.Amount),
			Date:   r.Date,
			Status: r.Status,
		})
	}
	return out
}

// YearlyGrowth compares paid revenue issued from Jan 1 through now against the
// same window one year earlier, as a percentage rounded to two places.
// When the earlier window has no paid revenue the result is nil with status
// GrowthInsufficientData.
func YearlyGrowth(records []Record, now time.Time) (*float64, string) {
	current := YearToDate(now)
	previous := YearToDate(now.AddDate(-1, 0, 0))

	var cur, prev decimal.Decimal
	for _, r := range records {
		if !IsPaid(r.Status) {
			continue
		}
		issued, ok := ParseDate(r.Date, now.Location())
		if !ok {
			continue
		}

		amount := decimal.NewFromFloat(NormalizeAmount(r.Amount))
		switch {
		case current.Contains(issued):
			cur = cur.Add(amount)
		case previous.Contains(issued):
			prev = prev.Add(amount)
		}
	}

	if !prev.IsPositive() {
		return nil, GrowthInsufficientData
	}

	pct := cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	return &pct, GrowthComputed
}

// MonthlyRevenue sums paid amounts per issue month for the n months ending with now's month.
// Months without revenue are zero.
func MonthlyRevenue(records []Record, now time.Time, n int) ([]DateRange, []float64) {
	ranges := LastMonths(now, n)
	sums := make([]decimal.Decimal, len(ranges))

	for _, r := range records {
		if !IsPaid(r.Status) {
			continue
		}
		issued, ok := ParseDate(r.Date, now.Location())
		if !ok {
			continue
		}
		for i, rg := range ranges {
			if rg.Contains(issued) {
				sums[i] = sums[i].Add(decimal.NewFromFloat(NormalizeAmount(r.Amount)))
				break
			}
		}
	}

	values := make([]float64, len(sums))
	for i, s := range sums {
		values[i] = s.InexactFloat64()
	}
	return ranges, values
}
