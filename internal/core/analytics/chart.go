package analytics

import (
	"fmt"
	"math"
)

// RevenueChart converts a monthly revenue series to area chart format
func RevenueChart(ranges []DateRange, values []float64) ChartData {
	labels := make([]string, len(ranges))
	for i, r := range ranges {
		labels[i] = r.Start.Format("Jan 2006")
	}

	series := make([]float64, len(values))
	copy(series, values)

	return ChartData{
		Type:   "area",
		Labels: labels,
		Data: []ChartSeries{
			{
				Name:   "revenue",
				Values: series,
				Color:  "#2563eb",
			},
		},
	}
}

// StatusPieChart splits a snapshot's amounts into paid and outstanding
func StatusPieChart(s Snapshot) PieChartData {
	return PieChartData{
		Type:   "donut",
		Labels: []string{"Paid", "Outstanding"},
		Values: []float64{s.TotalRevenue, s.OutstandingPayments},
		Colors: []string{"#16a34a", "#f59e0b"},
	}
}

// ToStatCards converts a snapshot to the dashboard's summary cards
func ToStatCards(s Snapshot, currency string) []StatCard {
	growthCard := StatCard{
		Title:       "Yearly Growth",
		Value:       "n/a",
		Description: "Not enough history",
		ChangeLabel: "vs last year",
		Trend:       "neutral",
		Icon:        "trending-up",
	}
	if s.YearlyGrowth != nil {
		g := *s.YearlyGrowth
		growthCard.Value = formatStatValue(g, "percentage", currency)
		growthCard.Description = "Compared to last year"
		growthCard.Change = g
		growthCard.Trend = trend(g)
	}

	revenueCard := StatCard{
		Title:       "Total Revenue",
		Value:       formatStatValue(s.TotalRevenue, "currency", currency),
		Description: "All paid invoices",
		ChangeLabel: "vs last year",
		Trend:       growthCard.Trend,
		Icon:        "wallet",
	}
	if s.YearlyGrowth != nil {
		revenueCard.Change = *s.YearlyGrowth
	}

	outstanding := StatCard{
		Title:       "Outstanding Payments",
		Value:       formatStatValue(s.OutstandingPayments, "currency", currency),
		Description: "No invoices yet",
		ChangeLabel: "of all invoices",
		Trend:       "neutral",
		Icon:        "alert-circle",
	}
	if s.UnpaidInvoices > 0 {
		outstanding.Description = fmt.Sprintf("%d invoices pending", s.UnpaidInvoices)
		outstanding.Change = math.Round(float64(s.UnpaidInvoices) / float64(s.TotalInvoices) * 100)
	}

	return []StatCard{
		revenueCard,
		outstanding,
		{
			Title:       "Monthly Earnings",
			Value:       formatStatValue(s.MonthlyEarnings, "currency", currency),
			Description: "This month",
			Trend:       "neutral",
			Icon:        "credit-card",
		},
		growthCard,
		{
			Title:       "Total Invoices",
			Value:       formatStatValue(float64(s.TotalInvoices), "number", currency),
			Description: fmt.Sprintf("%d paid, %d unpaid", s.PaidInvoices, s.UnpaidInvoices),
			Trend:       "neutral",
			Icon:        "file-text",
		},
	}
}

func trend(change float64) string {
	switch {
	case change > 0:
		return "up"
	case change < 0:
		return "down"
	default:
		return "neutral"
	}
}

func formatStatValue(num float64, format, currency string) string {
	switch format {
	case "currency":
		return FormatMoney(num, currency)
	case "percentage":
		return fmt.Sprintf("%.1f%%", num)
	case "number":
		if num >= 1000000 {
			return fmt.Sprintf("%.1fM", num/1000000)
		} else if num >= 1000 {
			return fmt.Sprintf("%.1fK", num/1000)
		}
		return fmt.Sprintf("%.0f", num)
	default:
		return fmt.Sprintf("%.2f", num)
	}
}
