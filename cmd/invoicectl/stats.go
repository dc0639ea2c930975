package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard metrics",
	Example: `  invoicectl stats
  invoicectl stats --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	module, closeFn, err := openModule(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	snap, err := module.Dashboard.Snapshot(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	currency := module.Profile.Currency(ctx, "USD")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, card := range analytics.ToStatCards(snap, currency) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", card.Title, card.Value, card.Description)
	}
	if len(snap.RecentInvoices) > 0 {
		fmt.Fprintln(w, "\nRecent invoices\t\t")
		for _, inv := range snap.RecentInvoices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", inv.ID, inv.Client, analytics.FormatMoney(inv.Amount, currency), inv.Status)
		}
	}
	return w.Flush()
}
