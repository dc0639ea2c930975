package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
)

var listFilter models.InvoiceFilter

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "List and update invoices",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices in store order",
	Example: `  invoicectl invoices list
  invoicectl invoices list --status pending --period this_month
  invoicectl invoices list -q acme`,
	Args: cobra.NoArgs,
	RunE: runInvoicesList,
}

var markPaidCmd = &cobra.Command{
	Use:   "mark-paid [invoice-id]",
	Short: "Mark an invoice as paid",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkPaid,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep-overdue",
	Short: "Move pending invoices past their due date to Overdue",
	Args:  cobra.NoArgs,
	RunE:  runSweep,
}

func init() {
	invoicesListCmd.Flags().StringVarP(&listFilter.Query, "query", "q", "", "Substring of invoice id or client")
	invoicesListCmd.Flags().StringVar(&listFilter.Status, "status", "", "Paid, Pending or Overdue")
	invoicesListCmd.Flags().StringVar(&listFilter.Period, "period", "", "this_month, last_30_days, ... or YYYY-MM")

	invoicesCmd.AddCommand(invoicesListCmd, markPaidCmd)
	rootCmd.AddCommand(invoicesCmd, sweepCmd)
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	module, closeFn, err := openModule(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	invoices, err := module.Invoices.List(ctx, listFilter)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(invoices)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tDATE\tDUE\tSTATUS\tAMOUNT")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.Client, inv.Date, inv.DueDate, inv.Status,
			analytics.FormatMoney(inv.Amount.Float64(), inv.Currency))
	}
	return w.Flush()
}

func runMarkPaid(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	module, closeFn, err := openModule(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	_, changed, err := module.Invoices.MarkPaid(ctx, args[0])
	if err != nil {
		return err
	}
	if !changed {
		fmt.Printf("No change: %s not found or already paid\n", args[0])
		return nil
	}
	fmt.Printf("✅ %s marked as paid\n", args[0])
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	module, closeFn, err := openModule(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	n, err := module.Invoices.SweepOverdue(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %d invoice(s) marked overdue\n", n)
	return nil
}
