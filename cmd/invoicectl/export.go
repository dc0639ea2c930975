package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/export"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/services"
)

var (
	exportFormat  string
	exportOut     string
	exportInvoice string
	exportFilter  models.InvoiceFilter
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export invoices to PDF or Excel",
	Example: `  # All invoices as a spreadsheet
  invoicectl export --format excel --out invoices.xlsx

  # One invoice document
  invoicectl export --invoice INV-0007 --out INV-0007.pdf`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: pdf or excel")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to the suggested file name)")
	exportCmd.Flags().StringVar(&exportInvoice, "invoice", "", "Render a single invoice document instead of the list")
	exportCmd.Flags().StringVarP(&exportFilter.Query, "query", "q", "", "Substring of invoice id or client")
	exportCmd.Flags().StringVar(&exportFilter.Status, "status", "", "Paid, Pending or Overdue")
	exportCmd.Flags().StringVar(&exportFilter.Period, "period", "", "this_month, last_30_days, ...")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	module, closeFn, err := openModule(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	var file *services.ExportFile
	if exportInvoice != "" {
		file, err = module.Export.InvoicePDF(ctx, exportInvoice)
	} else {
		file, err = module.Export.ExportInvoices(ctx, format, exportFilter)
	}
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = file.Filename
	}
	if err := os.WriteFile(out, file.Content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("✅ Wrote %s (%d bytes)\n", out, len(file.Content))
	return nil
}
