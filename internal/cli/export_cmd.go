package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/export"
	"github.com/zeabis/zeabis/internal/grid"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write tracker reports to XLSX workbooks",
	}
	cmd.AddCommand(newExportBillingCmd(app), newExportInvoicesCmd(app))
	return cmd
}

func newExportBillingCmd(app *App) *cobra.Command {
	var ff filterFlags
	var out string
	var asShown, monthly bool
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Export the billing tracker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := ff.billingRequest(app.now())
			if err != nil {
				return err
			}
			resp, err := app.Services.Reports.Billing(cmd.Context(), req)
			if err != nil {
				return err
			}
			sheets := export.BillingSheets(resp)
			if asShown {
				view := billingGrid{window: resp.Window, monthly: monthly}.build(resp.Rows, grid.ViewOptions{Sort: req.Sort})
				sheets = []export.Sheet{export.FromView("Billing", view)}
			}
			if out == "" {
				out = fmt.Sprintf("billing-%d.xlsx", resp.Year)
			}
			if err := writeWorkbook(out, sheets); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d projects to %s\n", len(resp.Rows), out)
			return nil
		},
	}
	ff.bind(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default billing-<year>.xlsx)")
	cmd.Flags().BoolVar(&asShown, "as-shown", false, "export the rendered tracker columns instead of the raw sheets")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "with --as-shown, include one column per month")
	return cmd
}

func newExportInvoicesCmd(app *App) *cobra.Command {
	var ff filterFlags
	var out string
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Export the invoice tracker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := ff.invoiceRequest(app.now())
			if err != nil {
				return err
			}
			resp, err := app.Services.Reports.Invoices(cmd.Context(), req)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("invoices-%d.xlsx", resp.Year)
			}
			if err := writeWorkbook(out, export.InvoiceSheets(resp)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d invoices to %s\n", len(resp.Rows), out)
			return nil
		},
	}
	ff.bind(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default invoices-<year>.xlsx)")
	return cmd
}

func writeWorkbook(path string, sheets []export.Sheet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return export.Write(f, sheets...)
}
