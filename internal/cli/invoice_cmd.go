package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/cli/formatter"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/grid"
	"github.com/zeabis/zeabis/internal/jobs"
)

func newInvoiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice", "inv"},
		Short:   "Invoice tracker and invoice status",
	}
	cmd.AddCommand(
		newInvoiceReportCmd(app),
		newInvoiceStatusCmd(app),
		newInvoiceOverdueCmd(app),
	)
	return cmd
}

func newInvoiceReportCmd(app *App) *cobra.Command {
	var ff filterFlags
	var out invoiceOutput
	cmd := &cobra.Command{
		Use:   "report",
		Short: "List invoices with the effort booked behind them",
		Long: `List invoices with the hours booked on their project in the window.

In a terminal the tracker opens interactively; use --plain for text output.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := ff.invoiceRequest(app.now())
			if err != nil {
				return err
			}
			return out.run(cmd, app, req, app.Services.Reports.Invoices)
		},
	}
	ff.bind(cmd.Flags())
	out.bind(cmd)
	return cmd
}

// invoiceOutput is the display flags shared by the local and remote
// invoice trackers.
type invoiceOutput struct {
	expand, expandAll, plain bool
}

func (o *invoiceOutput) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.expand, "expand", false, "show the employees behind every invoice")
	cmd.Flags().BoolVar(&o.expandAll, "expand-all", false, "also show each employee's hours per month")
	cmd.Flags().BoolVar(&o.plain, "plain", false, "print text even in a terminal")
}

func (o *invoiceOutput) run(cmd *cobra.Command, app *App, req contract.InvoiceReportRequest, load invoiceLoader) error {
	if app.interactive() && !o.plain {
		_, err := tea.NewProgram(newInvoiceView(load, req), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	}
	resp, err := load(cmd.Context(), req)
	if err != nil {
		return err
	}
	var exp grid.Expansion
	if o.expand || o.expandAll {
		for _, inv := range resp.Rows {
			exp.Toggle(inv.InvoiceID)
			if !o.expandAll {
				continue
			}
			for _, e := range inv.Employees {
				exp.Toggle(inv.InvoiceID, e.EmployeeID)
			}
		}
	}
	writeInvoices(cmd.OutOrStdout(), resp, req.Sort, &exp)
	return nil
}

func writeInvoices(w io.Writer, resp *contract.InvoiceReportResponse, sort *grid.SortState, exp *grid.Expansion) {
	fmt.Fprintln(w, formatter.Header(fmt.Sprintf("Invoices %d", resp.Year)))
	fmt.Fprintln(w)
	if len(resp.Rows) == 0 {
		fmt.Fprintln(w, "  "+formatter.Dim("No invoices found."))
		return
	}
	view := invoiceGrid{window: resp.Window, expand: exp}.build(resp.Rows, grid.ViewOptions{Sort: sort})
	fmt.Fprint(w, formatter.RenderGrid(view, -1))

	invoiced := decimal.Zero
	for _, inv := range resp.Rows {
		invoiced = invoiced.Add(inv.TotalAmount)
	}
	fmt.Fprintf(w, "\n  %s %s\n", formatter.Dim("Invoiced:"), formatter.Money(invoiced))
}

func newInvoiceStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <invoice-id> <status>",
		Short: "Set an invoice's status (Draft, Sent, Paid, Overdue, Cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := domain.InvoiceStatus(args[1])
			if !status.Valid() {
				return domain.Invalid("invalid invoice status %q", args[1])
			}
			inv, err := app.Services.Invoices.SetStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(inv.Number), formatter.InvoicePill(inv.Status))
			return nil
		},
	}
}

func newInvoiceOverdueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "Mark sent invoices past their due date as overdue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			job := jobs.NewOverdueJob(app.Services.Invoices, app.logger()).WithClock(app.now)
			n, err := job.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s marked overdue\n", formatter.Count(n, "invoice"))
			return nil
		},
	}
}
