package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/cli/formatter"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/grid"
)

func newBillingCmd(app *App) *cobra.Command {
	var ff filterFlags
	var expand, expandEmployees, monthly, plain bool

	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Show the billing tracker",
		Long: `Show one row per project with a PO: hours burned against PO hours,
amounts invoiced and the employees behind the effort.

In a terminal the tracker opens interactively; use --plain for text output.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := ff.billingRequest(app.now())
			if err != nil {
				return err
			}
			if app.interactive() && !plain {
				view := newBillingView(app.Services.Reports.Billing, req, monthly)
				_, err := tea.NewProgram(view, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
				return err
			}

			resp, err := app.Services.Reports.Billing(cmd.Context(), req)
			if err != nil {
				return err
			}
			exp := &grid.Expansion{}
			if expand || expandEmployees {
				exp = expandAll(resp.Rows, expandEmployees)
			}
			writeBilling(cmd.OutOrStdout(), resp, req.Sort, exp, monthly)
			return nil
		},
	}

	ff.bind(cmd.Flags())
	cmd.Flags().BoolVar(&expand, "expand", false, "show the employee breakdown of every project")
	cmd.Flags().BoolVar(&expandEmployees, "expand-all", false, "also show each employee's hours per month")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "add one hours column per month of the window")
	cmd.Flags().BoolVar(&plain, "plain", false, "print text even in a terminal")
	return cmd
}

func writeBilling(w io.Writer, resp *contract.BillingReportResponse, sort *grid.SortState, exp *grid.Expansion, monthly bool) {
	fmt.Fprintln(w, formatter.Header(fmt.Sprintf("Billing tracker %d", resp.Year)))
	if !resp.Filters.IsZero() {
		fmt.Fprintln(w, formatter.Dim(resp.Filters.Encode().Encode()))
	}
	fmt.Fprintln(w)

	view := billingGrid{window: resp.Window, monthly: monthly, expand: exp}.build(resp.Rows, grid.ViewOptions{Sort: sort})
	fmt.Fprint(w, formatter.RenderGrid(view, -1))
	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryBox(resp.Summary))
}

func summaryBox(s billing.Summary) string {
	return formatter.RenderBox("Summary", formatter.KeyValues(
		[2]string{"PO hours", billing.FormatHours(s.TotalPOHours)},
		[2]string{"Burned hours", billing.FormatHours(s.TotalBurnedHours)},
		[2]string{"Avg burn", formatter.RenderBurn(s.AvgBurnRate, 20)},
		[2]string{"POs", formatter.Count(s.TotalPOs, "PO")},
		[2]string{"Active projects", formatter.Count(s.ActiveProjects, "project")},
		[2]string{"Employees", formatter.Count(s.TotalEmployees, "assignment")},
	))
}

// billingLoader fetches the tracker; the local report service and the API
// client both satisfy it.
type billingLoader func(ctx context.Context, req contract.BillingReportRequest) (*contract.BillingReportResponse, error)
