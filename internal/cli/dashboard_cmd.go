package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/cli/formatter"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Headline counts and paid revenue per month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			now := app.now()
			stats, err := app.Services.Dashboard.Stats(ctx, now)
			if err != nil {
				return err
			}
			revenue, err := app.Services.Dashboard.Revenue(ctx, now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.RenderBox("Dashboard", formatter.KeyValues(
				[2]string{"Projects", humanize.Comma(int64(stats.TotalProjects))},
				[2]string{"Customers", humanize.Comma(int64(stats.TotalCustomers))},
				[2]string{"Employees", humanize.Comma(int64(stats.TotalEmployees))},
				[2]string{fmt.Sprintf("Revenue %d", now.Year()), formatter.Money(stats.YearlyRevenue)},
			)))
			fmt.Fprintln(out)

			fmt.Fprintln(out, formatter.Header("Paid revenue"))
			if len(revenue) == 0 {
				fmt.Fprintln(out, "  "+formatter.Dim("No paid invoices in the last twelve months."))
				return nil
			}
			rows := make([][]string, len(revenue))
			for i, p := range revenue {
				label := p.Month
				if t, err := time.Parse("2006-01", p.Month); err == nil {
					label = t.Format("Jan 2006")
				}
				rows[i] = []string{label, formatter.Money(p.Revenue)}
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"Month", "Revenue"}, rows))
			return nil
		},
	}
}
