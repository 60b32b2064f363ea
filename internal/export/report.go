package export

import (
	"github.com/shopspring/decimal"

	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/contract"
)

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func windowLabels(window []billing.MonthBucket) []string {
	out := make([]string, len(window))
	for i, m := range window {
		out[i] = m.Month
	}
	return out
}

func monthHours(months []billing.MonthBucket) []any {
	out := make([]any, len(months))
	for i, m := range months {
		out[i] = m.Hours
	}
	return out
}

// BillingSheets lays the billing tracker out as three sheets: one row per
// project, one row per project employee, and the summary cards.
func BillingSheets(resp *contract.BillingReportResponse) []Sheet {
	months := windowLabels(resp.Window)

	projects := Sheet{Name: "Projects", Headers: append([]string{
		"Project", "Customer", "PM", "Project Status", "PO", "PO Status", "Invoice Status",
		"PO Hours", "Bill Rate", "PO Amount", "Invoiced", "Balance To Invoice",
		"Burned Hours", "Balance Hours", "Burned %",
	}, months...)}
	employees := Sheet{Name: "Employees", Headers: append([]string{
		"Project", "Employee", "Rate", "Hours", "Amount",
	}, months...)}

	for _, r := range resp.Rows {
		t := r.Totals()
		row := []any{
			r.Project, r.Customer, r.ProjectManager, string(r.ProjectStatus), r.POID, string(r.POStatus), r.InvoiceStatus,
			r.POHours, money(r.BillRate), money(r.POAmount), money(r.TotalInvoiced), money(t.BalanceToInvoice),
			t.TotalBurnedHours, t.BalanceHours, t.BurnedPercentage,
		}
		projects.Rows = append(projects.Rows, append(row, monthHours(r.Months)...))

		for _, e := range r.Employees {
			et := e.Totals()
			erow := []any{r.Project, e.Name, money(e.BillRate), et.TotalHours, money(et.TotalAmount)}
			employees.Rows = append(employees.Rows, append(erow, monthHours(e.Months)...))
		}
	}

	s := resp.Summary
	summary := Sheet{
		Name:    "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Year", resp.Year},
			{"Total PO Hours", s.TotalPOHours},
			{"Total Burned Hours", s.TotalBurnedHours},
			{"Avg Burn Rate %", s.AvgBurnRate},
			{"Total Employees", s.TotalEmployees},
			{"Total POs", s.TotalPOs},
			{"Active Projects", s.ActiveProjects},
		},
	}
	for _, m := range resp.MonthOverview {
		summary.Rows = append(summary.Rows, []any{m.Month + " hours", m.Hours})
	}
	return []Sheet{projects, employees, summary}
}

// InvoiceSheets lays the invoice tracker out as one sheet.
func InvoiceSheets(resp *contract.InvoiceReportResponse) []Sheet {
	sheet := Sheet{Name: "Invoices", Headers: append([]string{
		"Invoice", "Project", "Customer", "PO", "Invoice Date", "Due Date", "Status", "Amount", "Hours", "Effort Amount",
	}, windowLabels(resp.Window)...)}
	for _, r := range resp.Rows {
		t := r.Totals()
		due := ""
		if r.DueDate != nil {
			due = r.DueDate.String()
		}
		row := []any{
			r.InvoiceNumber, r.Project, r.Customer, r.POID, r.InvoiceDate.String(), due, string(r.Status),
			money(r.TotalAmount), t.TotalHours, money(t.EffortAmount),
		}
		sheet.Rows = append(sheet.Rows, append(row, monthHours(r.Months)...))
	}
	return []Sheet{sheet}
}
