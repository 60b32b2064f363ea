package cli

import (
	"fmt"
	"slices"

	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/cli/formatter"
	"github.com/zeabis/zeabis/internal/grid"
)

// billingGrid is the billing tracker: projects, the employees who booked on
// an expanded project, and the month breakdown of an expanded employee.
// Month columns are opt-in since a full year does not fit a terminal.
type billingGrid struct {
	window  []billing.MonthBucket
	monthly bool
	expand  *grid.Expansion
	// cursor is the path of the highlighted nested row, if any.
	cursor []string
}

func (g billingGrid) projects() *grid.Table[billing.ProjectBilling] {
	cols := billing.ProjectColumns()
	if g.monthly {
		cols = append(cols, billing.MonthColumns(g.window, func(p billing.ProjectBilling) []billing.MonthBucket { return p.Months })...)
	}
	return &grid.Table[billing.ProjectBilling]{
		Columns:    cols,
		RowID:      func(p billing.ProjectBilling) string { return p.ProjectID },
		Expandable: true,
		RenderExpanded: func(p billing.ProjectBilling) string {
			if len(p.Employees) == 0 {
				return formatter.Dim("No hours booked in this window")
			}
			view := employeeView(p.ProjectID, p.Employees, g.window, g.monthly, g.expand)
			return formatter.RenderGrid(view, cursorIndex(view, g.cursor))
		},
	}
}

func (g billingGrid) build(rows []billing.ProjectBilling, opts grid.ViewOptions) grid.View {
	opts.Expansion = g.expand
	return g.projects().Build(rows, opts)
}

// paths lists the path of every row on screen, top to bottom.
func (g billingGrid) paths(rows []billing.ProjectBilling, opts grid.ViewOptions) [][]string {
	g.cursor = nil
	return visiblePaths(g.build(rows, opts), func(id string) grid.View {
		for _, p := range rows {
			if p.ProjectID == id {
				return employeeView(p.ProjectID, p.Employees, g.window, g.monthly, g.expand)
			}
		}
		return grid.View{}
	})
}

// invoiceGrid is the invoice tracker with the same employee level as the
// billing tracker, keyed under the invoice.
type invoiceGrid struct {
	window []billing.MonthBucket
	expand *grid.Expansion
	cursor []string
}

func (g invoiceGrid) invoices() *grid.Table[billing.InvoiceBilling] {
	return &grid.Table[billing.InvoiceBilling]{
		Columns:    billing.InvoiceColumns(),
		RowID:      func(i billing.InvoiceBilling) string { return i.InvoiceID },
		Expandable: true,
		RenderExpanded: func(i billing.InvoiceBilling) string {
			if len(i.Employees) == 0 {
				return formatter.Dim("No hours booked on this project in this window")
			}
			view := employeeView(i.InvoiceID, i.Employees, g.window, false, g.expand)
			return formatter.RenderGrid(view, cursorIndex(view, g.cursor))
		},
	}
}

func (g invoiceGrid) build(rows []billing.InvoiceBilling, opts grid.ViewOptions) grid.View {
	opts.Expansion = g.expand
	return g.invoices().Build(rows, opts)
}

func (g invoiceGrid) paths(rows []billing.InvoiceBilling, opts grid.ViewOptions) [][]string {
	g.cursor = nil
	return visiblePaths(g.build(rows, opts), func(id string) grid.View {
		for _, i := range rows {
			if i.InvoiceID == id {
				return employeeView(i.InvoiceID, i.Employees, g.window, false, g.expand)
			}
		}
		return grid.View{}
	})
}

// employeeView builds the employee rows nested under parentID. An expanded
// employee shows the months it booked hours in.
func employeeView(parentID string, emps []billing.EmployeeBilling, window []billing.MonthBucket, monthly bool, exp *grid.Expansion) grid.View {
	cols := billing.EmployeeColumns()
	if monthly {
		cols = append(cols, billing.MonthColumns(window, func(e billing.EmployeeBilling) []billing.MonthBucket { return e.Months })...)
	}
	t := &grid.Table[billing.EmployeeBilling]{
		Columns:        cols,
		RowID:          func(e billing.EmployeeBilling) string { return e.EmployeeID },
		Expandable:     true,
		RenderExpanded: func(e billing.EmployeeBilling) string { return monthBreakdown(e.Months) },
	}
	return t.Build(emps, grid.ViewOptions{Parent: []string{parentID}, Expansion: exp})
}

func monthBreakdown(months []billing.MonthBucket) string {
	var items []formatter.TreeItem
	for _, m := range months {
		if m.Hours == 0 {
			continue
		}
		items = append(items, formatter.TreeItem{
			Title:  m.Month,
			Level:  1,
			Detail: fmt.Sprintf("%sh · %s", billing.FormatHours(m.Hours), formatter.Money(m.Amount)),
		})
	}
	if len(items) == 0 {
		return formatter.Dim("No hours in this window")
	}
	items[len(items)-1].IsLast = true
	return formatter.RenderTree(items)
}

// visiblePaths flattens a two-level grid into the order rows appear on
// screen. children builds the nested view of an expanded top-level row.
func visiblePaths(top grid.View, children func(id string) grid.View) [][]string {
	var out [][]string
	for _, r := range top.Rows {
		out = append(out, r.Path)
		if !r.Expanded {
			continue
		}
		for _, c := range children(r.ID).Rows {
			out = append(out, c.Path)
		}
	}
	return out
}

// cursorIndex is the row of v at path, or -1.
func cursorIndex(v grid.View, path []string) int {
	for i, r := range v.Rows {
		if slices.Equal(r.Path, path) {
			return i
		}
	}
	return -1
}

// expandAll opens every project, and with employees every employee row too.
func expandAll(rows []billing.ProjectBilling, employees bool) *grid.Expansion {
	var exp grid.Expansion
	for _, r := range rows {
		exp.Toggle(r.ProjectID)
		if !employees {
			continue
		}
		for _, e := range r.Employees {
			exp.Toggle(r.ProjectID, e.EmployeeID)
		}
	}
	return &exp
}
