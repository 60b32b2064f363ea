package billing

import (
	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/grid"
)

func amountCell(v any, _ ProjectBilling) string {
	d, _ := v.(decimal.Decimal)
	return FormatAmount(d)
}

func hoursCell[R any](v any, _ R) string {
	h, ok := v.(float64)
	if !ok {
		return grid.Placeholder
	}
	return FormatHours(h)
}

// ProjectColumns are the billing tracker's top-level columns.
func ProjectColumns() []grid.Column[ProjectBilling] {
	return []grid.Column[ProjectBilling]{
		{Key: "project", Label: "Project", Sortable: true, Value: func(p ProjectBilling) any { return p.Project }},
		{Key: "customer", Label: "Customer", Sortable: true, Value: func(p ProjectBilling) any { return p.Customer }},
		{Key: "projectManager", Label: "PM", Sortable: true, Value: func(p ProjectBilling) any { return p.ProjectManager }},
		{Key: "projectStatus", Label: "Status", Sortable: true, Value: func(p ProjectBilling) any { return string(p.ProjectStatus) }},
		{Key: "invoiceStatus", Label: "Invoice", Sortable: true, Value: func(p ProjectBilling) any { return p.InvoiceStatus }},
		{Key: "poId", Label: "PO", Sortable: true, Value: func(p ProjectBilling) any { return p.POID }},
		{Key: "poHours", Label: "PO Hours", Sortable: true, Value: func(p ProjectBilling) any { return p.POHours }, Render: hoursCell[ProjectBilling]},
		{Key: "poAmount", Label: "PO Amount", Sortable: true, Value: func(p ProjectBilling) any { return p.POAmount }, Render: amountCell},
		{Key: "totalInvoiced", Label: "Invoiced", Sortable: true, Value: func(p ProjectBilling) any { return p.TotalInvoiced }, Render: amountCell},
		{Key: "balanceToInvoice", Label: "To Invoice", Sortable: true, Value: func(p ProjectBilling) any { return p.Totals().BalanceToInvoice }, Render: amountCell},
		{Key: "totalBurnedHours", Label: "Burned", Sortable: true, Value: func(p ProjectBilling) any { return p.Totals().TotalBurnedHours }, Render: hoursCell[ProjectBilling]},
		{Key: "balanceHours", Label: "Balance", Sortable: true, Value: func(p ProjectBilling) any { return p.Totals().BalanceHours }, Render: hoursCell[ProjectBilling]},
		{Key: "burnedPercentage", Label: "Burn %", Sortable: true, Value: func(p ProjectBilling) any { return p.Totals().BurnedPercentage },
			Render: func(v any, _ ProjectBilling) string { f, _ := v.(float64); return FormatPercent(f) }},
	}
}

// EmployeeColumns are the columns of an expanded project's employee rows.
func EmployeeColumns() []grid.Column[EmployeeBilling] {
	return []grid.Column[EmployeeBilling]{
		{Key: "name", Label: "Employee", Sortable: true, Value: func(e EmployeeBilling) any { return e.Name }},
		{Key: "billRate", Label: "Rate", Sortable: true, Value: func(e EmployeeBilling) any { return e.BillRate },
			Render: func(v any, _ EmployeeBilling) string { d, _ := v.(decimal.Decimal); return FormatAmount(d) }},
		{Key: "totalHours", Label: "Hours", Sortable: true, Value: func(e EmployeeBilling) any { return e.Totals().TotalHours }, Render: hoursCell[EmployeeBilling]},
		{Key: "totalAmount", Label: "Amount", Sortable: true, Value: func(e EmployeeBilling) any { return e.Totals().TotalAmount },
			Render: func(v any, _ EmployeeBilling) string { d, _ := v.(decimal.Decimal); return FormatAmount(d) }},
	}
}

// InvoiceColumns are the invoice tracker's top-level columns.
func InvoiceColumns() []grid.Column[InvoiceBilling] {
	amount := func(v any, _ InvoiceBilling) string { d, _ := v.(decimal.Decimal); return FormatAmount(d) }
	return []grid.Column[InvoiceBilling]{
		{Key: "invoiceNumber", Label: "Invoice", Sortable: true, Value: func(i InvoiceBilling) any { return i.InvoiceNumber }},
		{Key: "project", Label: "Project", Sortable: true, Value: func(i InvoiceBilling) any { return i.Project }},
		{Key: "customer", Label: "Customer", Sortable: true, Value: func(i InvoiceBilling) any { return i.Customer }},
		{Key: "poId", Label: "PO", Sortable: true, Value: func(i InvoiceBilling) any { return i.POID }},
		{Key: "invoiceDate", Label: "Date", Sortable: true, Value: func(i InvoiceBilling) any { return i.InvoiceDate.Time }},
		{Key: "dueDate", Label: "Due", Sortable: true, Value: func(i InvoiceBilling) any {
			if i.DueDate == nil {
				return nil
			}
			return i.DueDate.Time
		}},
		{Key: "status", Label: "Status", Sortable: true, Value: func(i InvoiceBilling) any { return string(i.Status) }},
		{Key: "totalAmount", Label: "Amount", Sortable: true, Value: func(i InvoiceBilling) any { return i.TotalAmount }, Render: amount},
		{Key: "totalHours", Label: "Hours", Sortable: true, Value: func(i InvoiceBilling) any { return i.Totals().TotalHours }, Render: hoursCell[InvoiceBilling]},
	}
}

// MonthColumns renders a window's buckets as hour columns keyed by month key.
func MonthColumns[R any](window []MonthBucket, months func(R) []MonthBucket) []grid.Column[R] {
	cols := make([]grid.Column[R], len(window))
	for i, w := range window {
		key := w.Key
		cols[i] = grid.Column[R]{
			Key: key, Label: w.Month, Sortable: true,
			Value: func(r R) any {
				for _, m := range months(r) {
					if m.Key == key {
						return m.Hours
					}
				}
				return nil
			},
			Render: hoursCell[R],
		}
	}
	return cols
}
