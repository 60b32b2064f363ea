package seed

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zeabis/zeabis/internal/domain"
)

// Validate checks the whole file before anything is written and returns
// every problem found.
func Validate(f *File) []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	date := func(field, v string, required bool) {
		if v == "" {
			if required {
				add("%s is required", field)
			}
			return
		}
		if _, err := domain.ParseDate(v); err != nil {
			add("%s: invalid date %q (expected YYYY-MM-DD)", field, v)
		}
	}
	money := func(field, v string, required bool) {
		if v == "" {
			if required {
				add("%s is required", field)
			}
			return
		}
		if _, err := decimal.NewFromString(v); err != nil {
			add("%s: invalid amount %q", field, v)
		}
	}
	refs := func(kind string, n int, ref func(int) string) map[string]bool {
		seen := make(map[string]bool, n)
		for i := range n {
			r := ref(i)
			switch {
			case r == "":
				add("%s[%d].ref is required", kind, i)
			case seen[r]:
				add("%s[%d].ref %q is duplicated", kind, i, r)
			}
			seen[r] = true
		}
		return seen
	}

	emails := map[string]bool{}
	for i, u := range f.Users {
		if u.Email == "" || u.Password == "" {
			add("users[%d]: email and password are required", i)
		}
		if emails[u.Email] {
			add("users[%d].email %q is duplicated", i, u.Email)
		}
		emails[u.Email] = true
		if u.Role != "" && !domain.UserRole(u.Role).Valid() {
			add("users[%d].role: invalid value %q", i, u.Role)
		}
	}

	customers := refs("customers", len(f.Customers), func(i int) string { return f.Customers[i].Ref })
	employees := refs("employees", len(f.Employees), func(i int) string { return f.Employees[i].Ref })
	projects := refs("projects", len(f.Projects), func(i int) string { return f.Projects[i].Ref })
	proposals := refs("proposals", len(f.Proposals), func(i int) string { return f.Proposals[i].Ref })
	pos := refs("purchase_orders", len(f.PurchaseOrders), func(i int) string { return f.PurchaseOrders[i].Ref })

	for i, e := range f.Employees {
		date(fmt.Sprintf("employees[%d].hire_date", i), e.HireDate, false)
		money(fmt.Sprintf("employees[%d].hourly_rate", i), e.HourlyRate, true)
	}
	for i, p := range f.Projects {
		if !customers[p.Customer] {
			add("projects[%d].customer: unknown ref %q", i, p.Customer)
		}
		if p.Status != "" && !domain.ProjectStatus(p.Status).Valid() {
			add("projects[%d].status: invalid value %q", i, p.Status)
		}
		date(fmt.Sprintf("projects[%d].start_date", i), p.StartDate, false)
		date(fmt.Sprintf("projects[%d].end_date", i), p.EndDate, false)
		money(fmt.Sprintf("projects[%d].budget", i), p.Budget, false)
		for j, m := range p.Team {
			if !employees[m.Employee] {
				add("projects[%d].team[%d].employee: unknown ref %q", i, j, m.Employee)
			}
		}
	}
	for i, p := range f.Proposals {
		if !projects[p.Project] {
			add("proposals[%d].project: unknown ref %q", i, p.Project)
		}
		if p.Status != "" && !domain.DocumentStatus(p.Status).Valid() {
			add("proposals[%d].status: invalid value %q", i, p.Status)
		}
		date(fmt.Sprintf("proposals[%d].date", i), p.Date, false)
		money(fmt.Sprintf("proposals[%d].amount", i), p.Amount, true)
	}
	for i, po := range f.PurchaseOrders {
		if !projects[po.Project] {
			add("purchase_orders[%d].project: unknown ref %q", i, po.Project)
		}
		if po.Proposal != "" && !proposals[po.Proposal] {
			add("purchase_orders[%d].proposal: unknown ref %q", i, po.Proposal)
		}
		if po.Status != "" && !domain.DocumentStatus(po.Status).Valid() {
			add("purchase_orders[%d].status: invalid value %q", i, po.Status)
		}
		date(fmt.Sprintf("purchase_orders[%d].date", i), po.Date, false)
		money(fmt.Sprintf("purchase_orders[%d].bill_rate", i), po.BillRate, true)
		money(fmt.Sprintf("purchase_orders[%d].amount", i), po.Amount, false)
	}
	for i, ts := range f.Timesheets {
		if !employees[ts.Employee] {
			add("timesheets[%d].employee: unknown ref %q", i, ts.Employee)
		}
		if !projects[ts.Project] {
			add("timesheets[%d].project: unknown ref %q", i, ts.Project)
		}
		date(fmt.Sprintf("timesheets[%d].date", i), ts.Date, true)
		if ts.Hours <= 0 {
			add("timesheets[%d].hours: must be greater than 0, got %v", i, ts.Hours)
		}
	}
	for i, inv := range f.Invoices {
		if inv.PO != "" && !pos[inv.PO] {
			add("invoices[%d].po: unknown ref %q", i, inv.PO)
		}
		if inv.Status != "" && !domain.InvoiceStatus(inv.Status).Valid() {
			add("invoices[%d].status: invalid value %q", i, inv.Status)
		}
		date(fmt.Sprintf("invoices[%d].date", i), inv.Date, true)
		date(fmt.Sprintf("invoices[%d].due_date", i), inv.DueDate, false)
		money(fmt.Sprintf("invoices[%d].total", i), inv.Total, true)
		money(fmt.Sprintf("invoices[%d].tax", i), inv.Tax, false)
		for j, d := range inv.Details {
			money(fmt.Sprintf("invoices[%d].details[%d].quantity", i, j), d.Quantity, true)
			money(fmt.Sprintf("invoices[%d].details[%d].unit_price", i, j), d.UnitPrice, true)
		}
	}
	return errs
}
