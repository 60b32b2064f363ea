package billing

import (
	"github.com/shopspring/decimal"
)

// Fact is billable hours of one employee on one project in one month.
// Month is the bucket key, e.g. "2024-03".
type Fact struct {
	ProjectID    string
	EmployeeID   string
	EmployeeName string
	Rate         decimal.Decimal
	Month        string
	Hours        float64
}

// projectFacts groups facts by project and then employee, preserving the
// order employees first appear in.
type projectFacts struct {
	order []string
	byEmp map[string][]Fact
}

func groupFacts(facts []Fact) map[string]*projectFacts {
	out := map[string]*projectFacts{}
	for _, f := range facts {
		pf, ok := out[f.ProjectID]
		if !ok {
			pf = &projectFacts{byEmp: map[string][]Fact{}}
			out[f.ProjectID] = pf
		}
		if _, seen := pf.byEmp[f.EmployeeID]; !seen {
			pf.order = append(pf.order, f.EmployeeID)
		}
		pf.byEmp[f.EmployeeID] = append(pf.byEmp[f.EmployeeID], f)
	}
	return out
}

// breakdown fills a copy of window per employee and the sum across them.
// Facts outside the window are ignored and employees without hours in the
// window are left out.
func breakdown(pf *projectFacts, window []MonthBucket) ([]MonthBucket, []EmployeeBilling) {
	total := cloneMonths(window)
	if pf == nil {
		return total, []EmployeeBilling{}
	}
	index := make(map[string]int, len(window))
	for i, m := range window {
		index[m.Key] = i
	}

	employees := make([]EmployeeBilling, 0, len(pf.order))
	for _, empID := range pf.order {
		facts := pf.byEmp[empID]
		emp := EmployeeBilling{
			EmployeeID: empID,
			Name:       facts[0].EmployeeName,
			BillRate:   facts[0].Rate,
			Months:     cloneMonths(window),
		}
		hasHours := false
		for _, f := range facts {
			i, ok := index[f.Month]
			if !ok {
				continue
			}
			amount := price(f.Rate, f.Hours)
			emp.Months[i].Hours += f.Hours
			emp.Months[i].Amount = emp.Months[i].Amount.Add(amount)
			total[i].Hours += f.Hours
			total[i].Amount = total[i].Amount.Add(amount)
			hasHours = true
		}
		if hasHours {
			employees = append(employees, emp)
		}
	}
	return total, employees
}

// AttachProjects returns copies of rows with month buckets and employee
// breakdowns filled from facts over window. The invoice status is derived
// from the PO amount and the invoiced total.
func AttachProjects(rows []ProjectBilling, facts []Fact, window []MonthBucket) []ProjectBilling {
	grouped := groupFacts(facts)
	out := make([]ProjectBilling, len(rows))
	for i, r := range rows {
		r = r.Clone()
		r.Months, r.Employees = breakdown(grouped[r.ProjectID], window)
		r.InvoiceStatus = InvoiceStatusFor(r.POAmount, r.TotalInvoiced)
		out[i] = r
	}
	return out
}

// AttachInvoices is AttachProjects for invoice-tracker rows.
func AttachInvoices(rows []InvoiceBilling, facts []Fact, window []MonthBucket) []InvoiceBilling {
	grouped := groupFacts(facts)
	out := make([]InvoiceBilling, len(rows))
	for i, r := range rows {
		r.Months, r.Employees = breakdown(grouped[r.ProjectID], window)
		out[i] = r
	}
	return out
}
