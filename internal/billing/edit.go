package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/domain"
)

// EditSession stages month-hour edits to one billing row. The canonical rows
// are untouched until Commit; Cancel drops the staged copy.
type EditSession struct {
	projectID string
	original  ProjectBilling
	staged    ProjectBilling
	dirty     bool
}

// Begin starts editing the row with projectID.
func Begin(rows []ProjectBilling, projectID string) (*EditSession, error) {
	for _, r := range rows {
		if r.ProjectID == projectID {
			return &EditSession{projectID: projectID, original: r.Clone(), staged: r.Clone()}, nil
		}
	}
	return nil, domain.NotFound("Billing row")
}

// SetMonthHours stages project hours for the bucket with the given key
// ("2024-03") or label ("Mar 2024") and returns the recomputed totals.
// Employee hours booked in that month are scaled to the new figure so the
// breakdown keeps summing to the project; a month nobody booked is priced
// at the PO bill rate.
func (s *EditSession) SetMonthHours(month string, hours float64) (ProjectTotals, error) {
	i, err := s.monthIndex(month, hours)
	if err != nil {
		return ProjectTotals{}, err
	}
	attributed := 0.0
	for _, e := range s.staged.Employees {
		if i < len(e.Months) {
			attributed += e.Months[i].Hours
		}
	}
	amount := decimal.Zero
	if attributed > 0 {
		ratio := hours / attributed
		for j := range s.staged.Employees {
			if i >= len(s.staged.Employees[j].Months) || s.staged.Employees[j].Months[i].Hours == 0 {
				continue
			}
			b := &s.staged.Employees[j].Months[i]
			b.Hours *= ratio
			b.Amount = price(s.staged.Employees[j].BillRate, b.Hours)
			amount = amount.Add(b.Amount)
		}
	} else {
		amount = price(s.staged.BillRate, hours)
	}
	s.staged.Months[i].Hours = hours
	s.staged.Months[i].Amount = amount
	s.dirty = true
	return s.staged.Totals(), nil
}

// SetEmployeeMonthHours stages one employee's hours for a month. The
// project bucket moves by the same hours and amount.
func (s *EditSession) SetEmployeeMonthHours(employeeID, month string, hours float64) (ProjectTotals, error) {
	i, err := s.monthIndex(month, hours)
	if err != nil {
		return ProjectTotals{}, err
	}
	for j, e := range s.staged.Employees {
		if e.EmployeeID != employeeID || i >= len(e.Months) {
			continue
		}
		b := &s.staged.Employees[j].Months[i]
		amount := price(e.BillRate, hours)
		p := &s.staged.Months[i]
		p.Hours += hours - b.Hours
		p.Amount = p.Amount.Add(amount.Sub(b.Amount))
		b.Hours, b.Amount = hours, amount
		s.dirty = true
		return s.staged.Totals(), nil
	}
	return ProjectTotals{}, domain.NotFound("Employee")
}

func (s *EditSession) monthIndex(month string, hours float64) (int, error) {
	if hours < 0 {
		return 0, domain.Invalid("hours must not be negative")
	}
	for i, m := range s.staged.Months {
		if m.Key == month || m.Month == month {
			return i, nil
		}
	}
	return 0, domain.Invalid("month %q is not in the reporting window", month)
}

func price(rate decimal.Decimal, hours float64) decimal.Decimal {
	return rate.Mul(decimal.NewFromFloat(hours)).Round(2)
}

// Staged returns a copy of the staged row.
func (s *EditSession) Staged() ProjectBilling { return s.staged.Clone() }

// Totals returns the aggregates of the staged row.
func (s *EditSession) Totals() ProjectTotals { return s.staged.Totals() }

func (s *EditSession) Dirty() bool { return s.dirty }

// Commit returns a new row slice with the staged row in place of the
// original. rows itself is not modified.
func (s *EditSession) Commit(rows []ProjectBilling) ([]ProjectBilling, error) {
	out := make([]ProjectBilling, len(rows))
	found := false
	for i, r := range rows {
		if r.ProjectID == s.projectID {
			out[i] = s.staged.Clone()
			found = true
			continue
		}
		out[i] = r
	}
	if !found {
		return nil, fmt.Errorf("committing edit: %w", domain.NotFound("Billing row"))
	}
	s.original = s.staged.Clone()
	s.dirty = false
	return out, nil
}

// Cancel discards staged edits and returns the row as it was when the
// session began.
func (s *EditSession) Cancel() ProjectBilling {
	s.staged = s.original.Clone()
	s.dirty = false
	return s.original.Clone()
}
