package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/service"
)

// Result counts what Apply created.
type Result struct {
	Users          int
	Customers      int
	Employees      int
	Projects       int
	TeamMembers    int
	Proposals      int
	PurchaseOrders int
	Timesheets     int
	Invoices       int
	InvoiceDetails int
}

func (r Result) String() string {
	return fmt.Sprintf("%d users, %d customers, %d employees, %d projects (%d team members), %d proposals, %d POs, %d timesheets, %d invoices (%d lines)",
		r.Users, r.Customers, r.Employees, r.Projects, r.TeamMembers, r.Proposals,
		r.PurchaseOrders, r.Timesheets, r.Invoices, r.InvoiceDetails)
}

// Apply validates f and creates its records in dependency order. Records
// are written one service call at a time, so a failure part way leaves the
// earlier records in place.
func Apply(ctx context.Context, svc service.Services, f *File) (*Result, error) {
	if errs := Validate(f); len(errs) > 0 {
		return nil, fmt.Errorf("invalid seed: %w", errors.Join(errs...))
	}
	a := &applier{svc: svc, ids: map[string]string{}}
	steps := []func(context.Context, *File) error{
		a.users, a.customers, a.employees, a.projects,
		a.proposals, a.purchaseOrders, a.timesheets, a.invoices,
	}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return &a.res, err
		}
	}
	return &a.res, nil
}

type applier struct {
	svc service.Services
	// ids maps "<kind>:<ref>" to the created entity id.
	ids map[string]string
	res Result
}

func (a *applier) id(kind, ref string) string {
	return a.ids[kind+":"+ref]
}

func (a *applier) users(ctx context.Context, f *File) error {
	for _, u := range f.Users {
		if _, err := a.svc.Auth.Register(ctx, domain.Registration{
			Email: u.Email, Password: u.Password, FirstName: u.FirstName, LastName: u.LastName,
		}); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Email, err)
		}
		if u.Role != "" && domain.UserRole(u.Role) != domain.RoleTeamMember {
			if _, err := a.svc.Auth.AssignRole(ctx, u.Email, domain.UserRole(u.Role)); err != nil {
				return fmt.Errorf("seeding role for %s: %w", u.Email, err)
			}
		}
		a.res.Users++
	}
	return nil
}

func (a *applier) customers(ctx context.Context, f *File) error {
	for _, c := range f.Customers {
		cust := &domain.Customer{
			Name: c.Name, ContactPerson: c.ContactPerson, ContactEmail: c.ContactEmail,
			ContactPhone: c.ContactPhone, Address: c.Address,
		}
		if err := a.svc.Customers.Create(ctx, cust); err != nil {
			return fmt.Errorf("seeding customer %s: %w", c.Ref, err)
		}
		a.ids["customer:"+c.Ref] = cust.ID
		a.res.Customers++
	}
	return nil
}

func (a *applier) employees(ctx context.Context, f *File) error {
	for _, e := range f.Employees {
		emp := &domain.Employee{
			Name: e.Name, Email: e.Email, Role: e.Role, Department: e.Department,
			HireDate: optDate(e.HireDate), HourlyRate: amount(e.HourlyRate),
		}
		if err := a.svc.Employees.Create(ctx, emp); err != nil {
			return fmt.Errorf("seeding employee %s: %w", e.Ref, err)
		}
		a.ids["employee:"+e.Ref] = emp.ID
		a.res.Employees++
	}
	return nil
}

func (a *applier) projects(ctx context.Context, f *File) error {
	for _, p := range f.Projects {
		proj := &domain.Project{
			Name: p.Name, CustomerID: a.id("customer", p.Customer), ProjectManager: p.Manager,
			Status: domain.ProjectStatus(p.Status), StartDate: optDate(p.StartDate), EndDate: optDate(p.EndDate),
			Budget: amount(p.Budget), ProjectType: p.Type,
		}
		if err := a.svc.Projects.Create(ctx, proj); err != nil {
			return fmt.Errorf("seeding project %s: %w", p.Ref, err)
		}
		a.ids["project:"+p.Ref] = proj.ID
		a.res.Projects++

		for _, m := range p.Team {
			member := &domain.TeamMember{
				ProjectID: proj.ID, EmployeeID: a.id("employee", m.Employee),
				Role: m.Role, AllocationPercentage: m.Allocation,
			}
			if p.StartDate != "" {
				member.AssignedDate = *optDate(p.StartDate)
			}
			if err := a.svc.Projects.AddTeamMember(ctx, member); err != nil {
				return fmt.Errorf("seeding team of %s: %w", p.Ref, err)
			}
			a.res.TeamMembers++
		}
	}
	return nil
}

func (a *applier) proposals(ctx context.Context, f *File) error {
	for _, p := range f.Proposals {
		prop := &domain.Proposal{
			ProjectID: a.id("project", p.Project), Number: p.Number, Date: date(p.Date),
			Amount: amount(p.Amount), Status: domain.DocumentStatus(p.Status), Notes: p.Notes,
		}
		if err := a.svc.Proposals.Create(ctx, prop); err != nil {
			return fmt.Errorf("seeding proposal %s: %w", p.Ref, err)
		}
		a.ids["proposal:"+p.Ref] = prop.ID
		a.res.Proposals++
	}
	return nil
}

func (a *applier) purchaseOrders(ctx context.Context, f *File) error {
	for _, s := range f.PurchaseOrders {
		po := &domain.PurchaseOrder{
			ProjectID: a.id("project", s.Project), Number: s.Number, Date: date(s.Date),
			Hours: s.Hours, BillRate: amount(s.BillRate), Amount: amount(s.Amount),
			Status: domain.DocumentStatus(s.Status),
		}
		if s.Proposal != "" {
			id := a.id("proposal", s.Proposal)
			po.ProposalID = &id
		}
		if err := a.svc.POs.Create(ctx, po); err != nil {
			return fmt.Errorf("seeding purchase order %s: %w", s.Ref, err)
		}
		a.ids["po:"+s.Ref] = po.ID
		a.res.PurchaseOrders++
	}
	return nil
}

func (a *applier) timesheets(ctx context.Context, f *File) error {
	for i, s := range f.Timesheets {
		ts := &domain.Timesheet{
			EmployeeID: a.id("employee", s.Employee), ProjectID: a.id("project", s.Project),
			WorkDate: date(s.Date), HoursWorked: s.Hours, Description: s.Description,
			Billable: s.Billable == nil || *s.Billable,
		}
		if err := a.svc.Timesheets.Create(ctx, ts); err != nil {
			return fmt.Errorf("seeding timesheets[%d]: %w", i, err)
		}
		a.res.Timesheets++
	}
	return nil
}

func (a *applier) invoices(ctx context.Context, f *File) error {
	for _, s := range f.Invoices {
		inv := &domain.Invoice{
			Number: s.Number, InvoiceDate: date(s.Date), DueDate: optDate(s.DueDate),
			TotalAmount: amount(s.Total), TaxAmount: amount(s.Tax), Status: domain.InvoiceStatus(s.Status),
		}
		if s.PO != "" {
			id := a.id("po", s.PO)
			inv.POID = &id
		}
		if err := a.svc.Invoices.Create(ctx, inv); err != nil {
			return fmt.Errorf("seeding invoice %s: %w", s.Number, err)
		}
		a.res.Invoices++
		for _, d := range s.Details {
			detail := &domain.InvoiceDetail{
				InvoiceID: inv.ID, Description: d.Description,
				Quantity: amount(d.Quantity), UnitPrice: amount(d.UnitPrice),
			}
			if err := a.svc.Invoices.AddDetail(ctx, detail); err != nil {
				return fmt.Errorf("seeding invoice %s lines: %w", s.Number, err)
			}
			a.res.InvoiceDetails++
		}
	}
	return nil
}

// The helpers below run after Validate, so parse failures cannot occur.

func amount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, _ := decimal.NewFromString(s)
	return d
}

func date(s string) domain.Date {
	d, _ := domain.ParseDate(s)
	return d
}

func optDate(s string) *domain.Date {
	if s == "" {
		return nil
	}
	d := date(s)
	return &d
}
