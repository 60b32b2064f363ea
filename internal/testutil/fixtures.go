package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/domain"
)

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func DatePtr(s string) *domain.Date {
	d := Date(s)
	return &d
}

// Customer options
type CustomerOption func(*domain.Customer)

func WithContact(person, email string) CustomerOption {
	return func(c *domain.Customer) {
		c.ContactPerson = person
		c.ContactEmail = email
	}
}

func NewTestCustomer(name string, opts ...CustomerOption) *domain.Customer {
	now := time.Now().UTC()
	c := &domain.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Employee options
type EmployeeOption func(*domain.Employee)

func WithHourlyRate(rate string) EmployeeOption {
	return func(e *domain.Employee) {
		e.HourlyRate = decimal.RequireFromString(rate)
	}
}

func WithDepartment(dept string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Department = dept
	}
}

func WithUserID(id string) EmployeeOption {
	return func(e *domain.Employee) {
		e.UserID = &id
	}
}

func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	now := time.Now().UTC()
	e := &domain.Employee{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      uuid.New().String()[:8] + "@example.com",
		Role:       "Engineer",
		HourlyRate: decimal.NewFromInt(100),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectManager(name string) ProjectOption {
	return func(p *domain.Project) {
		p.ProjectManager = name
	}
}

func WithProjectDates(start, end string) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = DatePtr(start)
		p.EndDate = DatePtr(end)
	}
}

func NewTestProject(customerID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:         uuid.New().String(),
		Name:       name,
		CustomerID: customerID,
		Status:     domain.ProjectActive,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Timesheet options
type TimesheetOption func(*domain.Timesheet)

func WithNonBillable() TimesheetOption {
	return func(t *domain.Timesheet) {
		t.Billable = false
	}
}

func NewTestTimesheet(employeeID, projectID, workDate string, hours float64, opts ...TimesheetOption) *domain.Timesheet {
	now := time.Now().UTC()
	t := &domain.Timesheet{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		ProjectID:   projectID,
		WorkDate:    Date(workDate),
		HoursWorked: hours,
		Billable:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestProposal(projectID, number string, amount int64) *domain.Proposal {
	now := time.Now().UTC()
	return &domain.Proposal{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Number:    number,
		Date:      domain.NewDate(now),
		Amount:    decimal.NewFromInt(amount),
		Status:    domain.DocumentActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PurchaseOrder options
type POOption func(*domain.PurchaseOrder)

func WithPOHours(hours float64, billRate int64) POOption {
	return func(po *domain.PurchaseOrder) {
		po.Hours = hours
		po.BillRate = decimal.NewFromInt(billRate)
		po.Amount = po.BillRate.Mul(decimal.NewFromFloat(hours))
	}
}

func WithPODate(d string) POOption {
	return func(po *domain.PurchaseOrder) {
		po.Date = Date(d)
	}
}

func WithProposal(id string) POOption {
	return func(po *domain.PurchaseOrder) {
		po.ProposalID = &id
	}
}

func WithPOStatus(s domain.DocumentStatus) POOption {
	return func(po *domain.PurchaseOrder) {
		po.Status = s
	}
}

func NewTestPurchaseOrder(projectID, number string, opts ...POOption) *domain.PurchaseOrder {
	now := time.Now().UTC()
	po := &domain.PurchaseOrder{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Number:    number,
		Date:      domain.NewDate(now),
		Status:    domain.DocumentActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(po)
	}
	return po
}

// Invoice options
type InvoiceOption func(*domain.Invoice)

func WithInvoiceStatus(s domain.InvoiceStatus) InvoiceOption {
	return func(i *domain.Invoice) {
		i.Status = s
	}
}

func WithInvoiceDates(invoiceDate, dueDate string) InvoiceOption {
	return func(i *domain.Invoice) {
		i.InvoiceDate = Date(invoiceDate)
		i.DueDate = DatePtr(dueDate)
	}
}

func WithInvoiceAmount(total int64) InvoiceOption {
	return func(i *domain.Invoice) {
		i.TotalAmount = decimal.NewFromInt(total)
	}
}

func NewTestInvoice(poID, number string, opts ...InvoiceOption) *domain.Invoice {
	now := time.Now().UTC()
	i := &domain.Invoice{
		ID:          uuid.New().String(),
		Number:      number,
		InvoiceDate: domain.NewDate(now),
		Status:      domain.InvoiceDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if poID != "" {
		i.POID = &poID
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}
