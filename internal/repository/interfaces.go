package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	AssignRole(ctx context.Context, userID string, role domain.UserRole) error
}

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, nameLike string) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, p domain.CustomerPatch) (*domain.Customer, error)
	Deactivate(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, id string, p domain.EmployeePatch) (*domain.Employee, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Employee, error)
	ListAssignments(ctx context.Context, employeeID string) ([]domain.EmployeeAssignment, error)
	CountActive(ctx context.Context) (int, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, id string, p domain.ProjectPatch) (*domain.Project, error)
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error)
	CountActive(ctx context.Context) (int, error)
}

type TeamRepo interface {
	List(ctx context.Context, projectID string) ([]domain.TeamMember, error)
	Add(ctx context.Context, m *domain.TeamMember) error
	Remove(ctx context.Context, projectID, employeeID string) error
}

type TimesheetRepo interface {
	Create(ctx context.Context, t *domain.Timesheet) error
	GetByID(ctx context.Context, id string) (*domain.Timesheet, error)
	List(ctx context.Context, f domain.TimesheetFilter) ([]*domain.Timesheet, error)
	Update(ctx context.Context, id string, p domain.TimesheetPatch) (*domain.Timesheet, error)
	Delete(ctx context.Context, id string) error
}

type ProposalRepo interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	List(ctx context.Context, status domain.DocumentStatus) ([]*domain.Proposal, error)
	Update(ctx context.Context, id string, p domain.ProposalPatch) (*domain.Proposal, error)
}

type PurchaseOrderRepo interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	List(ctx context.Context, projectID string) ([]*domain.PurchaseOrder, error)
	Update(ctx context.Context, id string, p domain.PurchaseOrderPatch) (*domain.PurchaseOrder, error)
	Utilization(ctx context.Context, id string) (*domain.POUtilization, error)
}

type InvoiceRepo interface {
	Create(ctx context.Context, i *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, f domain.InvoiceFilter) ([]*domain.Invoice, error)
	Update(ctx context.Context, id string, p domain.InvoicePatch) (*domain.Invoice, error)
	SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error)
	ListDetails(ctx context.Context, invoiceID string) ([]domain.InvoiceDetail, error)
	AddDetail(ctx context.Context, d *domain.InvoiceDetail) error
	MarkOverdue(ctx context.Context, asOf domain.Date) (int, error)
	RevenueByMonth(ctx context.Context, since domain.Date) ([]domain.RevenuePoint, error)
	RevenueForYear(ctx context.Context, year int) (decimal.Decimal, error)
}

// BillingRepo serves the flat facts the billing and invoice trackers are
// assembled from. Filtering happens in SQL.
type BillingRepo interface {
	ListProjectLines(ctx context.Context, q BillingQuery) ([]ProjectLine, error)
	ListInvoiceLines(ctx context.Context, q BillingQuery) ([]InvoiceLine, error)
	MonthlyHours(ctx context.Context, projectIDs []string, q BillingQuery) ([]HoursFact, error)
}
