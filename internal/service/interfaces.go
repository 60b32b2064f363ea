package service

import (
	"context"
	"time"

	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.Session, error)
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	// Authenticate resolves a bearer token to an active user with a fresh role.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	// AssignRole replaces the user's active role.
	AssignRole(ctx context.Context, email string, role domain.UserRole) (*domain.User, error)
}

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, nameLike string) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, p domain.CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	Projects(ctx context.Context, id string) ([]*domain.Project, error)
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, id string, p domain.EmployeePatch) (*domain.Employee, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Employee, error)
	Timesheets(ctx context.Context, id string) ([]*domain.Timesheet, error)
	Projects(ctx context.Context, id string) ([]domain.EmployeeAssignment, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, id string, p domain.ProjectPatch) (*domain.Project, error)
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error)
	Team(ctx context.Context, projectID string) ([]domain.TeamMember, error)
	AddTeamMember(ctx context.Context, m *domain.TeamMember) error
	RemoveTeamMember(ctx context.Context, projectID, employeeID string) error
}

type TimesheetService interface {
	Create(ctx context.Context, t *domain.Timesheet) error
	GetByID(ctx context.Context, id string) (*domain.Timesheet, error)
	List(ctx context.Context, f domain.TimesheetFilter) ([]*domain.Timesheet, error)
	Update(ctx context.Context, id string, p domain.TimesheetPatch) (*domain.Timesheet, error)
	Delete(ctx context.Context, id string) error
}

type ProposalService interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	List(ctx context.Context, status domain.DocumentStatus) ([]*domain.Proposal, error)
	Update(ctx context.Context, id string, p domain.ProposalPatch) (*domain.Proposal, error)
}

type PurchaseOrderService interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	List(ctx context.Context, projectID string) ([]*domain.PurchaseOrder, error)
	Update(ctx context.Context, id string, p domain.PurchaseOrderPatch) (*domain.PurchaseOrder, error)
	Utilization(ctx context.Context, id string) (*domain.POUtilization, error)
}

type InvoiceService interface {
	Create(ctx context.Context, i *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, f domain.InvoiceFilter) ([]*domain.Invoice, error)
	Update(ctx context.Context, id string, p domain.InvoicePatch) (*domain.Invoice, error)
	SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error)
	Details(ctx context.Context, invoiceID string) ([]domain.InvoiceDetail, error)
	AddDetail(ctx context.Context, d *domain.InvoiceDetail) error
	// SweepOverdue marks sent invoices due before asOf's date as overdue.
	SweepOverdue(ctx context.Context, asOf time.Time) (int, error)
}

type DashboardService interface {
	Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error)
	Revenue(ctx context.Context, now time.Time) ([]domain.RevenuePoint, error)
}

type ReportService interface {
	Billing(ctx context.Context, req contract.BillingReportRequest) (*contract.BillingReportResponse, error)
	Invoices(ctx context.Context, req contract.InvoiceReportRequest) (*contract.InvoiceReportResponse, error)
}
