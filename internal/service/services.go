package service

import (
	"database/sql"

	"github.com/zeabis/zeabis/internal/auth"
	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/repository"
)

// Services bundles every use-case service behind the API and the CLI.
type Services struct {
	Auth       AuthService
	Customers  CustomerService
	Employees  EmployeeService
	Projects   ProjectService
	Timesheets TimesheetService
	Proposals  ProposalService
	POs        PurchaseOrderService
	Invoices   InvoiceService
	Dashboard  DashboardService
	Reports    ReportService
}

// NewServices wires SQLite repositories over database into the services.
func NewServices(database *sql.DB, issuer *auth.Issuer, observers ...UseCaseObserver) Services {
	obs := useCaseObserverOrNoop(observers)
	customers := repository.NewSQLiteCustomerRepo(database)
	employees := repository.NewSQLiteEmployeeRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	timesheets := repository.NewSQLiteTimesheetRepo(database)
	invoices := repository.NewSQLiteInvoiceRepo(database)

	return Services{
		Auth:       NewAuthService(repository.NewSQLiteUserRepo(database), db.NewUnitOfWork(database), issuer, obs),
		Customers:  NewCustomerService(customers, projects, obs),
		Employees:  NewEmployeeService(employees, timesheets),
		Projects:   NewProjectService(projects, repository.NewSQLiteTeamRepo(database)),
		Timesheets: NewTimesheetService(timesheets),
		Proposals:  NewProposalService(repository.NewSQLiteProposalRepo(database)),
		POs:        NewPurchaseOrderService(repository.NewSQLitePurchaseOrderRepo(database)),
		Invoices:   NewInvoiceService(invoices, obs),
		Dashboard:  NewDashboardService(projects, customers, employees, invoices),
		Reports:    NewReportService(repository.NewSQLiteBillingRepo(database), obs),
	}
}
