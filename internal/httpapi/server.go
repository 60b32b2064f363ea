// Package httpapi exposes the services as the JSON API consumed by the SPA
// and the CLI client.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/service"
)

type Server struct {
	svc    service.Services
	logger *slog.Logger
	now    func() time.Time
}

func NewServer(svc service.Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{svc: svc, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for dashboard and report defaults.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Handler returns the routed API with its middleware chain applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Route not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(s.Authenticate)

	private.HandleFunc("/auth/me", s.me).Methods(http.MethodGet)
	private.HandleFunc("/auth/logout", s.logout).Methods(http.MethodPost)

	private.HandleFunc("/customers", s.listCustomers).Methods(http.MethodGet)
	private.HandleFunc("/customers", s.createCustomer).Methods(http.MethodPost)
	private.HandleFunc("/customers/{id}", s.getCustomer).Methods(http.MethodGet)
	private.HandleFunc("/customers/{id}", s.updateCustomer).Methods(http.MethodPut)
	private.Handle("/customers/{id}", s.Authorize(domain.RoleAdmin, domain.RoleAccountManager)(http.HandlerFunc(s.deleteCustomer))).Methods(http.MethodDelete)
	private.HandleFunc("/customers/{id}/projects", s.customerProjects).Methods(http.MethodGet)

	private.HandleFunc("/employees", s.listEmployees).Methods(http.MethodGet)
	private.HandleFunc("/employees", s.createEmployee).Methods(http.MethodPost)
	private.HandleFunc("/employees/{id}", s.getEmployee).Methods(http.MethodGet)
	private.HandleFunc("/employees/{id}", s.updateEmployee).Methods(http.MethodPut)
	private.HandleFunc("/employees/{id}/status", s.setEmployeeStatus).Methods(http.MethodPatch)
	private.HandleFunc("/employees/{id}/timesheets", s.employeeTimesheets).Methods(http.MethodGet)
	private.HandleFunc("/employees/{id}/projects", s.employeeProjects).Methods(http.MethodGet)

	private.HandleFunc("/projects", s.listProjects).Methods(http.MethodGet)
	private.HandleFunc("/projects", s.createProject).Methods(http.MethodPost)
	private.HandleFunc("/projects/{id}", s.getProject).Methods(http.MethodGet)
	private.HandleFunc("/projects/{id}", s.updateProject).Methods(http.MethodPut)
	private.HandleFunc("/projects/{id}/status", s.setProjectStatus).Methods(http.MethodPatch)
	private.HandleFunc("/projects/{id}/team", s.projectTeam).Methods(http.MethodGet)
	private.HandleFunc("/projects/{id}/team", s.addTeamMember).Methods(http.MethodPost)
	private.HandleFunc("/projects/{id}/team/{employeeId}", s.removeTeamMember).Methods(http.MethodDelete)

	private.HandleFunc("/timesheets", s.listTimesheets).Methods(http.MethodGet)
	private.HandleFunc("/timesheets", s.createTimesheet).Methods(http.MethodPost)
	private.HandleFunc("/timesheets/{id}", s.getTimesheet).Methods(http.MethodGet)
	private.HandleFunc("/timesheets/{id}", s.updateTimesheet).Methods(http.MethodPut)
	private.HandleFunc("/timesheets/{id}", s.deleteTimesheet).Methods(http.MethodDelete)

	private.HandleFunc("/proposals", s.listProposals).Methods(http.MethodGet)
	private.HandleFunc("/proposals", s.createProposal).Methods(http.MethodPost)
	private.HandleFunc("/proposals/{id}", s.getProposal).Methods(http.MethodGet)
	private.HandleFunc("/proposals/{id}", s.updateProposal).Methods(http.MethodPut)

	private.HandleFunc("/pos", s.listPOs).Methods(http.MethodGet)
	private.HandleFunc("/pos", s.createPO).Methods(http.MethodPost)
	private.HandleFunc("/pos/{id}", s.getPO).Methods(http.MethodGet)
	private.HandleFunc("/pos/{id}", s.updatePO).Methods(http.MethodPut)
	private.HandleFunc("/pos/{id}/utilization", s.poUtilization).Methods(http.MethodGet)

	private.HandleFunc("/invoices", s.listInvoices).Methods(http.MethodGet)
	private.HandleFunc("/invoices", s.createInvoice).Methods(http.MethodPost)
	private.HandleFunc("/invoices/{id}", s.getInvoice).Methods(http.MethodGet)
	private.HandleFunc("/invoices/{id}", s.updateInvoice).Methods(http.MethodPut)
	private.Handle("/invoices/{id}/status", s.Authorize(domain.RoleAdmin, domain.RoleFinanceManager)(http.HandlerFunc(s.setInvoiceStatus))).Methods(http.MethodPatch)
	private.HandleFunc("/invoices/{id}/details", s.invoiceDetails).Methods(http.MethodGet)
	private.HandleFunc("/invoices/{id}/details", s.addInvoiceDetail).Methods(http.MethodPost)

	private.HandleFunc("/dashboard/stats", s.dashboardStats).Methods(http.MethodGet)
	private.HandleFunc("/dashboard/revenue", s.dashboardRevenue).Methods(http.MethodGet)

	private.HandleFunc("/reports/billing", s.billingReport).Methods(http.MethodGet)
	private.HandleFunc("/reports/billing.xlsx", s.billingWorkbook).Methods(http.MethodGet)
	private.HandleFunc("/reports/invoices", s.invoiceReport).Methods(http.MethodGet)

	return Chain(r, s.Recover, RequestLogger(s.logger), SecurityHeaders, CORS)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
