package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zeabis/zeabis/internal/domain"
)

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

// respond writes v with status, or the error when err is non-nil.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, v)
}

// createFrom decodes a T, clears any client-chosen id and hands it to create.
func createFrom[T any](s *Server, w http.ResponseWriter, r *http.Request, clearID func(*T), create func(context.Context, *T) error) {
	var v T
	if err := decodeJSON(r, &v); err != nil {
		s.writeError(w, r, err)
		return
	}
	clearID(&v)
	err := create(r.Context(), &v)
	s.respond(w, r, http.StatusCreated, &v, err)
}

// patchWith decodes a patch P and applies it to the entity named in the path.
func patchWith[P, T any](s *Server, w http.ResponseWriter, r *http.Request, update func(context.Context, string, P) (T, error)) {
	var p P
	if err := decodeJSON(r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := update(r.Context(), pathID(r), p)
	s.respond(w, r, http.StatusOK, v, err)
}

// nonNil keeps empty listings as [] on the wire.
func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

// Customers

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	cs, err := s.svc.Customers.List(r.Context(), r.URL.Query().Get("search"))
	s.respond(w, r, http.StatusOK, nonNil(cs), err)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Customers.GetByID(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, c, err)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	createFrom(s, w, r, func(c *domain.Customer) { c.ID = "" }, s.svc.Customers.Create)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	patchWith(s, w, r, s.svc.Customers.Update)
}

// deleteCustomer deactivates the customer and returns it as stored.
func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := s.svc.Customers.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Customers.GetByID(r.Context(), id)
	s.respond(w, r, http.StatusOK, c, err)
}

func (s *Server) customerProjects(w http.ResponseWriter, r *http.Request) {
	ps, err := s.svc.Customers.Projects(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, nonNil(ps), err)
}

// Employees

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	es, err := s.svc.Employees.List(r.Context())
	s.respond(w, r, http.StatusOK, nonNil(es), err)
}

func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Employees.GetByID(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, e, err)
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	createFrom(s, w, r, func(e *domain.Employee) { e.ID = "" }, s.svc.Employees.Create)
}

func (s *Server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	patchWith(s, w, r, s.svc.Employees.Update)
}

func (s *Server) setEmployeeStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active *bool `json:"active"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Active == nil {
		s.writeError(w, r, domain.Invalid("active is required"))
		return
	}
	e, err := s.svc.Employees.SetActive(r.Context(), pathID(r), *body.Active)
	s.respond(w, r, http.StatusOK, e, err)
}

func (s *Server) employeeTimesheets(w http.ResponseWriter, r *http.Request) {
	ts, err := s.svc.Employees.Timesheets(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, nonNil(ts), err)
}

func (s *Server) employeeProjects(w http.ResponseWriter, r *http.Request) {
	ps, err := s.svc.Employees.Projects(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, nonNil(ps), err)
}

// Projects

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.ProjectFilter{
		Status:     domain.ProjectStatus(q.Get("status")),
		CustomerID: q.Get("customerId"),
	}
	if f.Status != "" && !f.Status.Valid() {
		s.writeError(w, r, domain.Invalid("invalid project status %q", f.Status))
		return
	}
	ps, err := s.svc.Projects.List(r.Context(), f)
	s.respond(w, r, http.StatusOK, nonNil(ps), err)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Projects.GetByID(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, p, err)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	createFrom(s, w, r, func(p *domain.Project) { p.ID = "" }, s.svc.Projects.Create)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	patchWith(s, w, r, s.svc.Projects.Update)
}

func (s *Server) setProjectStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.ProjectStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Projects.SetStatus(r.Context(), pathID(r), body.Status)
	s.respond(w, r, http.StatusOK, p, err)
}

func (s *Server) projectTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.svc.Projects.Team(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, nonNil(team), err)
}

func (s *Server) addTeamMember(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r)
	createFrom(s, w, r, func(m *domain.TeamMember) {
		m.ID = ""
		m.ProjectID = projectID
	}, s.svc.Projects.AddTeamMember)
}

func (s *Server) removeTeamMember(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Projects.RemoveTeamMember(r.Context(), pathID(r), mux.Vars(r)["employeeId"])
	s.respond(w, r, http.StatusOK, map[string]string{"message": "Team member removed"}, err)
}

// Timesheets

func (s *Server) listTimesheets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ts, err := s.svc.Timesheets.List(r.Context(), domain.TimesheetFilter{
		EmployeeID: q.Get("employeeId"),
		ProjectID:  q.Get("projectId"),
	})
	s.respond(w, r, http.StatusOK, nonNil(ts), err)
}

func (s *Server) getTimesheet(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Timesheets.GetByID(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, t, err)
}

// timesheetInput distinguishes an omitted billable flag, which defaults to true.
type timesheetInput struct {
	domain.Timesheet
	Billable *bool `json:"billable"`
}

func (s *Server) createTimesheet(w http.ResponseWriter, r *http.Request) {
	var in timesheetInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	t := in.Timesheet
	t.ID = ""
	t.Billable = in.Billable == nil || *in.Billable
	err := s.svc.Timesheets.Create(r.Context(), &t)
	s.respond(w, r, http.StatusCreated, &t, err)
}

func (s *Server) updateTimesheet(w http.ResponseWriter, r *http.Request) {
	patchWith(s, w, r, s.svc.Timesheets.Update)
}

func (s *Server) deleteTimesheet(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Timesheets.Delete(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, map[string]string{"message": "Timesheet deleted"}, err)
}

// Proposals and purchase orders

func (s *Server) listProposals(w http.ResponseWriter, r *http.Request) {
	status := domain.DocumentStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		s.writeError(w, r, domain.Invalid("invalid proposal status %q", status))
		return
	}
	ps, err := s.svc.Proposals.List(r.Context(), status)
	s.respond(w, r, http.StatusOK, nonNil(ps), err)
}

func (s *Server) getProposal(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Proposals.GetByID(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, p, err)
}

func (s *Server) createProposal(w http.ResponseWriter, r *http.Request) {
	createFrom(s, w, r, func(p *domain.Proposal) { p.ID = "" }, s.svc.Proposals.Create)
}

func (s *Server) updateProposal(w http.ResponseWriter, r *http.Request) {
	patchWith(s, w, r, s.svc.Proposals.Update)
}

func (s *Server) listPOs(w http.ResponseWriter, r *http.Request) {
	pos, err := s.svc.POs.List(r.Context(), r.URL.Query().Get("projectId"))
	s.respond(w, r, http.StatusOK, nonNil(pos), err)
}

func (s *Server) getPO(w http.ResponseWriter, r *http.Request) {
	po, err := s.svc.POs.GetByID(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, po, err)
}

func (s *Server) createPO(w http.ResponseWriter, r *http.Request) {
	createFrom(s, w, r, func(po *domain.PurchaseOrder) { po.ID = "" }, s.svc.POs.Create)
}

func (s *Server) updatePO(w http.ResponseWriter, r *http.Request) {
	patchWith(s, w, r, s.svc.POs.Update)
}

func (s *Server) poUtilization(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.POs.Utilization(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, u, err)
}

// Invoices

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.InvoiceFilter{Status: domain.InvoiceStatus(q.Get("status")), POID: q.Get("poId")}
	if f.Status != "" && !f.Status.Valid() {
		s.writeError(w, r, domain.Invalid("invalid invoice status %q", f.Status))
		return
	}
	is, err := s.svc.Invoices.List(r.Context(), f)
	s.respond(w, r, http.StatusOK, nonNil(is), err)
}

func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	i, err := s.svc.Invoices.GetByID(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, i, err)
}

func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	createFrom(s, w, r, func(i *domain.Invoice) { i.ID = "" }, s.svc.Invoices.Create)
}

func (s *Server) updateInvoice(w http.ResponseWriter, r *http.Request) {
	patchWith(s, w, r, s.svc.Invoices.Update)
}

func (s *Server) setInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.InvoiceStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	i, err := s.svc.Invoices.SetStatus(r.Context(), pathID(r), body.Status)
	s.respond(w, r, http.StatusOK, i, err)
}

func (s *Server) invoiceDetails(w http.ResponseWriter, r *http.Request) {
	ds, err := s.svc.Invoices.Details(r.Context(), pathID(r))
	s.respond(w, r, http.StatusOK, nonNil(ds), err)
}

func (s *Server) addInvoiceDetail(w http.ResponseWriter, r *http.Request) {
	invoiceID := pathID(r)
	createFrom(s, w, r, func(d *domain.InvoiceDetail) {
		d.ID = ""
		d.InvoiceID = invoiceID
	}, s.svc.Invoices.AddDetail)
}

// Dashboard

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Dashboard.Stats(r.Context(), s.now())
	s.respond(w, r, http.StatusOK, st, err)
}

func (s *Server) dashboardRevenue(w http.ResponseWriter, r *http.Request) {
	pts, err := s.svc.Dashboard.Revenue(r.Context(), s.now())
	s.respond(w, r, http.StatusOK, pts, err)
}
