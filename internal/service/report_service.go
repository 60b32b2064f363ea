package service

import (
	"context"
	"time"

	"github.com/zeabis/zeabis/internal/billing"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/grid"
	"github.com/zeabis/zeabis/internal/repository"
)

type reportService struct {
	billing  repository.BillingRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewReportService(billingRepo repository.BillingRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{billing: billingRepo, now: time.Now, observer: useCaseObserverOrNoop(observers)}
}

// Billing assembles the billing tracker: one row per project with a PO,
// month buckets over the selected window and the employee breakdown.
func (s *reportService) Billing(ctx context.Context, req contract.BillingReportRequest) (resp *contract.BillingReportResponse, err error) {
	fields := map[string]any{"filters": req.Filters.String()}
	done := track(ctx, s.observer, "billing-report", fields)
	defer func() { done(err) }()

	now := s.clock(req.Now)
	year, window, err := reportWindow(req.Filters, now)
	if err != nil {
		return nil, err
	}
	q := billingQuery(req.Filters, year)

	lines, err := s.billing.ListProjectLines(ctx, q)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(lines))
	rows := make([]billing.ProjectBilling, len(lines))
	for i, l := range lines {
		ids[i] = l.ProjectID
		rows[i] = projectRow(l)
	}
	facts, err := s.billing.MonthlyHours(ctx, ids, q)
	if err != nil {
		return nil, err
	}
	rows = billing.AttachProjects(rows, toFacts(facts), window)
	if req.Filters.Employee != "" {
		rows = keepRows(rows, func(r billing.ProjectBilling) bool { return len(r.Employees) > 0 })
	}

	cols := append(billing.ProjectColumns(), billing.MonthColumns(window, func(r billing.ProjectBilling) []billing.MonthBucket { return r.Months })...)
	if rows, err = sortRows(rows, cols, req.Sort); err != nil {
		return nil, err
	}
	fields["rows"] = len(rows)

	return &contract.BillingReportResponse{
		GeneratedAt:   now.UTC(),
		Year:          year,
		Filters:       req.Filters,
		Window:        window,
		Rows:          rows,
		Summary:       billing.Summarize(rows),
		MonthOverview: billing.MonthOverview(rows),
	}, nil
}

// Invoices assembles the invoice tracker: one row per invoice with the
// effort booked on its project over the window.
func (s *reportService) Invoices(ctx context.Context, req contract.InvoiceReportRequest) (resp *contract.InvoiceReportResponse, err error) {
	fields := map[string]any{"filters": req.Filters.String()}
	done := track(ctx, s.observer, "invoice-report", fields)
	defer func() { done(err) }()

	now := s.clock(req.Now)
	year, window, err := reportWindow(req.Filters, now)
	if err != nil {
		return nil, err
	}
	q := billingQuery(req.Filters, year)

	lines, err := s.billing.ListInvoiceLines(ctx, q)
	if err != nil {
		return nil, err
	}
	var ids []string
	seen := map[string]bool{}
	rows := make([]billing.InvoiceBilling, len(lines))
	for i, l := range lines {
		if !seen[l.ProjectID] {
			seen[l.ProjectID] = true
			ids = append(ids, l.ProjectID)
		}
		rows[i] = invoiceRow(l)
	}
	// Hours are counted for the whole year; an invoice row's Year filter
	// narrows invoices by date, not the effort behind them.
	facts, err := s.billing.MonthlyHours(ctx, ids, repository.BillingQuery{Year: year, Employee: q.Employee})
	if err != nil {
		return nil, err
	}
	rows = billing.AttachInvoices(rows, toFacts(facts), window)
	if req.Filters.Employee != "" {
		rows = keepRows(rows, func(r billing.InvoiceBilling) bool { return len(r.Employees) > 0 })
	}

	cols := append(billing.InvoiceColumns(), billing.MonthColumns(window, func(r billing.InvoiceBilling) []billing.MonthBucket { return r.Months })...)
	if rows, err = sortRows(rows, cols, req.Sort); err != nil {
		return nil, err
	}
	fields["rows"] = len(rows)

	return &contract.InvoiceReportResponse{
		GeneratedAt: now.UTC(),
		Year:        year,
		Filters:     req.Filters,
		Window:      window,
		Rows:        rows,
	}, nil
}

func (s *reportService) clock(override *time.Time) time.Time {
	if override != nil {
		return *override
	}
	return s.now()
}

func reportWindow(f contract.FilterValues, now time.Time) (int, []billing.MonthBucket, error) {
	year := f.YearOr(now.Year())
	months, err := f.MonthList()
	if err != nil {
		return 0, nil, err
	}
	return year, billing.Window(year, months), nil
}

func billingQuery(f contract.FilterValues, year int) repository.BillingQuery {
	return repository.BillingQuery{
		Year:           year,
		Project:        f.Project,
		Customer:       f.Customer,
		Employee:       f.Employee,
		Proposal:       f.Proposal,
		PO:             f.PO,
		Invoice:        f.Invoice,
		ProjectStatus:  f.ProjectStatus,
		ProposalStatus: f.ProposalStatus,
		POStatus:       f.POStatus,
		InvoiceStatus:  f.InvoiceStatus,
	}
}

func projectRow(l repository.ProjectLine) billing.ProjectBilling {
	return billing.ProjectBilling{
		ProjectID:      l.ProjectID,
		Project:        l.ProjectName,
		ProjectManager: l.ProjectManager,
		Customer:       l.CustomerName,
		ProjectStatus:  l.ProjectStatus,
		ProposalID:     l.ProposalNumber,
		ProposalStatus: l.ProposalStatus,
		POID:           l.PONumber,
		POStatus:       l.POStatus,
		POHours:        l.POHours,
		BillRate:       l.BillRate,
		POAmount:       l.POAmount,
		TotalInvoiced:  l.TotalInvoiced,
	}
}

func invoiceRow(l repository.InvoiceLine) billing.InvoiceBilling {
	return billing.InvoiceBilling{
		InvoiceID:      l.InvoiceID,
		InvoiceNumber:  l.InvoiceNumber,
		ProjectID:      l.ProjectID,
		Project:        l.ProjectName,
		ProjectManager: l.ProjectManager,
		Customer:       l.CustomerName,
		POID:           l.PONumber,
		InvoiceDate:    l.InvoiceDate,
		DueDate:        l.DueDate,
		Status:         l.Status,
		TotalAmount:    l.TotalAmount,
	}
}

func toFacts(in []repository.HoursFact) []billing.Fact {
	out := make([]billing.Fact, len(in))
	for i, f := range in {
		out[i] = billing.Fact{
			ProjectID:    f.ProjectID,
			EmployeeID:   f.EmployeeID,
			EmployeeName: f.EmployeeName,
			Rate:         f.HourlyRate,
			Month:        f.Month,
			Hours:        f.Hours,
		}
	}
	return out
}

// keepRows drops rows that fail keep. With an employee filter both trackers
// keep only rows the employee booked hours on.
func keepRows[R any](rows []R, keep func(R) bool) []R {
	out := rows[:0:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// sortRows applies a requested sort. Unknown or unsortable keys are rejected
// so a typo does not silently return the default order.
func sortRows[R any](rows []R, cols []grid.Column[R], state *grid.SortState) ([]R, error) {
	if state == nil {
		return rows, nil
	}
	for _, c := range cols {
		if c.Key == state.Key {
			if !c.Sortable {
				return nil, domain.Invalid("column %q is not sortable", state.Key)
			}
			return grid.Sort(rows, cols, state), nil
		}
	}
	return nil, domain.Invalid("unknown sort column %q", state.Key)
}
