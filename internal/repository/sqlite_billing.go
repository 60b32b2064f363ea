package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// BillingQuery carries the report filters down to SQL. Zero values do not filter.
type BillingQuery struct {
	Year           int
	Project        string
	Customer       string
	Employee       string
	Proposal       string
	PO             string
	Invoice        string
	ProjectStatus  domain.ProjectStatus
	ProposalStatus domain.DocumentStatus
	POStatus       domain.DocumentStatus
	InvoiceStatus  domain.InvoiceStatus
}

// ProjectLine is one billing-tracker row before month data is attached:
// a project with its most recent purchase order.
type ProjectLine struct {
	ProjectID      string
	ProjectName    string
	ProjectManager string
	CustomerName   string
	ProjectStatus  domain.ProjectStatus
	ProposalNumber string
	ProposalStatus domain.DocumentStatus
	POID           string
	PONumber       string
	POStatus       domain.DocumentStatus
	POHours        float64
	BillRate       decimal.Decimal
	POAmount       decimal.Decimal
	TotalInvoiced  decimal.Decimal
}

// InvoiceLine is one invoice-tracker row before month data is attached.
type InvoiceLine struct {
	InvoiceID      string
	InvoiceNumber  string
	ProjectID      string
	ProjectName    string
	ProjectManager string
	CustomerName   string
	PONumber       string
	InvoiceDate    domain.Date
	DueDate        *domain.Date
	Status         domain.InvoiceStatus
	TotalAmount    decimal.Decimal
}

// HoursFact is billable hours of one employee on one project in one YYYY-MM month.
type HoursFact struct {
	ProjectID    string
	EmployeeID   string
	EmployeeName string
	HourlyRate   decimal.Decimal
	Month        string
	Hours        float64
}

// SQLiteBillingRepo implements BillingRepo.
type SQLiteBillingRepo struct {
	db db.DBTX
}

func NewSQLiteBillingRepo(conn db.DBTX) *SQLiteBillingRepo {
	return &SQLiteBillingRepo{db: conn}
}

func (q BillingQuery) projectPredicates(w *where) {
	if q.Project != "" {
		w.add(`LOWER(p.name) LIKE ? ESCAPE '\'`, likePattern(q.Project))
	}
	if q.Customer != "" {
		w.add(`LOWER(COALESCE(c.name, '')) LIKE ? ESCAPE '\'`, likePattern(q.Customer))
	}
	if q.ProjectStatus != "" {
		w.add(`p.status = ?`, string(q.ProjectStatus))
	}
	if q.PO != "" {
		w.add(`LOWER(po.po_number) LIKE ? ESCAPE '\'`, likePattern(q.PO))
	}
}

// ListProjectLines returns every project that has at least one purchase order,
// joined with its latest PO, the PO's proposal and the amount invoiced
// against it. Cancelled invoices do not count as invoiced. An InvoiceStatus
// keeps projects whose PO has at least one invoice in that status.
func (r *SQLiteBillingRepo) ListProjectLines(ctx context.Context, q BillingQuery) ([]ProjectLine, error) {
	var w where
	q.projectPredicates(&w)
	if q.POStatus != "" {
		w.add(`po.status = ?`, string(q.POStatus))
	}
	if q.ProposalStatus != "" {
		w.add(`pr.status = ?`, string(q.ProposalStatus))
	}
	if q.Proposal != "" {
		w.add(`LOWER(COALESCE(pr.proposal_number, '')) LIKE ? ESCAPE '\'`, likePattern(q.Proposal))
	}
	if q.InvoiceStatus != "" {
		w.add(`EXISTS (SELECT 1 FROM invoices iv WHERE iv.po_id = po.id AND iv.status = ?)`, string(q.InvoiceStatus))
	}

	query := `SELECT p.id, p.name, p.project_manager, COALESCE(c.name, ''), p.status,
			COALESCE(pr.proposal_number, ''), COALESCE(pr.status, ''),
			po.id, po.po_number, po.status, po.hours, po.bill_rate, po.amount,
			COALESCE((SELECT SUM(i.total_amount) FROM invoices i
				WHERE i.po_id = po.id AND i.status <> 'Cancelled'), 0)
		FROM projects p
		JOIN purchase_orders po ON po.id = (
			SELECT x.id FROM purchase_orders x WHERE x.project_id = p.id
			ORDER BY x.po_date DESC, x.created_at DESC LIMIT 1)
		LEFT JOIN customers c ON c.id = p.customer_id
		LEFT JOIN proposals pr ON pr.id = po.proposal_id` + w.String() + `
		ORDER BY p.name`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing billing projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectLine
	for rows.Next() {
		var l ProjectLine
		var projectStatus, proposalStatus, poStatus string
		if err := rows.Scan(&l.ProjectID, &l.ProjectName, &l.ProjectManager, &l.CustomerName, &projectStatus,
			&l.ProposalNumber, &proposalStatus, &l.POID, &l.PONumber, &poStatus,
			&l.POHours, &l.BillRate, &l.POAmount, &l.TotalInvoiced); err != nil {
			return nil, fmt.Errorf("scanning billing project: %w", err)
		}
		l.ProjectStatus = domain.ProjectStatus(projectStatus)
		l.ProposalStatus = domain.DocumentStatus(proposalStatus)
		l.POStatus = domain.DocumentStatus(poStatus)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billing projects: %w", err)
	}
	return out, nil
}

// ListInvoiceLines returns invoices that are tied to a project through their PO,
// newest first. A non-zero Year keeps invoices dated in that year.
func (r *SQLiteBillingRepo) ListInvoiceLines(ctx context.Context, q BillingQuery) ([]InvoiceLine, error) {
	var w where
	q.projectPredicates(&w)
	if q.InvoiceStatus != "" {
		w.add(`i.status = ?`, string(q.InvoiceStatus))
	}
	if q.Invoice != "" {
		w.add(`LOWER(i.invoice_number) LIKE ? ESCAPE '\'`, likePattern(q.Invoice))
	}
	if q.Year != 0 {
		w.add(`strftime('%Y', i.invoice_date) = ?`, strconv.Itoa(q.Year))
	}

	query := `SELECT i.id, i.invoice_number, p.id, p.name, p.project_manager, COALESCE(c.name, ''),
			po.po_number, i.invoice_date, i.due_date, i.status, i.total_amount
		FROM invoices i
		JOIN purchase_orders po ON po.id = i.po_id
		JOIN projects p ON p.id = po.project_id
		LEFT JOIN customers c ON c.id = p.customer_id` + w.String() + `
		ORDER BY i.invoice_date DESC, i.invoice_number`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing billing invoices: %w", err)
	}
	defer rows.Close()

	var out []InvoiceLine
	for rows.Next() {
		var l InvoiceLine
		var invoiceDate, status string
		var dueDate sql.NullString
		if err := rows.Scan(&l.InvoiceID, &l.InvoiceNumber, &l.ProjectID, &l.ProjectName, &l.ProjectManager,
			&l.CustomerName, &l.PONumber, &invoiceDate, &dueDate, &status, &l.TotalAmount); err != nil {
			return nil, fmt.Errorf("scanning billing invoice: %w", err)
		}
		if l.InvoiceDate, err = parseDate(invoiceDate); err != nil {
			return nil, err
		}
		l.DueDate = parseNullableDate(dueDate)
		l.Status = domain.InvoiceStatus(status)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billing invoices: %w", err)
	}
	return out, nil
}

// MonthlyHours groups billable timesheet hours for the given projects by
// project, employee and month of q.Year.
func (r *SQLiteBillingRepo) MonthlyHours(ctx context.Context, projectIDs []string, q BillingQuery) ([]HoursFact, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var w where
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(projectIDs)), ",")
	ids := make([]any, len(projectIDs))
	for i, id := range projectIDs {
		ids[i] = id
	}
	w.add(`t.project_id IN (`+placeholders+`)`, ids...)
	w.add(`t.billable = 1`)
	if q.Year != 0 {
		w.add(`strftime('%Y', t.work_date) = ?`, strconv.Itoa(q.Year))
	}
	if q.Employee != "" {
		w.add(`LOWER(e.name) LIKE ? ESCAPE '\'`, likePattern(q.Employee))
	}

	query := `SELECT t.project_id, e.id, e.name, e.hourly_rate,
			strftime('%Y-%m', t.work_date) AS month, SUM(t.hours_worked)
		FROM timesheets t
		JOIN employees e ON e.id = t.employee_id` + w.String() + `
		GROUP BY t.project_id, e.id, month
		ORDER BY t.project_id, e.name, month`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("summing monthly hours: %w", err)
	}
	defer rows.Close()

	var out []HoursFact
	for rows.Next() {
		var f HoursFact
		if err := rows.Scan(&f.ProjectID, &f.EmployeeID, &f.EmployeeName, &f.HourlyRate, &f.Month, &f.Hours); err != nil {
			return nil, fmt.Errorf("scanning monthly hours: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly hours: %w", err)
	}
	return out, nil
}
