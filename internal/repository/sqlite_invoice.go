package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// SQLiteInvoiceRepo implements InvoiceRepo, including line-item details and
// the paid-revenue rollups behind the dashboard.
type SQLiteInvoiceRepo struct {
	db db.DBTX
}

func NewSQLiteInvoiceRepo(conn db.DBTX) *SQLiteInvoiceRepo {
	return &SQLiteInvoiceRepo{db: conn}
}

const invoiceSelect = `SELECT i.id, i.po_id, COALESCE(po.po_number, ''), COALESCE(po.project_id, ''),
		COALESCE(p.name, ''), i.invoice_number, i.invoice_date, i.due_date, i.total_amount,
		i.tax_amount, i.status, i.payment_date, i.created_at, i.updated_at
	FROM invoices i
	LEFT JOIN purchase_orders po ON po.id = i.po_id
	LEFT JOIN projects p ON p.id = po.project_id`

func (r *SQLiteInvoiceRepo) Create(ctx context.Context, i *domain.Invoice) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoices (id, po_id, invoice_number, invoice_date, due_date, total_amount, tax_amount, status, payment_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, nullableString(i.POID), i.Number, i.InvoiceDate.String(), nullableDate(i.DueDate),
		i.TotalAmount.String(), i.TaxAmount.String(), string(i.Status), nullableDate(i.PaymentDate),
		formatTime(i.CreatedAt), formatTime(i.UpdatedAt),
	)
	if err != nil {
		return classify(err, "inserting invoice", "Invoice number already exists")
	}
	return nil
}

func (r *SQLiteInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return scanInvoice(r.db.QueryRowContext(ctx, invoiceSelect+` WHERE i.id = ?`, id))
}

// List returns invoices newest invoice date first.
func (r *SQLiteInvoiceRepo) List(ctx context.Context, f domain.InvoiceFilter) ([]*domain.Invoice, error) {
	var w where
	if f.Status != "" {
		w.add(`i.status = ?`, string(f.Status))
	}
	if f.POID != "" {
		w.add(`i.po_id = ?`, f.POID)
	}
	rows, err := r.db.QueryContext(ctx, invoiceSelect+w.String()+` ORDER BY i.invoice_date DESC, i.invoice_number`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var out []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}
	return out, nil
}

func (r *SQLiteInvoiceRepo) Update(ctx context.Context, id string, p domain.InvoicePatch) (*domain.Invoice, error) {
	var status any
	if p.Status != nil {
		status = string(*p.Status)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			invoice_number = COALESCE(?, invoice_number),
			invoice_date = COALESCE(?, invoice_date),
			due_date = COALESCE(?, due_date),
			total_amount = COALESCE(?, total_amount),
			tax_amount = COALESCE(?, tax_amount),
			status = COALESCE(?, status),
			payment_date = COALESCE(?, payment_date),
			updated_at = ?
		WHERE id = ?`,
		nullableString(p.Number), nullableDate(p.InvoiceDate), nullableDate(p.DueDate),
		nullableDecimal(p.TotalAmount), nullableDecimal(p.TaxAmount), status,
		nullableDate(p.PaymentDate), nowUTC(), id,
	)
	if err != nil {
		return nil, classify(err, "updating invoice", "Invoice number already exists")
	}
	if err := requireAffected(res, "Invoice"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteInvoiceRepo) SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	return r.Update(ctx, id, domain.InvoicePatch{Status: &status})
}

func (r *SQLiteInvoiceRepo) ListDetails(ctx context.Context, invoiceID string) ([]domain.InvoiceDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, invoice_id, line_item_number, description, quantity, unit_price, line_total
		FROM invoice_details WHERE invoice_id = ? ORDER BY line_item_number`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing invoice details: %w", err)
	}
	defer rows.Close()

	var out []domain.InvoiceDetail
	for rows.Next() {
		var d domain.InvoiceDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.LineItemNumber, &d.Description,
			&d.Quantity, &d.UnitPrice, &d.LineTotal); err != nil {
			return nil, fmt.Errorf("scanning invoice detail: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice details: %w", err)
	}
	return out, nil
}

// AddDetail appends a line item. A zero LineItemNumber takes the next free
// number on the invoice.
func (r *SQLiteInvoiceRepo) AddDetail(ctx context.Context, d *domain.InvoiceDetail) error {
	if d.LineItemNumber == 0 {
		err := r.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(line_item_number), 0) + 1 FROM invoice_details WHERE invoice_id = ?`,
			d.InvoiceID).Scan(&d.LineItemNumber)
		if err != nil {
			return fmt.Errorf("allocating line number: %w", err)
		}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoice_details (id, invoice_id, line_item_number, description, quantity, unit_price, line_total)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.InvoiceID, d.LineItemNumber, d.Description,
		d.Quantity.String(), d.UnitPrice.String(), d.LineTotal.String(),
	)
	if err != nil {
		return classify(err, "inserting invoice detail", "Line item number already used")
	}
	return nil
}

// MarkOverdue flips every Sent invoice whose due date is before asOf to Overdue
// and reports how many changed.
func (r *SQLiteInvoiceRepo) MarkOverdue(ctx context.Context, asOf domain.Date) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = ?, updated_at = ?
		WHERE status = ? AND due_date IS NOT NULL AND due_date < ?`,
		string(domain.InvoiceOverdue), nowUTC(), string(domain.InvoiceSent), asOf.String())
	if err != nil {
		return 0, fmt.Errorf("marking overdue invoices: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return int(n), nil
}

// RevenueByMonth sums paid invoices per YYYY-MM month from since onwards,
// newest month first.
func (r *SQLiteInvoiceRepo) RevenueByMonth(ctx context.Context, since domain.Date) ([]domain.RevenuePoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', invoice_date) AS month, SUM(total_amount)
		FROM invoices
		WHERE status = ? AND invoice_date >= ?
		GROUP BY month
		ORDER BY month DESC`, string(domain.InvoicePaid), since.String())
	if err != nil {
		return nil, fmt.Errorf("summing revenue: %w", err)
	}
	defer rows.Close()

	var out []domain.RevenuePoint
	for rows.Next() {
		var p domain.RevenuePoint
		if err := rows.Scan(&p.Month, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scanning revenue: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revenue: %w", err)
	}
	return out, nil
}

func (r *SQLiteInvoiceRepo) RevenueForYear(ctx context.Context, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM invoices
		WHERE status = ? AND strftime('%Y', invoice_date) = ?`,
		string(domain.InvoicePaid), strconv.Itoa(year)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing yearly revenue: %w", err)
	}
	return total, nil
}

func scanInvoice(row scanner) (*domain.Invoice, error) {
	var i domain.Invoice
	var poID, dueDate, paymentDate sql.NullString
	var invoiceDate, status, createdAt, updatedAt string
	err := row.Scan(&i.ID, &poID, &i.PONumber, &i.ProjectID, &i.ProjectName, &i.Number,
		&invoiceDate, &dueDate, &i.TotalAmount, &i.TaxAmount, &status, &paymentDate,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, notFoundOr(err, "Invoice")
	}
	if poID.Valid {
		i.POID = &poID.String
	}
	if i.InvoiceDate, err = parseDate(invoiceDate); err != nil {
		return nil, err
	}
	i.DueDate = parseNullableDate(dueDate)
	i.Status = domain.InvoiceStatus(status)
	i.PaymentDate = parseNullableDate(paymentDate)
	i.CreatedAt = parseTime(createdAt)
	i.UpdatedAt = parseTime(updatedAt)
	return &i, nil
}
