package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// SQLiteProposalRepo implements ProposalRepo.
type SQLiteProposalRepo struct {
	db db.DBTX
}

func NewSQLiteProposalRepo(conn db.DBTX) *SQLiteProposalRepo {
	return &SQLiteProposalRepo{db: conn}
}

const proposalSelect = `SELECT pr.id, pr.project_id, p.name, COALESCE(c.name, ''), pr.proposal_number,
		pr.proposal_date, pr.amount, pr.status, pr.notes, pr.created_at, pr.updated_at
	FROM proposals pr
	JOIN projects p ON p.id = pr.project_id
	LEFT JOIN customers c ON c.id = p.customer_id`

func (r *SQLiteProposalRepo) Create(ctx context.Context, p *domain.Proposal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO proposals (id, project_id, proposal_number, proposal_date, amount, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ProjectID, p.Number, p.Date.String(), p.Amount.String(), string(p.Status), p.Notes,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return classify(err, "inserting proposal", "Proposal number already exists")
	}
	return nil
}

func (r *SQLiteProposalRepo) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	return scanProposal(r.db.QueryRowContext(ctx, proposalSelect+` WHERE pr.id = ?`, id))
}

func (r *SQLiteProposalRepo) List(ctx context.Context, status domain.DocumentStatus) ([]*domain.Proposal, error) {
	var w where
	if status != "" {
		w.add(`pr.status = ?`, string(status))
	}
	rows, err := r.db.QueryContext(ctx, proposalSelect+w.String()+` ORDER BY pr.proposal_date DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}
	defer rows.Close()

	var out []*domain.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proposals: %w", err)
	}
	return out, nil
}

func (r *SQLiteProposalRepo) Update(ctx context.Context, id string, p domain.ProposalPatch) (*domain.Proposal, error) {
	var status any
	if p.Status != nil {
		status = string(*p.Status)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE proposals SET
			proposal_number = COALESCE(?, proposal_number),
			proposal_date = COALESCE(?, proposal_date),
			amount = COALESCE(?, amount),
			status = COALESCE(?, status),
			notes = COALESCE(?, notes),
			updated_at = ?
		WHERE id = ?`,
		nullableString(p.Number), nullableDate(p.Date), nullableDecimal(p.Amount), status,
		nullableString(p.Notes), nowUTC(), id,
	)
	if err != nil {
		return nil, classify(err, "updating proposal", "Proposal number already exists")
	}
	if err := requireAffected(res, "Proposal"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func scanProposal(row scanner) (*domain.Proposal, error) {
	var p domain.Proposal
	var date, status, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.ProjectID, &p.ProjectName, &p.CustomerName, &p.Number, &date,
		&p.Amount, &status, &p.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFoundOr(err, "Proposal")
	}
	if p.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	p.Status = domain.DocumentStatus(status)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

// SQLitePurchaseOrderRepo implements PurchaseOrderRepo.
type SQLitePurchaseOrderRepo struct {
	db db.DBTX
}

func NewSQLitePurchaseOrderRepo(conn db.DBTX) *SQLitePurchaseOrderRepo {
	return &SQLitePurchaseOrderRepo{db: conn}
}

const poSelect = `SELECT po.id, po.project_id, p.name, COALESCE(c.name, ''), po.proposal_id, po.po_number,
		po.po_date, po.amount, po.hours, po.bill_rate, po.status, po.start_date, po.end_date,
		po.created_at, po.updated_at
	FROM purchase_orders po
	JOIN projects p ON p.id = po.project_id
	LEFT JOIN customers c ON c.id = p.customer_id`

func (r *SQLitePurchaseOrderRepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO purchase_orders (id, project_id, proposal_id, po_number, po_date, amount, hours, bill_rate, status, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		po.ID, po.ProjectID, nullableString(po.ProposalID), po.Number, po.Date.String(),
		po.Amount.String(), po.Hours, po.BillRate.String(), string(po.Status),
		nullableDate(po.StartDate), nullableDate(po.EndDate),
		formatTime(po.CreatedAt), formatTime(po.UpdatedAt),
	)
	if err != nil {
		return classify(err, "inserting purchase order", "PO number already exists")
	}
	return nil
}

func (r *SQLitePurchaseOrderRepo) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return scanPurchaseOrder(r.db.QueryRowContext(ctx, poSelect+` WHERE po.id = ?`, id))
}

func (r *SQLitePurchaseOrderRepo) List(ctx context.Context, projectID string) ([]*domain.PurchaseOrder, error) {
	var w where
	if projectID != "" {
		w.add(`po.project_id = ?`, projectID)
	}
	rows, err := r.db.QueryContext(ctx, poSelect+w.String()+` ORDER BY po.po_date DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*domain.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, po)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase orders: %w", err)
	}
	return out, nil
}

func (r *SQLitePurchaseOrderRepo) Update(ctx context.Context, id string, p domain.PurchaseOrderPatch) (*domain.PurchaseOrder, error) {
	var status any
	if p.Status != nil {
		status = string(*p.Status)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE purchase_orders SET
			po_number = COALESCE(?, po_number),
			po_date = COALESCE(?, po_date),
			amount = COALESCE(?, amount),
			hours = COALESCE(?, hours),
			bill_rate = COALESCE(?, bill_rate),
			status = COALESCE(?, status),
			start_date = COALESCE(?, start_date),
			end_date = COALESCE(?, end_date),
			updated_at = ?
		WHERE id = ?`,
		nullableString(p.Number), nullableDate(p.Date), nullableDecimal(p.Amount),
		nullableFloat(p.Hours), nullableDecimal(p.BillRate), status,
		nullableDate(p.StartDate), nullableDate(p.EndDate), nowUTC(), id,
	)
	if err != nil {
		return nil, classify(err, "updating purchase order", "PO number already exists")
	}
	if err := requireAffected(res, "Purchase order"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Utilization prices every timesheet hour booked on the PO's project at the
// employee's hourly rate and compares the sum with the PO amount.
func (r *SQLitePurchaseOrderRepo) Utilization(ctx context.Context, id string) (*domain.POUtilization, error) {
	var u domain.POUtilization
	err := r.db.QueryRowContext(ctx,
		`SELECT po.id, po.amount,
			COALESCE((SELECT SUM(t.hours_worked * e.hourly_rate)
				FROM timesheets t JOIN employees e ON e.id = t.employee_id
				WHERE t.project_id = po.project_id), 0)
		FROM purchase_orders po WHERE po.id = ?`, id,
	).Scan(&u.POID, &u.TotalAmount, &u.UtilizedAmount)
	if err != nil {
		return nil, notFoundOr(err, "Purchase order")
	}
	u.UtilizedAmount = u.UtilizedAmount.Round(2)
	u.RemainingAmount = u.TotalAmount.Sub(u.UtilizedAmount)
	return &u, nil
}

func scanPurchaseOrder(row scanner) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	var proposalID, startDate, endDate sql.NullString
	var date, status, createdAt, updatedAt string
	err := row.Scan(&po.ID, &po.ProjectID, &po.ProjectName, &po.CustomerName, &proposalID, &po.Number,
		&date, &po.Amount, &po.Hours, &po.BillRate, &status, &startDate, &endDate,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, notFoundOr(err, "Purchase order")
	}
	if proposalID.Valid {
		po.ProposalID = &proposalID.String
	}
	if po.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	po.Status = domain.DocumentStatus(status)
	po.StartDate = parseNullableDate(startDate)
	po.EndDate = parseNullableDate(endDate)
	po.CreatedAt = parseTime(createdAt)
	po.UpdatedAt = parseTime(updatedAt)
	return &po, nil
}
