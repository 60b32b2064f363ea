package repository

import (
	"context"
	"fmt"

	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// SQLiteTimesheetRepo implements TimesheetRepo.
type SQLiteTimesheetRepo struct {
	db db.DBTX
}

func NewSQLiteTimesheetRepo(conn db.DBTX) *SQLiteTimesheetRepo {
	return &SQLiteTimesheetRepo{db: conn}
}

const timesheetSelect = `SELECT t.id, t.employee_id, e.name, t.project_id, p.name, t.work_date,
		t.hours_worked, t.description, t.billable, t.created_at, t.updated_at
	FROM timesheets t
	JOIN employees e ON e.id = t.employee_id
	JOIN projects p ON p.id = t.project_id`

func (r *SQLiteTimesheetRepo) Create(ctx context.Context, t *domain.Timesheet) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO timesheets (id, employee_id, project_id, work_date, hours_worked, description, billable, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.EmployeeID, t.ProjectID, t.WorkDate.String(), t.HoursWorked, t.Description,
		boolToInt(t.Billable), formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return classify(err, "inserting timesheet", "Timesheet already exists")
	}
	return nil
}

func (r *SQLiteTimesheetRepo) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	return scanTimesheet(r.db.QueryRowContext(ctx, timesheetSelect+` WHERE t.id = ?`, id))
}

// List returns entries newest work date first.
func (r *SQLiteTimesheetRepo) List(ctx context.Context, f domain.TimesheetFilter) ([]*domain.Timesheet, error) {
	var w where
	if f.EmployeeID != "" {
		w.add(`t.employee_id = ?`, f.EmployeeID)
	}
	if f.ProjectID != "" {
		w.add(`t.project_id = ?`, f.ProjectID)
	}
	rows, err := r.db.QueryContext(ctx, timesheetSelect+w.String()+` ORDER BY t.work_date DESC, t.created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing timesheets: %w", err)
	}
	defer rows.Close()

	var out []*domain.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheets: %w", err)
	}
	return out, nil
}

func (r *SQLiteTimesheetRepo) Update(ctx context.Context, id string, p domain.TimesheetPatch) (*domain.Timesheet, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE timesheets SET
			work_date = COALESCE(?, work_date),
			hours_worked = COALESCE(?, hours_worked),
			description = COALESCE(?, description),
			billable = COALESCE(?, billable),
			updated_at = ?
		WHERE id = ?`,
		nullableDate(p.WorkDate), nullableFloat(p.HoursWorked), nullableString(p.Description),
		nullableBool(p.Billable), nowUTC(), id,
	)
	if err != nil {
		return nil, classify(err, "updating timesheet", "Timesheet already exists")
	}
	if err := requireAffected(res, "Timesheet"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteTimesheetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timesheets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting timesheet: %w", err)
	}
	return requireAffected(res, "Timesheet")
}

func scanTimesheet(row scanner) (*domain.Timesheet, error) {
	var t domain.Timesheet
	var workDate, createdAt, updatedAt string
	var billable int
	err := row.Scan(&t.ID, &t.EmployeeID, &t.EmployeeName, &t.ProjectID, &t.ProjectName, &workDate,
		&t.HoursWorked, &t.Description, &billable, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFoundOr(err, "Timesheet")
	}
	if t.WorkDate, err = parseDate(workDate); err != nil {
		return nil, err
	}
	t.Billable = intToBool(billable)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}
