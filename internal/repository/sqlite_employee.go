package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

func NewSQLiteEmployeeRepo(conn db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: conn}
}

const employeeSelect = `SELECT e.id, e.user_id, e.name, e.email, e.role, e.department, e.hire_date,
		e.hourly_rate, e.active,
		COALESCE((SELECT r.role_name FROM user_roles r WHERE r.user_id = e.user_id AND r.active = 1
			ORDER BY r.created_at DESC LIMIT 1), ''),
		e.created_at, e.updated_at
	FROM employees e`

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, user_id, name, email, role, department, hire_date, hourly_rate, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, nullableString(e.UserID), e.Name, e.Email, e.Role, e.Department,
		nullableDate(e.HireDate), e.HourlyRate.String(), boolToInt(e.Active),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	if err != nil {
		return classify(err, "inserting employee", domain.MsgEmailExists)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return scanEmployee(r.db.QueryRowContext(ctx, employeeSelect+` WHERE e.id = ?`, id))
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, employeeSelect+` ORDER BY e.name`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var out []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return out, nil
}

func (r *SQLiteEmployeeRepo) Update(ctx context.Context, id string, p domain.EmployeePatch) (*domain.Employee, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET
			name = COALESCE(?, name),
			email = COALESCE(?, email),
			role = COALESCE(?, role),
			department = COALESCE(?, department),
			hire_date = COALESCE(?, hire_date),
			hourly_rate = COALESCE(?, hourly_rate),
			active = COALESCE(?, active),
			updated_at = ?
		WHERE id = ?`,
		nullableString(p.Name), nullableString(p.Email), nullableString(p.Role),
		nullableString(p.Department), nullableDate(p.HireDate), nullableDecimal(p.HourlyRate),
		nullableBool(p.Active), nowUTC(), id,
	)
	if err != nil {
		return nil, classify(err, "updating employee", domain.MsgEmailExists)
	}
	if err := requireAffected(res, "Employee"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteEmployeeRepo) SetActive(ctx context.Context, id string, active bool) (*domain.Employee, error) {
	return r.Update(ctx, id, domain.EmployeePatch{Active: &active})
}

// ListAssignments returns the projects the employee is staffed on, newest assignment first.
func (r *SQLiteEmployeeRepo) ListAssignments(ctx context.Context, employeeID string) ([]domain.EmployeeAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.status, m.assigned_date, m.role
		FROM project_team_members m
		JOIN projects p ON p.id = m.project_id
		WHERE m.employee_id = ?
		ORDER BY m.assigned_date DESC, p.name`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing employee projects: %w", err)
	}
	defer rows.Close()

	var out []domain.EmployeeAssignment
	for rows.Next() {
		var a domain.EmployeeAssignment
		var status, assigned string
		if err := rows.Scan(&a.ProjectID, &a.ProjectName, &status, &assigned, &a.ProjectRole); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		a.Status = domain.ProjectStatus(status)
		if a.AssignedDate, err = parseDate(assigned); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *SQLiteEmployeeRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE active = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting employees: %w", err)
	}
	return n, nil
}

func scanEmployee(row scanner) (*domain.Employee, error) {
	var e domain.Employee
	var userID, hireDate sql.NullString
	var active int
	var role, createdAt, updatedAt string

	err := row.Scan(&e.ID, &userID, &e.Name, &e.Email, &e.Role, &e.Department, &hireDate,
		&e.HourlyRate, &active, &role, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFoundOr(err, "Employee")
	}
	if userID.Valid {
		e.UserID = &userID.String
	}
	e.HireDate = parseNullableDate(hireDate)
	e.Active = intToBool(active)
	e.UserRole = domain.UserRole(role)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}
